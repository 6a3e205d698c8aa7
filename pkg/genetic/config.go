package genetic

import "github.com/pkg/errors"

const (
	DefaultPopulationSize      = 200
	DefaultMutationProbability = 0.1
	DefaultMaxGenerations      = 200
	DefaultLogInterval         = 10
)

type Config struct {
	PopulationSize       int     `mapstructure:"population_size"`
	MutationProbability  float64 `mapstructure:"mutation_probability"`   // Probability of flipping one random bit of each new child
	MaxGenerations       int     `mapstructure:"max_generations"`        // Maximum number of generations evolved from the initial population
	RandomCrossoverPoint bool    `mapstructure:"random_crossover_point"` // Split parents at a random index instead of the midpoint
	Workers              int     `mapstructure:"workers"`                // Goroutines used to evaluate a population; values below 2 evaluate sequentially
	LogInterval          int     `mapstructure:"log_interval"`           // Generations between progress logs; 0 disables them
}

func DefaultConfig() Config {
	return Config{
		PopulationSize:      DefaultPopulationSize,
		MutationProbability: DefaultMutationProbability,
		MaxGenerations:      DefaultMaxGenerations,
		Workers:             1,
		LogInterval:         DefaultLogInterval,
	}
}

func (config Config) Validate() error {
	if config.PopulationSize < 0 {
		return errors.Errorf("population_size must not be negative: %d", config.PopulationSize)
	} else if config.MutationProbability < 0 || config.MutationProbability > 1 {
		return errors.Errorf("mutation_probability must be between 0 and 1: %v", config.MutationProbability)
	} else if config.MaxGenerations < 0 {
		return errors.Errorf("max_generations must not be negative: %d", config.MaxGenerations)
	} else if config.Workers < 0 {
		return errors.Errorf("workers must not be negative: %d", config.Workers)
	} else if config.LogInterval < 0 {
		return errors.Errorf("log_interval must not be negative: %d", config.LogInterval)
	}
	return nil
}
