package annealing

import "github.com/pkg/errors"

const (
	DefaultInitialTemperature   = 100.0
	DefaultMinTemperature       = 0.01
	DefaultCoolingFactor        = 0.05
	DefaultPerturbationsPerStep = 100
	DefaultMaxCalls             = 500000
)

type Config struct {
	InitialTemperature   float64 `mapstructure:"initial_temperature"`
	MinTemperature       float64 `mapstructure:"min_temperature"`        // The run stops once the temperature is no longer above it
	CoolingFactor        float64 `mapstructure:"cooling_factor"`         // Each step multiplies the temperature by 1 - CoolingFactor
	PerturbationsPerStep int     `mapstructure:"perturbations_per_step"` // Trials performed at every temperature
	MaxCalls             int     `mapstructure:"max_calls"`              // Hard cap on evaluator calls made by trials
}

func DefaultConfig() Config {
	return Config{
		InitialTemperature:   DefaultInitialTemperature,
		MinTemperature:       DefaultMinTemperature,
		CoolingFactor:        DefaultCoolingFactor,
		PerturbationsPerStep: DefaultPerturbationsPerStep,
		MaxCalls:             DefaultMaxCalls,
	}
}

// Alpha is the fraction of the temperature retained after each step
func (config Config) Alpha() float64 {
	return 1 - config.CoolingFactor
}

func (config Config) Validate() error {
	if config.InitialTemperature <= 0 {
		return errors.Errorf("initial_temperature must be positive: %v", config.InitialTemperature)
	} else if config.MinTemperature <= 0 {
		return errors.Errorf("min_temperature must be positive: %v", config.MinTemperature)
	} else if config.CoolingFactor <= 0 || config.CoolingFactor >= 1 {
		return errors.Errorf("cooling_factor must be between 0 and 1 (exclusive): %v", config.CoolingFactor)
	} else if config.PerturbationsPerStep < 0 {
		return errors.Errorf("perturbations_per_step must not be negative: %d", config.PerturbationsPerStep)
	} else if config.MaxCalls < 0 {
		return errors.Errorf("max_calls must not be negative: %d", config.MaxCalls)
	}
	return nil
}
