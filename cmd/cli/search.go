package main

import (
	"context"
	"time"

	"github.com/limaJavier/heurisat/pkg/annealing"
	"github.com/limaJavier/heurisat/pkg/cnf"
	"github.com/limaJavier/heurisat/pkg/genetic"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type geneticOutput struct {
	File        string `json:"file"`
	Seed        uint64 `json:"seed"`
	Solved      bool   `json:"solved"`
	Fitness     int    `json:"fitness"`
	MaxFitness  int    `json:"max_fitness"`
	Generations int    `json:"generations"`
	Runs        int    `json:"runs"`
	Assignment  []int  `json:"assignment"`
	Elapsed     string `json:"elapsed"`
}

type annealOutput struct {
	File             string  `json:"file"`
	Seed             uint64  `json:"seed"`
	Solved           bool    `json:"solved"`
	Cost             int     `json:"cost"`
	FinalCost        int     `json:"final_cost"`
	Steps            int     `json:"steps"`
	Calls            int     `json:"calls"`
	Accepted         int     `json:"accepted"`
	FinalTemperature float64 `json:"final_temperature"`
	Runs             int     `json:"runs"`
	Assignment       []int   `json:"assignment"`
	Solutions        [][]int `json:"solutions"`
	Elapsed          string  `json:"elapsed"`
}

func newGeneticCmd() *cobra.Command {
	geneticCmd := &cobra.Command{
		Use:   "genetic FILE",
		Short: "Search a satisfying assignment with the genetic algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  geneticFunc,
	}

	defaults := genetic.DefaultConfig()
	flags := geneticCmd.Flags()
	flags.Int("population", defaults.PopulationSize, "Number of individuals per generation")
	flags.Float64("mutation", defaults.MutationProbability, "Probability of mutating each new child")
	flags.Int("generations", defaults.MaxGenerations, "Maximum number of generations to evolve")
	flags.Bool("random-crossover", defaults.RandomCrossoverPoint, "Split parents at a random point instead of the midpoint")
	flags.Int("workers", defaults.Workers, "Goroutines used to evaluate each generation")
	flags.Int("restarts", 0, "Extra runs from a fresh random population while no solution is found")

	return geneticCmd
}

func newAnnealCmd() *cobra.Command {
	annealCmd := &cobra.Command{
		Use:   "anneal FILE",
		Short: "Search a satisfying assignment with simulated annealing",
		Args:  cobra.ExactArgs(1),
		RunE:  annealFunc,
	}

	defaults := annealing.DefaultConfig()
	flags := annealCmd.Flags()
	flags.Float64("temperature", defaults.InitialTemperature, "Initial temperature")
	flags.Float64("min-temperature", defaults.MinTemperature, "The search stops once the temperature is no longer above it")
	flags.Float64("cooling", defaults.CoolingFactor, "Fraction of the temperature removed at every step")
	flags.Int("perturbations", defaults.PerturbationsPerStep, "Perturbation trials per temperature")
	flags.Int("max-calls", defaults.MaxCalls, "Maximum number of evaluator calls")
	flags.Int("restarts", 0, "Extra runs from a fresh random assignment while no solution is found")

	return annealCmd
}

func geneticFunc(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := applyGeneticFlags(cmd.Flags(), &cfg.Genetic); err != nil {
		return err
	}
	if err := cfg.Genetic.Validate(); err != nil {
		return err
	}
	restarts, err := restartsFlag(cmd)
	if err != nil {
		return err
	}

	formula, err := cnf.ParseDIMACSFile(args[0])
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	rng, seed := newRand(cmd)

	ctx, cancel := interruptibleContext()
	defer cancel()

	start := time.Now()
	engine := genetic.New(cnf.NewEvaluator(formula), cfg.Genetic, rng, genetic.WithLogger(log.StandardLogger()))
	result, runs, err := restart(ctx, restarts, engine.Run,
		func(result genetic.Result) bool { return result.Solved },
		func(candidate, best genetic.Result) bool { return candidate.Fitness > best.Fitness },
	)
	if err := interrupted(err); err != nil {
		return err
	}

	if err := writeTrace(result.Trace); err != nil {
		return err
	}
	setExitCode(result.Solved)
	return writeOutput(geneticOutput{
		File:        args[0],
		Seed:        seed,
		Solved:      result.Solved,
		Fitness:     result.Fitness,
		MaxFitness:  result.MaxFitness,
		Generations: result.Generations,
		Runs:        runs,
		Assignment:  cnf.Literals(result.Best),
		Elapsed:     time.Since(start).String(),
	})
}

func annealFunc(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := applyAnnealingFlags(cmd.Flags(), &cfg.Annealing); err != nil {
		return err
	}
	if err := cfg.Annealing.Validate(); err != nil {
		return err
	}
	restarts, err := restartsFlag(cmd)
	if err != nil {
		return err
	}

	formula, err := cnf.ParseDIMACSFile(args[0])
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	if !formula.IsThreeSAT() {
		log.Warn("formula is not 3-CNF, clauses of other widths are evaluated as well")
	}
	rng, seed := newRand(cmd)

	ctx, cancel := interruptibleContext()
	defer cancel()

	start := time.Now()
	annealer := annealing.New(cnf.NewEvaluator(formula), cfg.Annealing, rng, annealing.WithLogger(log.StandardLogger()))
	result, runs, err := restart(ctx, restarts, annealer.Run,
		annealing.Result.Solved,
		func(candidate, best annealing.Result) bool { return candidate.BestCost < best.BestCost },
	)
	if err := interrupted(err); err != nil {
		return err
	}

	if err := writeTrace(result.Trace); err != nil {
		return err
	}
	setExitCode(result.Solved())
	return writeOutput(annealOutput{
		File:             args[0],
		Seed:             seed,
		Solved:           result.Solved(),
		Cost:             result.BestCost,
		FinalCost:        result.FinalCost,
		Steps:            result.Steps,
		Calls:            result.Calls,
		Accepted:         result.Accepted,
		FinalTemperature: result.FinalTemperature,
		Runs:             runs,
		Assignment:       cnf.Literals(result.Best),
		Solutions: lo.Map(result.Solutions, func(solution cnf.MapAssignment, _ int) []int {
			return cnf.Literals(solution)
		}),
		Elapsed: time.Since(start).String(),
	})
}

// restart runs search once and then up to restarts more times while no run is solved, keeping the result
// better prefers. A failing run ends the loop; its partial result still competes
func restart[R any](
	ctx context.Context,
	restarts int,
	search func(context.Context) (R, error),
	solved func(R) bool,
	better func(candidate, best R) bool,
) (R, int, error) {
	best, err := search(ctx)
	runs := 1
	for ; runs <= restarts && err == nil && !solved(best); runs++ {
		log.Infof("restarting the search (%d of %d)", runs, restarts)
		var result R
		result, err = search(ctx)
		if better(result, best) {
			best = result
		}
	}
	return best, runs, err
}

func restartsFlag(cmd *cobra.Command) (int, error) {
	restarts, err := cmd.Flags().GetInt("restarts")
	if err != nil {
		return 0, err
	} else if restarts < 0 {
		return 0, errors.Errorf("restarts must not be negative: %d", restarts)
	}
	return restarts, nil
}

// interrupted swallows a cancellation so the partial result is still reported
func interrupted(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		log.Warn("search interrupted, reporting the partial result")
		return nil
	}
	return err
}

func applyGeneticFlags(flags *pflag.FlagSet, config *genetic.Config) error {
	return firstError(
		override(flags, "population", flags.GetInt, &config.PopulationSize),
		override(flags, "mutation", flags.GetFloat64, &config.MutationProbability),
		override(flags, "generations", flags.GetInt, &config.MaxGenerations),
		override(flags, "random-crossover", flags.GetBool, &config.RandomCrossoverPoint),
		override(flags, "workers", flags.GetInt, &config.Workers),
	)
}

func applyAnnealingFlags(flags *pflag.FlagSet, config *annealing.Config) error {
	return firstError(
		override(flags, "temperature", flags.GetFloat64, &config.InitialTemperature),
		override(flags, "min-temperature", flags.GetFloat64, &config.MinTemperature),
		override(flags, "cooling", flags.GetFloat64, &config.CoolingFactor),
		override(flags, "perturbations", flags.GetInt, &config.PerturbationsPerStep),
		override(flags, "max-calls", flags.GetInt, &config.MaxCalls),
	)
}

// override copies a flag into target only when it was given on the command line, so file values survive otherwise
func override[T any](flags *pflag.FlagSet, name string, get func(string) (T, error), target *T) error {
	if !flags.Changed(name) {
		return nil
	}
	value, err := get(name)
	if err != nil {
		return err
	}
	*target = value
	return nil
}

func firstError(errs ...error) error {
	err, _ := lo.Find(errs, func(err error) bool { return err != nil })
	return err
}
