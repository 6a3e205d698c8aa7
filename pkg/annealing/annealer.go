package annealing

import (
	"context"
	"io"
	"math"
	"math/rand/v2"

	"github.com/limaJavier/heurisat/pkg/cnf"
	"github.com/limaJavier/heurisat/pkg/search"
	"github.com/sirupsen/logrus"
)

type Result struct {
	Solutions        []cnf.MapAssignment // Distinct zero-cost assignments in discovery order
	Final            cnf.MapAssignment
	FinalCost        int
	Best             cnf.MapAssignment // Lowest-cost assignment visited during the run
	BestCost         int
	Steps            int // Temperature steps performed
	Calls            int // Evaluator calls made by perturbation trials
	Accepted         int
	FinalTemperature float64
	Trace            *search.Trace // (temperature, current cost), initial point plus one per step
	BestTrace        *search.Trace // (temperature, best cost so far), never increasing
}

func (result Result) Solved() bool {
	return result.BestCost == 0
}

type Option func(annealer *Annealer)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(annealer *Annealer) {
		annealer.logger = logger
	}
}

// Annealer runs simulated annealing over map assignments of the evaluator's formula, minimizing the number of
// unsatisfied clauses. An annealer owns its random source and must not be used by several goroutines at once
type Annealer struct {
	evaluator cnf.Evaluator
	config    Config
	rng       *rand.Rand
	logger    logrus.FieldLogger
}

// New binds an annealer to the evaluator. A nil rng is replaced by a randomly seeded one
func New(evaluator cnf.Evaluator, config Config, rng *rand.Rand, options ...Option) *Annealer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	annealer := &Annealer{
		evaluator: evaluator,
		config:    config,
		rng:       rng,
		logger:    discardLogger(),
	}
	for _, option := range options {
		option(annealer)
	}
	return annealer
}

func (annealer *Annealer) Config() Config {
	return annealer.config
}

// InitialSolution binds every variable of the formula to a fair coin flip
func (annealer *Annealer) InitialSolution() cnf.MapAssignment {
	variables := annealer.evaluator.Formula().NumVars()
	solution := make(cnf.MapAssignment, variables)
	for variable := 1; variable <= variables; variable++ {
		solution[variable] = annealer.rng.IntN(2) == 1
	}
	return solution
}

// Perturb returns a copy of the solution with one uniformly chosen variable negated; the input is left untouched
func (annealer *Annealer) Perturb(solution cnf.MapAssignment) cnf.MapAssignment {
	variable := annealer.rng.IntN(annealer.evaluator.Formula().NumVars()) + 1
	return solution.Flip(variable)
}

// AcceptanceProbability is 1 for improving moves and exp(-(newCost - oldCost) / temperature) otherwise,
// so it tends to zero for worsening moves as the temperature falls
func AcceptanceProbability(oldCost, newCost int, temperature float64) float64 {
	if newCost < oldCost {
		return 1.0
	}
	delta := float64(newCost - oldCost)
	if temperature <= 0 {
		if delta == 0 {
			return 1.0
		}
		return 0.0
	}
	return math.Exp(-delta / temperature)
}

// Run anneals from a random initial solution
func (annealer *Annealer) Run(ctx context.Context) (Result, error) {
	return annealer.RunFrom(ctx, annealer.InitialSolution())
}

// RunFrom anneals starting at a copy of initial, which must bind every variable of the formula. While the
// temperature is above MinTemperature and fewer than MaxCalls evaluations were made, it performs
// PerturbationsPerStep perturb/evaluate/accept trials and then cools the temperature by Alpha.
// Finding no solution is a normal outcome; an error is returned only for an invalid configuration
// or when ctx is cancelled, in which case the partial result is returned as well
func (annealer *Annealer) RunFrom(ctx context.Context, initial cnf.Assignment) (Result, error) {
	if err := annealer.config.Validate(); err != nil {
		return Result{}, err
	}

	variables := annealer.evaluator.Formula().NumVars()
	current := make(cnf.MapAssignment, variables)
	for variable := 1; variable <= variables; variable++ {
		current[variable] = initial.ValueOf(variable)
	}
	currentCost := annealer.evaluator.Cost(current)
	temperature := annealer.config.InitialTemperature
	alpha := annealer.config.Alpha()

	result := Result{
		Best:      current,
		BestCost:  currentCost,
		Trace:     search.NewTrace("temperature", "cost"),
		BestTrace: search.NewTrace("temperature", "best cost"),
	}
	solutions := newSolutionSet()
	if currentCost == 0 {
		solutions.Add(current)
	}
	result.Trace.Append(temperature, currentCost)
	result.BestTrace.Append(temperature, result.BestCost)

	for temperature > annealer.config.MinTemperature && result.Calls < annealer.config.MaxCalls {
		if err := ctx.Err(); err != nil {
			annealer.finish(&result, current, currentCost, temperature, solutions)
			return result, err
		}

		for trial := 0; trial < annealer.config.PerturbationsPerStep && result.Calls < annealer.config.MaxCalls; trial++ {
			candidate := annealer.Perturb(current)
			candidateCost := annealer.evaluator.Cost(candidate)
			result.Calls++

			if AcceptanceProbability(currentCost, candidateCost, temperature) > annealer.rng.Float64() {
				current, currentCost = candidate, candidateCost
				result.Accepted++

				if currentCost < result.BestCost {
					result.Best, result.BestCost = current, currentCost
				}
				if currentCost == 0 {
					solutions.Add(current)
				}
			}
		}

		temperature *= alpha
		result.Steps++
		result.Trace.Append(temperature, currentCost)
		result.BestTrace.Append(temperature, result.BestCost)

		annealer.logger.WithFields(logrus.Fields{
			"step":        result.Steps,
			"temperature": temperature,
			"cost":        currentCost,
		}).Debug("temperature step finished")
	}

	annealer.finish(&result, current, currentCost, temperature, solutions)
	annealer.logger.WithFields(logrus.Fields{
		"steps":     result.Steps,
		"calls":     result.Calls,
		"best_cost": result.BestCost,
		"solutions": len(result.Solutions),
	}).Info("annealing finished")

	return result, nil
}

func (annealer *Annealer) finish(result *Result, current cnf.MapAssignment, cost int, temperature float64, solutions *solutionSet) {
	result.Final = current
	result.FinalCost = cost
	result.FinalTemperature = temperature
	result.Solutions = solutions.Items()
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
