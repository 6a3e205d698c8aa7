package genetic

import (
	"context"
	"io"
	"math/rand/v2"

	"github.com/limaJavier/heurisat/pkg/cnf"
	"github.com/limaJavier/heurisat/pkg/search"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Population is an ordered sequence of individuals (bitstring assignments)
type Population []cnf.Bitstring

// Generation is a population together with the fitness of each of its individuals
type Generation struct {
	Index      int
	Population Population
	Fitness    []int
}

// Best returns the index of the first individual with the highest fitness, or -1 for an empty generation
func (generation Generation) Best() int {
	best, _ := Elite(generation.Fitness)
	return best
}

// MaxFitness returns the highest fitness in the generation, or 0 for an empty generation
func (generation Generation) MaxFitness() int {
	if len(generation.Fitness) == 0 {
		return 0
	}
	return lo.Max(generation.Fitness)
}

// Contains reports whether some individual has exactly the given fitness
func (generation Generation) Contains(fitness int) bool {
	return lo.Contains(generation.Fitness, fitness)
}

type Result struct {
	Best        cnf.Bitstring // First individual of the final generation with the highest fitness
	Fitness     int
	MaxFitness  int
	Solved      bool // Best satisfies every clause
	Generations int  // Number of generations evolved after the initial one
	Final       Generation
	Trace       *search.Trace // (generation, max fitness) for generation 0 and every evolved generation
}

type Option func(engine *Engine)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(engine *Engine) {
		engine.logger = logger
	}
}

// Engine runs a genetic search over bitstring assignments of the evaluator's formula.
// An engine owns its random source and must not be used by several goroutines at once
type Engine struct {
	evaluator cnf.Evaluator
	config    Config
	rng       *rand.Rand
	logger    logrus.FieldLogger
}

// New binds an engine to the evaluator. A nil rng is replaced by a randomly seeded one
func New(evaluator cnf.Evaluator, config Config, rng *rand.Rand, options ...Option) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	engine := &Engine{
		evaluator: evaluator,
		config:    config,
		rng:       rng,
		logger:    discardLogger(),
	}
	for _, option := range options {
		option(engine)
	}
	return engine
}

func (engine *Engine) Config() Config {
	return engine.config
}

// InitialPopulation draws PopulationSize independent uniform bitstrings of length NumVars
func (engine *Engine) InitialPopulation() Population {
	length := engine.evaluator.Formula().NumVars()
	return lo.Times(engine.config.PopulationSize, func(_ int) cnf.Bitstring {
		return cnf.RandomBitstring(engine.rng, length)
	})
}

// Evaluate computes the fitness of every individual. With more than one worker the evaluations run concurrently
// and the call returns only once all of them are done, so no aggregation can observe a partial generation
func (engine *Engine) Evaluate(ctx context.Context, population Population) ([]int, error) {
	fitness := make([]int, len(population))

	if engine.config.Workers < 2 {
		for i, individual := range population {
			fitness[i] = engine.evaluator.SatisfiedCount(individual)
		}
		return fitness, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(engine.config.Workers)
	for i, individual := range population {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			fitness[i] = engine.evaluator.SatisfiedCount(individual) // Each goroutine owns exactly one slot
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return fitness, nil
}

// Evolve derives the next generation from the current one, which is left untouched:
//   - the best and the worst individuals survive unconditionally (elitism)
//   - every other slot holds a child of two roulette-selected parents, crossed over and possibly mutated
//
// Construction stops right after the first child reaching the maximum fitness, so the returned
// population can be smaller than the current one; such a generation always ends the search
func (engine *Engine) Evolve(ctx context.Context, current Generation) (Generation, error) {
	size := len(current.Population)
	next := Generation{
		Index:      current.Index + 1,
		Population: make(Population, 0, size),
		Fitness:    make([]int, 0, size),
	}
	if size == 0 {
		return next, nil
	}

	//** Elitism
	best, worst := Elite(current.Fitness)
	next.Population = append(next.Population, current.Population[best].Clone())
	next.Fitness = append(next.Fitness, current.Fitness[best])
	if size > 1 {
		next.Population = append(next.Population, current.Population[worst].Clone())
		next.Fitness = append(next.Fitness, current.Fitness[worst])
	}

	//** Breeding
	maxFitness := engine.evaluator.MaxFitness()
	weights := Probabilities(current.Fitness, maxFitness)
	children := make(Population, 0, size-len(next.Population))
	for len(next.Population)+len(children) < size {
		parentA := current.Population[Select(engine.rng, weights)]
		parentB := current.Population[Select(engine.rng, weights)]

		child := Crossover(parentA, parentB, engine.crossoverPoint(len(parentA)))
		if engine.rng.Float64() < engine.config.MutationProbability {
			child = Mutate(engine.rng, child)
		}
		children = append(children, child)
	}

	childrenFitness, err := engine.Evaluate(ctx, children)
	if err != nil {
		return Generation{}, err
	}

	for i, child := range children {
		next.Population = append(next.Population, child)
		next.Fitness = append(next.Fitness, childrenFitness[i])
		if childrenFitness[i] == maxFitness {
			break
		}
	}

	return next, nil
}

// Run evolves a random initial population until some individual satisfies every clause or MaxGenerations
// generations have been evolved. Exhausting the budget is a normal outcome; an error is returned only when
// ctx is cancelled, together with the best result reached so far
func (engine *Engine) Run(ctx context.Context) (Result, error) {
	maxFitness := engine.evaluator.MaxFitness()
	trace := search.NewTrace("generation", "max fitness")

	population := engine.InitialPopulation()
	fitness, err := engine.Evaluate(ctx, population)
	if err != nil {
		return Result{MaxFitness: maxFitness, Trace: trace}, err
	}
	generation := Generation{Index: 0, Population: population, Fitness: fitness}
	trace.Append(0, generation.MaxFitness())

	for !generation.Contains(maxFitness) && generation.Index < engine.config.MaxGenerations {
		if err := ctx.Err(); err != nil {
			return engine.result(generation, trace), err
		}

		next, err := engine.Evolve(ctx, generation)
		if err != nil {
			return engine.result(generation, trace), err
		}
		generation = next
		trace.Append(float64(generation.Index), generation.MaxFitness())

		if engine.config.LogInterval > 0 && generation.Index%engine.config.LogInterval == 0 {
			engine.logger.WithFields(logrus.Fields{
				"generation":  generation.Index,
				"max_fitness": generation.MaxFitness(),
			}).Debug("generation evolved")
		}
	}

	result := engine.result(generation, trace)
	engine.logger.WithFields(logrus.Fields{
		"generations": result.Generations,
		"fitness":     result.Fitness,
		"max_fitness": result.MaxFitness,
		"solved":      result.Solved,
	}).Info("genetic search finished")

	return result, nil
}

func (engine *Engine) result(generation Generation, trace *search.Trace) Result {
	result := Result{
		MaxFitness:  engine.evaluator.MaxFitness(),
		Generations: generation.Index,
		Final:       generation,
		Trace:       trace,
	}

	if best := generation.Best(); best >= 0 {
		result.Best = generation.Population[best]
		result.Fitness = generation.Fitness[best]
		result.Solved = result.Fitness == result.MaxFitness
	}
	return result
}

func (engine *Engine) crossoverPoint(length int) int {
	if engine.config.RandomCrossoverPoint {
		return engine.rng.IntN(length + 1)
	}
	return length / 2
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
