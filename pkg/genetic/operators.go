package genetic

import (
	"math/rand/v2"

	"github.com/limaJavier/heurisat/pkg/cnf"
	"github.com/samber/lo"
)

// Crossover returns a new child made of parentA[:point] followed by parentB[point:]. Both parents must have the same length
// and neither of them is modified. The point is clamped into [0, len(parentA)]
func Crossover(parentA, parentB cnf.Bitstring, point int) cnf.Bitstring {
	point = max(0, min(point, len(parentA)))

	child := make(cnf.Bitstring, len(parentA))
	copy(child[:point], parentA[:point])
	copy(child[point:], parentB[point:])
	return child
}

// Mutate returns a copy of the individual with exactly one uniformly chosen bit flipped
func Mutate(rng *rand.Rand, individual cnf.Bitstring) cnf.Bitstring {
	if len(individual) == 0 {
		return individual.Clone()
	}
	return individual.Flip(rng.IntN(len(individual)))
}

// Probabilities maps every fitness to fitness / maxFitness
func Probabilities(fitness []int, maxFitness int) []float64 {
	return lo.Map(fitness, func(value int, _ int) float64 {
		if maxFitness == 0 {
			return 0
		}
		return float64(value) / float64(maxFitness)
	})
}

// Select performs a fitness-proportionate (roulette wheel) pick over a non-empty slice of weights:
// it draws r uniformly in [0, total) and returns the first index whose cumulative weight meets or exceeds r.
// Non-positive weights are never picked unless every weight is non-positive, in which case the pick is uniform
func Select(rng *rand.Rand, weights []float64) int {
	total := lo.SumBy(weights, func(weight float64) float64 { return max(weight, 0) })
	if total <= 0 {
		return rng.IntN(len(weights))
	}

	r := rng.Float64() * total
	cumulative := 0.0
	last := 0
	for i, weight := range weights {
		if weight <= 0 {
			continue
		}
		cumulative += weight
		last = i
		if cumulative >= r {
			return i
		}
	}
	return last // Floating point drift may leave r slightly above the accumulated total
}

// Elite returns the index of the highest-fitness individual (first one on ties) and of the lowest-fitness individual
// (last one on ties), i.e. the head and tail of the population stably ranked by descending fitness.
// Both are -1 for an empty population
func Elite(fitness []int) (best int, worst int) {
	if len(fitness) == 0 {
		return -1, -1
	}

	best, worst = 0, 0
	for i, value := range fitness {
		if value > fitness[best] {
			best = i
		}
		if value <= fitness[worst] {
			worst = i
		}
	}
	return best, worst
}
