package genetic

import (
	"math/rand/v2"
	"testing"

	"github.com/limaJavier/heurisat/pkg/cnf"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func TestCrossover(t *testing.T) {
	t.Run("Midpoint split", func(t *testing.T) {
		//** Arrange
		parentA := cnf.Bitstring{true, true, true, true, true}
		parentB := cnf.Bitstring{false, false, false, false, false}

		//** Act
		child := Crossover(parentA, parentB, len(parentA)/2)

		//** Assert
		assert.Equal(t, cnf.Bitstring{true, true, false, false, false}, child)
		assert.Equal(t, cnf.Bitstring{true, true, true, true, true}, parentA)
		assert.Equal(t, cnf.Bitstring{false, false, false, false, false}, parentB)
	})

	t.Run("Child is a fresh slice", func(t *testing.T) {
		parentA := cnf.Bitstring{true, false}
		parentB := cnf.Bitstring{false, true}

		child := Crossover(parentA, parentB, 2)
		child[0] = false

		assert.True(t, parentA[0])
	})

	t.Run("Point is clamped", func(t *testing.T) {
		parentA := cnf.Bitstring{true, true}
		parentB := cnf.Bitstring{false, false}

		assert.Equal(t, cnf.Bitstring{false, false}, Crossover(parentA, parentB, -3))
		assert.Equal(t, cnf.Bitstring{true, true}, Crossover(parentA, parentB, 10))
	})

	t.Run("Length and inheritance hold for every point", func(t *testing.T) {
		g := NewWithT(t)
		rng := rand.New(rand.NewPCG(4, 4))

		for range 100 {
			length := rng.IntN(40)
			parentA := cnf.RandomBitstring(rng, length)
			parentB := cnf.RandomBitstring(rng, length)
			point := rng.IntN(length + 1)

			child := Crossover(parentA, parentB, point)

			g.Expect(child).To(HaveLen(length))
			g.Expect(child[:point]).To(Equal(parentA[:point]))
			g.Expect(child[point:]).To(Equal(parentB[point:]))
		}
	})
}

func TestMutate(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewPCG(8, 15))

	for range 100 {
		individual := cnf.RandomBitstring(rng, rng.IntN(50)+1)
		original := individual.Clone()

		mutated := Mutate(rng, individual)

		g.Expect(cnf.HammingDistance(individual, mutated)).To(Equal(1))
		g.Expect(individual).To(Equal(original))
	}

	assert.Empty(t, Mutate(rng, cnf.Bitstring{}))
}

func TestProbabilities(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Probabilities([]int{0, 2, 4}, 4))
	assert.Equal(t, []float64{0, 0}, Probabilities([]int{0, 0}, 0))
}

func TestSelect(t *testing.T) {
	t.Run("Proportional to weight", func(t *testing.T) {
		//** Arrange
		rng := rand.New(rand.NewPCG(1, 2))
		weights := []float64{0.1, 0, 0.3, 0.6}
		counts := make([]int, len(weights))

		//** Act
		const draws = 20000
		for range draws {
			counts[Select(rng, weights)]++
		}

		//** Assert
		assert.Zero(t, counts[1])
		assert.InDelta(t, 0.1, float64(counts[0])/draws, 0.02)
		assert.InDelta(t, 0.3, float64(counts[2])/draws, 0.02)
		assert.InDelta(t, 0.6, float64(counts[3])/draws, 0.02)
	})

	t.Run("All-zero weights fall back to uniform", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 4))
		weights := []float64{0, 0, 0, 0}
		counts := make([]int, len(weights))

		const draws = 8000
		for range draws {
			counts[Select(rng, weights)]++
		}

		for _, count := range counts {
			assert.InDelta(t, 0.25, float64(count)/draws, 0.03)
		}
	})

	t.Run("Single candidate", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(5, 6))

		assert.Equal(t, 0, Select(rng, []float64{0.7}))
		assert.Equal(t, 0, Select(rng, []float64{0}))
	})
}

func TestElite(t *testing.T) {
	best, worst := Elite([]int{3, 5, 1, 5, 1, 2})
	assert.Equal(t, 1, best)
	assert.Equal(t, 4, worst)

	best, worst = Elite([]int{7})
	assert.Equal(t, 0, best)
	assert.Equal(t, 0, worst)

	best, worst = Elite([]int{2, 2, 2})
	assert.Equal(t, 0, best)
	assert.Equal(t, 2, worst)

	best, worst = Elite(nil)
	assert.Equal(t, -1, best)
	assert.Equal(t, -1, worst)
}
