package cnf

import (
	"math/rand/v2"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPlantedThreeSAT(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewPCG(3, 5))

	for range 20 {
		variables := rng.IntN(50) + 3
		clauses := rng.IntN(250) + 1

		formula, planted, err := PlantedThreeSAT(rng, variables, clauses)

		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(formula.IsThreeSAT()).To(BeTrue())
		g.Expect(formula.NumClauses()).To(Equal(clauses))
		g.Expect(planted).To(HaveLen(variables))
		g.Expect(Cost(formula, planted)).To(BeZero())
	}
}

func TestRandomThreeSATDistinctVariables(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewPCG(9, 9))

	formula, err := RandomThreeSAT(rng, 10, 200)
	g.Expect(err).NotTo(HaveOccurred())

	for _, clause := range formula.Clauses() {
		seen := map[int]bool{}
		for _, literal := range clause {
			variable := Literal(literal).Var()
			g.Expect(seen).NotTo(HaveKey(variable))
			seen[variable] = true
		}
	}
}

func TestGeneratorsRejectEmptyVariableSet(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	_, err := RandomThreeSAT(rng, 0, 5)
	assert.True(t, errors.Is(err, ErrInvalidFormula))

	_, _, err = PlantedThreeSAT(rng, 0, 5)
	assert.True(t, errors.Is(err, ErrInvalidFormula))
}
