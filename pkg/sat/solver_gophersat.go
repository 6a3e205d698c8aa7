package sat

import (
	gophersat "github.com/crillab/gophersat/solver"
	"github.com/samber/lo"
)

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process CDCL solver backed by gophersat
func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (solver *gophersatSolver) Solve(sat SAT) (SATSolution, error) {
	if len(sat.Clauses) == 0 {
		return allFalse(sat.Variables), nil
	}

	clauses := lo.Map(sat.Clauses, func(clause []int64, _ int) []int {
		return lo.Map(clause, func(literal int64, _ int) int { return int(literal) })
	})

	instance := gophersat.New(gophersat.ParseSlice(clauses))
	if instance.Solve() != gophersat.Sat {
		return nil, nil
	}

	// gophersat only knows the variables that appear in the clauses
	model := instance.Model()
	solution := make(SATSolution, 0, sat.Variables)
	for variable := int64(1); variable <= int64(sat.Variables); variable++ {
		if int(variable) <= len(model) && model[variable-1] {
			solution = append(solution, variable)
		} else {
			solution = append(solution, -variable)
		}
	}
	return solution, nil
}

func allFalse(variables uint64) SATSolution {
	solution := make(SATSolution, variables)
	for i := range solution {
		solution[i] = -int64(i + 1)
	}
	return solution
}
