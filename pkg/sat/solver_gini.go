package sat

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

type giniSolver struct{}

// NewGiniSolver returns an in-process CDCL solver backed by gini
func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(sat SAT) (SATSolution, error) {
	g := gini.New()
	known := 0 // Highest variable gini has seen
	for _, clause := range sat.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
			known = max(known, int(max(literal, -literal)))
		}
		g.Add(z.LitNull) // Terminates the clause
	}

	if g.Solve() != 1 {
		return nil, nil
	}

	solution := make(SATSolution, 0, sat.Variables)
	for variable := 1; variable <= int(sat.Variables); variable++ {
		if variable <= known && g.Value(z.Dimacs2Lit(variable)) {
			solution = append(solution, int64(variable))
		} else {
			solution = append(solution, -int64(variable))
		}
	}
	return solution, nil
}
