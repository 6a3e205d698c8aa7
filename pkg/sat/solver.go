package sat

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

type SATSolver interface {
	Solve(SAT) (SATSolution, error) // Returns a solution of the SAT instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
}

var inProcessSolvers = map[string]func() SATSolver{
	"gophersat": NewGophersatSolver,
	"gini":      NewGiniSolver,
}

// SolverNames lists every solver NewSolver accepts, sorted
func SolverNames() []string {
	names := append(lo.Keys(inProcessSolvers), lo.Keys(externalSolvers)...)
	slices.Sort(names)
	return names
}

// NewSolver builds a solver by name. External solvers are looked up in paths (solver name -> executable path)
// and default to their usual executable name
func NewSolver(name string, paths map[string]string) (SATSolver, error) {
	if constructor, ok := inProcessSolvers[name]; ok {
		return constructor(), nil
	}

	if _, ok := externalSolvers[name]; ok {
		return NewExternalSolver(name, paths[name])
	}

	return nil, fmt.Errorf("%v is not a valid solver, allowed values are: %v", name, SolverNames())
}
