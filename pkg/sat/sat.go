package sat

import (
	"fmt"
	"strings"

	"github.com/limaJavier/heurisat/pkg/cnf"
	"github.com/samber/lo"
)

// SATSolution lists one literal per variable: v when the variable is true and -v when it is false
type SATSolution []int64

type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

func FromFormula(formula *cnf.Formula) SAT {
	return SAT{
		Variables: uint64(formula.NumVars()),
		Clauses: lo.Map(formula.Clauses(), func(clause []int, _ int) []int64 {
			return lo.Map(clause, func(literal int, _ int) int64 { return int64(literal) })
		}),
	}
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// Bitstring converts the solution into a dense assignment over the given number of variables.
// Variables the solution does not mention default to false
func (solution SATSolution) Bitstring(variables uint64) cnf.Bitstring {
	bitstring := make(cnf.Bitstring, variables)
	for _, literal := range solution {
		if literal > 0 && uint64(literal) <= variables {
			bitstring[literal-1] = true
		}
	}
	return bitstring
}

// Verify checks that the solution has neither duplicates nor contradictions and that it satisfies every clause
func Verify(instance SAT, solution SATSolution) bool {
	literals := make(map[int64]bool)
	for _, literal := range solution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	return lo.EveryBy(instance.Clauses, func(clause []int64) bool {
		return lo.SomeBy(clause, func(literal int64) bool { return literals[literal] })
	})
}
