package cnf

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrInvalidFormula is returned whenever a formula violates its structural invariants
var ErrInvalidFormula = errors.New("invalid formula")

// Literal is a signed variable index: the magnitude is the 1-based variable and the sign marks negation
type Literal int

func (literal Literal) Var() int {
	if literal < 0 {
		return int(-literal)
	}
	return int(literal)
}

func (literal Literal) Negated() bool {
	return literal < 0
}

// Satisfied reports whether the literal evaluates to true under the assignment
func (literal Literal) Satisfied(assignment Assignment) bool {
	return assignment.ValueOf(literal.Var()) != literal.Negated()
}

// Clause is a disjunction of literals
type Clause []Literal

// Formula is an immutable CNF formula. It must be built through NewFormula or NewThreeSAT
type Formula struct {
	variables int
	clauses   []Clause
}

func NewFormula(variables int, clauses [][]int) (*Formula, error) {
	if variables <= 0 {
		return nil, errors.Wrapf(ErrInvalidFormula, "variable count must be positive: %d", variables)
	}

	formula := &Formula{
		variables: variables,
		clauses:   make([]Clause, 0, len(clauses)),
	}

	for i, rawClause := range clauses {
		if len(rawClause) == 0 {
			return nil, errors.Wrapf(ErrInvalidFormula, "clause %d is empty", i)
		}

		clause := make(Clause, len(rawClause))
		for j, value := range rawClause {
			if value == 0 {
				return nil, errors.Wrapf(ErrInvalidFormula, "clause %d contains a zero literal", i)
			} else if value < -variables || value > variables {
				return nil, errors.Wrapf(ErrInvalidFormula, "clause %d: literal %d out of range [1, %d]", i, value, variables)
			}
			clause[j] = Literal(value)
		}
		formula.clauses = append(formula.clauses, clause)
	}

	return formula, nil
}

// NewThreeSAT builds a formula where every clause has exactly three literals
func NewThreeSAT(variables int, clauses [][]int) (*Formula, error) {
	for i, clause := range clauses {
		if len(clause) != 3 {
			return nil, errors.Wrapf(ErrInvalidFormula, "clause %d has %d literals, 3-SAT requires exactly 3", i, len(clause))
		}
	}
	return NewFormula(variables, clauses)
}

func (formula *Formula) NumVars() int {
	return formula.variables
}

func (formula *Formula) NumClauses() int {
	return len(formula.clauses)
}

// Clause returns a copy of the i-th clause
func (formula *Formula) Clause(i int) Clause {
	return slices.Clone(formula.clauses[i])
}

// Clauses returns a copy of the clause list as plain integers
func (formula *Formula) Clauses() [][]int {
	return lo.Map(formula.clauses, func(clause Clause, _ int) []int {
		return lo.Map(clause, func(literal Literal, _ int) int { return int(literal) })
	})
}

// IsThreeSAT reports whether every clause has exactly three literals
func (formula *Formula) IsThreeSAT() bool {
	return lo.EveryBy(formula.clauses, func(clause Clause) bool { return len(clause) == 3 })
}
