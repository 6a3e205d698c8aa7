package cnf

type Evaluator interface {
	// Returns the formula the evaluator is bound to
	Formula() *Formula

	// Returns the number of clauses satisfied by the assignment, in [0, NumClauses]
	SatisfiedCount(assignment Assignment) int

	// Returns the number of clauses not satisfied by the assignment (lower is better, zero is optimal)
	Cost(assignment Assignment) int

	// Returns the indices of the clauses not satisfied by the assignment
	Unsatisfied(assignment Assignment) []int

	// Returns the best achievable satisfied count, which is the number of clauses
	MaxFitness() int
}

func NewEvaluator(formula *Formula) Evaluator {
	return newClauseEvaluator(formula)
}

// SatisfiedCount evaluates the assignment against the formula without binding an evaluator
func SatisfiedCount(formula *Formula, assignment Assignment) int {
	return newClauseEvaluator(formula).SatisfiedCount(assignment)
}

// Cost evaluates the assignment against the formula without binding an evaluator
func Cost(formula *Formula, assignment Assignment) int {
	return newClauseEvaluator(formula).Cost(assignment)
}
