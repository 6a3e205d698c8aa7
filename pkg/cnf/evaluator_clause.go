package cnf

type clauseEvaluator struct {
	formula *Formula
}

func newClauseEvaluator(formula *Formula) *clauseEvaluator {
	return &clauseEvaluator{formula: formula}
}

func (evaluator *clauseEvaluator) Formula() *Formula {
	return evaluator.formula
}

func (evaluator *clauseEvaluator) SatisfiedCount(assignment Assignment) int {
	satisfied := 0
	for _, clause := range evaluator.formula.clauses {
		if clauseSatisfied(clause, assignment) {
			satisfied++
		}
	}
	return satisfied
}

func (evaluator *clauseEvaluator) Cost(assignment Assignment) int {
	return evaluator.formula.NumClauses() - evaluator.SatisfiedCount(assignment)
}

func (evaluator *clauseEvaluator) Unsatisfied(assignment Assignment) []int {
	unsatisfied := make([]int, 0)
	for i, clause := range evaluator.formula.clauses {
		if !clauseSatisfied(clause, assignment) {
			unsatisfied = append(unsatisfied, i)
		}
	}
	return unsatisfied
}

func (evaluator *clauseEvaluator) MaxFitness() int {
	return evaluator.formula.NumClauses()
}

// A clause holds as soon as one of its literals holds
func clauseSatisfied(clause Clause, assignment Assignment) bool {
	for _, literal := range clause {
		if literal.Satisfied(assignment) {
			return true
		}
	}
	return false
}
