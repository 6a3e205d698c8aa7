package sat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parseSolution reads the "v ..." lines of a SAT-competition output
func parseSolution(solverOutput string) (SATSolution, error) {
	tokens := lo.Reduce(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			return len(line) > 0 && line[0] == 'v'
		}),
		func(tokens []string, line string, _ int) []string {
			return append(tokens, strings.Fields(line[1:])...)
		},
		[]string{},
	)
	return parseLiterals(tokens)
}

// parseModelFile reads a minisat-style result file: a "SAT" header followed by the model
func parseModelFile(solverOutput string) (SATSolution, error) {
	tokens := lo.Filter(strings.Fields(solverOutput), func(token string, _ int) bool {
		return token != "SAT" && token != "SATISFIABLE"
	})
	return parseLiterals(tokens)
}

func parseLiterals(tokens []string) (SATSolution, error) {
	solution := make(SATSolution, 0, len(tokens))
	for _, token := range tokens {
		value, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal in solver output: %v", err)
		}
		if value != 0 {
			solution = append(solution, value)
		}
	}
	return solution, nil
}
