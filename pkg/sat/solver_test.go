package sat

import (
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/limaJavier/heurisat/pkg/cnf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGophersat(t *testing.T) {
	solver := NewGophersatSolver()
	t.Run("Satisfiable instances", func(t *testing.T) {
		satisfiableExecution(t, solver)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, solver)
	})
}

func TestGini(t *testing.T) {
	solver := NewGiniSolver()
	t.Run("Satisfiable instances", func(t *testing.T) {
		satisfiableExecution(t, solver)
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		unsatisfiableExecution(t, solver)
	})
}

const testDirectory = "../../test/cnfs/"

func TestInstanceFiles(t *testing.T) {
	testFiles, err := os.ReadDir(testDirectory)
	require.NoError(t, err)

	for _, file := range testFiles {
		//** Arrange
		formula, err := cnf.ParseDIMACSFile(filepath.Join(testDirectory, file.Name()))
		require.NoError(t, err)
		sat := FromFormula(formula)
		satisfiable := !strings.HasPrefix(file.Name(), "uuf")

		for _, solver := range []SATSolver{NewGophersatSolver(), NewGiniSolver()} {
			//** Act
			solution, err := solver.Solve(sat)

			//** Assert
			require.NoError(t, err)
			assert.Equal(t, satisfiable, solution != nil, file.Name())
			if solution != nil {
				assert.True(t, Verify(sat, solution), file.Name())
			}
		}
	}
}

func TestExternalSolvers(t *testing.T) {
	for name, profile := range externalSolvers {
		t.Run(name, func(t *testing.T) {
			if _, err := exec.LookPath(profile.executable); err != nil {
				t.Skipf("%v is not installed", profile.executable)
			}
			solver, err := NewSolver(name, nil)
			require.NoError(t, err)
			satisfiableExecution(t, solver)
			unsatisfiableExecution(t, solver)
		})
	}
}

func TestNewSolver(t *testing.T) {
	for _, name := range SolverNames() {
		solver, err := NewSolver(name, map[string]string{"kissat": "/opt/kissat/bin/kissat"})
		assert.NoError(t, err)
		assert.NotNil(t, solver)
	}

	kissat, err := NewSolver("kissat", map[string]string{"kissat": "/opt/kissat/bin/kissat"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/kissat/bin/kissat", kissat.(*externalSolver).path)

	_, err = NewSolver("walksat", nil)
	assert.Error(t, err)
}

func TestParseSolution(t *testing.T) {
	t.Run("Competition output", func(t *testing.T) {
		output := "c some comment\ns SATISFIABLE\nv 1 -2 3\nv -4 5 0\n"

		solution, err := parseSolution(output)

		require.NoError(t, err)
		assert.Equal(t, SATSolution{1, -2, 3, -4, 5}, solution)
	})

	t.Run("Model file", func(t *testing.T) {
		solution, err := parseModelFile("SAT\n-1 2 -3 0\n")

		require.NoError(t, err)
		assert.Equal(t, SATSolution{-1, 2, -3}, solution)
	})

	t.Run("Garbage literal", func(t *testing.T) {
		_, err := parseSolution("v 1 x 0\n")
		assert.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	instance := SAT{Variables: 3, Clauses: [][]int64{{1, 2}, {-1, 3}}}

	assert.True(t, Verify(instance, SATSolution{1, -2, 3}))
	assert.False(t, Verify(instance, SATSolution{1, -2, -3}))
	assert.False(t, Verify(instance, SATSolution{1, -1, 3}))
	assert.False(t, Verify(instance, SATSolution{1, 1, 3}))
}

func TestFromFormula(t *testing.T) {
	formula, err := cnf.NewFormula(3, [][]int{{1, -2, 3}, {-3}})
	require.NoError(t, err)

	instance := FromFormula(formula)

	assert.Equal(t, SAT{Variables: 3, Clauses: [][]int64{{1, -2, 3}, {-3}}}, instance)
	assert.Equal(t, "p cnf 3 2\n1 -2 3 0\n-3 0\n", instance.ToDIMACS())
	assert.Equal(t, cnf.Bitstring{true, false, false}, SATSolution{1, -2, -3}.Bitstring(3))
}

func satisfiableExecution(t *testing.T, solver SATSolver) {
	rng := rand.New(rand.NewPCG(42, 7))
	for i := range 10 {
		//** Arrange
		sat := generateSATInstance(rng, 10+10*i, 40+40*i)
		formula := toFormula(t, sat)

		//** Act
		solution, err := solver.Solve(sat)
		require.NoError(t, err)

		//** Assert
		require.NotNil(t, solution, "planted instance reported as unsatisfiable")
		assert.True(t, Verify(sat, solution))
		assert.Equal(t, 0, cnf.Cost(formula, solution.Bitstring(sat.Variables)))
	}

	// A formula without clauses is trivially satisfiable
	solution, err := solver.Solve(SAT{Variables: 4})
	require.NoError(t, err)
	assert.Len(t, solution, 4)
}

func unsatisfiableExecution(t *testing.T, solver SATSolver) {
	// Every sign combination over three variables
	sat := SAT{Variables: 3}
	for mask := range 8 {
		clause := make([]int64, 0, 3)
		for variable := int64(1); variable <= 3; variable++ {
			if mask&(1<<(variable-1)) != 0 {
				clause = append(clause, -variable)
			} else {
				clause = append(clause, variable)
			}
		}
		sat.Clauses = append(sat.Clauses, clause)
	}

	solution, err := solver.Solve(sat)

	require.NoError(t, err)
	assert.Nil(t, solution)
}

// generateSATInstance plants a random assignment and builds clauses of width 1 to 5 that it satisfies.
// variables must be at least 5
func generateSATInstance(rng *rand.Rand, variables, clauses int) SAT {
	planted := cnf.RandomBitstring(rng, variables)
	sat := SAT{Variables: uint64(variables)}
	for range clauses {
		width := rng.IntN(5) + 1
		clause := make([]int64, 0, width)
		satisfied := false
		for _, index := range rng.Perm(variables)[:width] {
			literal := int64(index + 1)
			if rng.IntN(2) == 0 {
				literal = -literal
			}
			satisfied = satisfied || cnf.Literal(literal).Satisfied(planted)
			clause = append(clause, literal)
		}
		if !satisfied {
			clause[0] = -clause[0]
		}
		sat.Clauses = append(sat.Clauses, clause)
	}
	return sat
}

func toFormula(t *testing.T, sat SAT) *cnf.Formula {
	t.Helper()
	clauses := make([][]int, 0, len(sat.Clauses))
	for _, clause := range sat.Clauses {
		literals := make([]int, 0, len(clause))
		for _, literal := range clause {
			literals = append(literals, int(literal))
		}
		clauses = append(clauses, literals)
	}
	formula, err := cnf.NewFormula(int(sat.Variables), clauses)
	require.NoError(t, err)
	return formula
}
