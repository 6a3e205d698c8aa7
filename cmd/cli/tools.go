package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/limaJavier/heurisat/pkg/cnf"
	"github.com/limaJavier/heurisat/pkg/sat"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	solverName string
	variables  int
	clauses    int
	planted    bool
)

type checkOutput struct {
	File        string `json:"file"`
	Solver      string `json:"solver"`
	Satisfiable bool   `json:"satisfiable"`
	Assignment  []int  `json:"assignment,omitempty"`
	Elapsed     string `json:"elapsed"`
}

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Solve the formula with a complete SAT solver and verify its model",
		Long: fmt.Sprintf(`Solves the formula with a complete SAT solver to know whether a satisfying assignment exists.
The model returned by the solver is verified with the same evaluator the heuristics use.

Allowed solvers are: %v. External solvers are looked up in the "solvers" section of the configuration file.`,
			strings.Join(sat.SolverNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: checkFunc,
	}

	checkCmd.Flags().StringVar(&solverName, "solver", "gophersat", "SAT solver to use")
	return checkCmd
}

func newGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random 3-CNF formula in DIMACS format",
		Args:  cobra.NoArgs,
		RunE:  generateFunc,
	}

	generateCmd.Flags().IntVar(&variables, "vars", 20, "Number of variables")
	generateCmd.Flags().IntVar(&clauses, "clauses", 91, "Number of clauses")
	generateCmd.Flags().BoolVar(&planted, "planted", false, "Plant a random assignment so the formula is satisfiable")
	return generateCmd
}

func checkFunc(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	solver, err := sat.NewSolver(strings.ToLower(solverName), cfg.Solvers)
	if err != nil {
		return err
	}

	formula, err := cnf.ParseDIMACSFile(args[0])
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	start := time.Now()
	instance := sat.FromFormula(formula)
	solution, err := solver.Solve(instance)
	if err != nil {
		return err
	}

	output := checkOutput{File: args[0], Solver: solverName, Satisfiable: solution != nil}
	if solution != nil {
		assignment := solution.Bitstring(instance.Variables)
		if !sat.Verify(instance, solution) || cnf.Cost(formula, assignment) != 0 {
			return fmt.Errorf("%v returned a model that does not satisfy the formula", solverName)
		}
		output.Assignment = cnf.Literals(assignment)
	}
	output.Elapsed = time.Since(start).String()

	setExitCode(output.Satisfiable)
	return writeOutput(output)
}

func generateFunc(cmd *cobra.Command, args []string) error {
	rng, seed := newRand(cmd)

	var formula *cnf.Formula
	var err error
	if planted {
		var assignment cnf.Bitstring
		formula, assignment, err = cnf.PlantedThreeSAT(rng, variables, clauses)
		if err == nil {
			log.WithField("assignment", cnf.Literals(assignment)).Info("planted assignment")
		}
	} else {
		formula, err = cnf.RandomThreeSAT(rng, variables, clauses)
	}
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"vars": variables, "clauses": clauses, "seed": seed}).Debug("formula generated")

	if outFile == "" {
		return formula.WriteDIMACS(os.Stdout)
	}
	file, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("an error occurred while creating the output file: %v", err)
	}
	defer file.Close()
	return formula.WriteDIMACS(file)
}
