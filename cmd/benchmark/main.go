package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/heurisat/pkg/annealing"
	"github.com/limaJavier/heurisat/pkg/cnf"
	"github.com/limaJavier/heurisat/pkg/config"
	"github.com/limaJavier/heurisat/pkg/genetic"
	"github.com/limaJavier/heurisat/pkg/sat"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	defaultTestDirectory = "../../test/cnfs/"
	defaultResultsFile   = "benchmark_results.csv"
)

type EngineType int

const (
	geneticEngine EngineType = iota
	annealingEngine
)

type ResultType int

const (
	solved ResultType = iota
	unsolved
)

var (
	engineTypes = map[EngineType]string{
		geneticEngine:   "genetic",
		annealingEngine: "annealing",
	}
	resultTypes = map[ResultType]string{
		solved:   "solved",
		unsolved: "unsolved",
	}
)

type TestMetadata struct {
	Name        string
	Variables   int
	Clauses     int
	Satisfiable bool // According to a complete solver
}

type BenchmarkResult struct {
	RunId    string
	Engine   EngineType
	Test     TestMetadata
	Seed     uint64
	Duration int64 // Milliseconds
	Cost     int   // Unsatisfied clauses of the best assignment found
	Effort   int   // Generations evolved or evaluator calls made
	Result   ResultType
}

type Summary struct {
	Engine       string
	Runs         int
	Solved       int
	MeanDuration float64
	MeanCost     float64
}

func main() {
	directory := pflag.String("dir", defaultTestDirectory, "Directory holding the DIMACS (.cnf) instances")
	seeds := pflag.Int("seeds", 5, "Number of seeds each engine runs with on every instance")
	outFile := pflag.String("out", defaultResultsFile, "Path of the CSV file receiving every run")
	configPath := pflag.String("config", "", "Path to a JSON or YAML configuration file")
	pflag.Parse()
	if err := validateSeeds(*seeds); err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("cannot load configuration: %v", err)
		}
	}

	runId := uuid.NewString()
	tests, formulas := getTests(*directory)
	results := make([]BenchmarkResult, 0, len(tests)*len(engineTypes)*(*seeds))

	for i, test := range tests {
		for _, engine := range []EngineType{geneticEngine, annealingEngine} {
			for seed := uint64(1); seed <= uint64(*seeds); seed++ {
				log.Infof("Benchmarking test \"%v\" with engine \"%v\" and seed %v", test.Name, engineTypes[engine], seed)

				result := measure(engine, formulas[i], seed, cfg)
				result.RunId = runId
				result.Test = test
				results = append(results, result)
			}
		}
	}

	file, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()
	if err := toCsv(file, results); err != nil {
		log.Fatalf("cannot write CSV file: %v", err)
	}

	fmt.Printf("Run %v\n", runId)
	printSummary(os.Stdout, summarize(results))
}

func validateSeeds(seeds int) error {
	if seeds < 1 {
		return fmt.Errorf("--seeds must be at least 1, got %d", seeds)
	}
	return nil
}

func getTests(directory string) ([]TestMetadata, []*cnf.Formula) {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}
	testFiles = lo.Filter(testFiles, func(file os.DirEntry, _ int) bool {
		return !file.IsDir() && strings.HasSuffix(file.Name(), ".cnf")
	})

	solver := sat.NewGophersatSolver()
	tests := make([]TestMetadata, 0, len(testFiles))
	formulas := make([]*cnf.Formula, 0, len(testFiles))
	for _, file := range testFiles {
		filename := filepath.Join(directory, file.Name())
		formula, err := cnf.ParseDIMACSFile(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		solution, err := solver.Solve(sat.FromFormula(formula))
		if err != nil {
			log.Fatalf("cannot solve %v with the reference solver: %v", filename, err)
		}

		tests = append(tests, TestMetadata{
			Name:        filename,
			Variables:   formula.NumVars(),
			Clauses:     formula.NumClauses(),
			Satisfiable: solution != nil,
		})
		formulas = append(formulas, formula)
	}

	return tests, formulas
}

func measure(engine EngineType, formula *cnf.Formula, seed uint64, cfg config.Config) BenchmarkResult {
	rng := rand.New(rand.NewPCG(seed, seed))
	evaluator := cnf.NewEvaluator(formula)
	result := BenchmarkResult{Engine: engine, Seed: seed, Result: unsolved}

	start := time.Now()
	switch engine {
	case geneticEngine:
		run, err := genetic.New(evaluator, cfg.Genetic, rng).Run(context.Background())
		if err != nil {
			log.Fatalf("an error occurred during the genetic search: %v", err)
		}
		result.Cost = run.MaxFitness - run.Fitness
		result.Effort = run.Generations
		if run.Solved {
			result.Result = solved
		}
	case annealingEngine:
		run, err := annealing.New(evaluator, cfg.Annealing, rng).Run(context.Background())
		if err != nil {
			log.Fatalf("an error occurred during simulated annealing: %v", err)
		}
		result.Cost = run.BestCost
		result.Effort = run.Calls
		if run.Solved() {
			result.Result = solved
		}
	}
	result.Duration = time.Since(start).Milliseconds()

	return result
}

func toCsv(writer io.Writer, results []BenchmarkResult) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{"Run", "Engine", "Test", "Variables", "Clauses", "Satisfiable", "Seed", "Duration(ms)", "Cost", "Effort", "Result"}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.RunId,
			engineTypes[result.Engine],
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Variables),
			fmt.Sprintf("%d", result.Test.Clauses),
			fmt.Sprintf("%v", result.Test.Satisfiable),
			fmt.Sprintf("%d", result.Seed),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%d", result.Cost),
			fmt.Sprintf("%d", result.Effort),
			resultTypes[result.Result],
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %v", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// summarize aggregates the runs of each engine, ordered by engine name
func summarize(results []BenchmarkResult) []Summary {
	grouped := lo.GroupBy(results, func(result BenchmarkResult) string { return engineTypes[result.Engine] })

	summaries := lo.MapToSlice(grouped, func(engine string, runs []BenchmarkResult) Summary {
		return Summary{
			Engine: engine,
			Runs:   len(runs),
			Solved: lo.CountBy(runs, func(run BenchmarkResult) bool { return run.Result == solved }),
			MeanDuration: float64(lo.SumBy(runs, func(run BenchmarkResult) int64 { return run.Duration })) /
				float64(len(runs)),
			MeanCost: float64(lo.SumBy(runs, func(run BenchmarkResult) int { return run.Cost })) / float64(len(runs)),
		}
	})
	slices.SortFunc(summaries, func(a, b Summary) int { return strings.Compare(a.Engine, b.Engine) })
	return summaries
}

func printSummary(writer io.Writer, summaries []Summary) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Engine", "Runs", "Solved", "Success(%)", "Mean Duration(ms)", "Mean Cost"})
	for _, summary := range summaries {
		table.Append([]string{
			summary.Engine,
			fmt.Sprintf("%d", summary.Runs),
			fmt.Sprintf("%d", summary.Solved),
			fmt.Sprintf("%.1f", 100*float64(summary.Solved)/float64(summary.Runs)),
			fmt.Sprintf("%.1f", summary.MeanDuration),
			fmt.Sprintf("%.2f", summary.MeanCost),
		})
	}
	table.Render()
}
