package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/limaJavier/heurisat/pkg/config"
	"github.com/limaJavier/heurisat/pkg/search"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit codes follow the SAT-solver convention
const (
	exitSolved    = 10
	exitNotSolved = 20
)

var (
	configPath string
	seed       uint64
	logLevel   string
	outFile    string
	traceFile  string

	exitCode = 0
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "heurisat",
		Short: "Metaheuristic search for 3-CNF satisfying assignments",
		Long: `heurisat looks for satisfying assignments of CNF formulas (DIMACS format) with a
genetic algorithm or simulated annealing, and can compare them against complete SAT solvers.

The process exits with 10 when a satisfying assignment was found and 20 otherwise.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON or YAML configuration file")
	flags.Uint64Var(&seed, "seed", 0, "Seed of the random source; a random seed is used when omitted")
	flags.StringVar(&logLevel, "log-level", "info", "Logging level (panic, fatal, error, warn, info, debug, trace)")
	flags.StringVar(&outFile, "out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	flags.StringVar(&traceFile, "trace", "", "Path to a CSV file receiving the search trace")

	rootCmd.AddCommand(newGeneticCmd(), newAnnealCmd(), newCheckCmd(), newGenerateCmd())
	return rootCmd
}

func loadConfig() config.Config {
	if configPath == "" {
		return config.Default()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	return cfg
}

// newRand seeds a PCG source from --seed, or from a random seed when the flag was not given
func newRand(cmd *cobra.Command) (*rand.Rand, uint64) {
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}
	log.WithField("seed", seed).Debug("random source seeded")
	return rand.New(rand.NewPCG(seed, seed)), seed
}

func interruptibleContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func writeOutput(value any) error {
	bytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(bytes))
		return nil
	}
	if err := os.WriteFile(outFile, bytes, 0666); err != nil {
		return fmt.Errorf("an error occurred while writing to the output file: %v", err)
	}
	return nil
}

func writeTrace(trace *search.Trace) error {
	if traceFile == "" || trace == nil {
		return nil
	}
	file, err := os.Create(traceFile)
	if err != nil {
		return fmt.Errorf("cannot create trace file: %v", err)
	}
	defer file.Close()
	return trace.WriteCSV(file)
}

func setExitCode(solved bool) {
	if solved {
		exitCode = exitSolved
	} else {
		exitCode = exitNotSolved
	}
}
