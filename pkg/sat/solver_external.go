package sat

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type solverProfile struct {
	executable string   // Default executable name, looked up in PATH
	args       []string // Arguments preceding the input/output files
	fileInput  bool     // The solver reads the DIMACS from a file instead of its standard input
	fileOutput bool     // The solver writes the model to a file instead of its standard output
}

var externalSolvers = map[string]solverProfile{
	"kissat":        {executable: "kissat", args: []string{"-q", "--relaxed"}},
	"cadical":       {executable: "cadical", args: []string{"-q"}},
	"cryptominisat": {executable: "cryptominisat5", args: []string{"--verb", "0"}},
	"minisat":       {executable: "minisat", args: []string{"-verb=0"}, fileInput: true, fileOutput: true},
	"glucose":       {executable: "glucose-simp", args: []string{"-verb=0"}, fileInput: true, fileOutput: true},
	"slime":         {executable: "slime", fileInput: true},
	"ortoolsat":     {executable: "ortoolsat", fileInput: true},
}

type externalSolver struct {
	name    string
	path    string
	profile solverProfile
}

// NewExternalSolver wraps a competition-style solver binary. An empty path falls back to the solver's usual executable name
func NewExternalSolver(name, path string) (SATSolver, error) {
	profile, ok := externalSolvers[name]
	if !ok {
		return nil, fmt.Errorf("%v is not a known external solver", name)
	}
	if path == "" {
		path = profile.executable
	}
	return &externalSolver{name: name, path: path, profile: profile}, nil
}

func (solver *externalSolver) Solve(sat SAT) (SATSolution, error) {
	dimacs := sat.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	cmd := exec.Command(solver.path, solver.profile.args...)

	if solver.profile.fileInput {
		inputPath, err := writeTempFile("dimacs-*.cnf", dimacs)
		if err != nil {
			return nil, err
		}
		defer os.Remove(inputPath) // Ensure the file is removed after execution
		cmd.Args = append(cmd.Args, inputPath)
	} else {
		cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into the solver's standard input
	}

	var outputPath string
	if solver.profile.fileOutput {
		var err error
		outputPath, err = writeTempFile(solver.name+"_output-*.txt", "")
		if err != nil {
			return nil, err
		}
		defer os.Remove(outputPath)
		cmd.Args = append(cmd.Args, outputPath)
	}

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	if err != nil && cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		return nil, fmt.Errorf("an error occurred during %v execution: %v : %v", solver.name, err.Error(), stderr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		return nil, nil
	}

	if !solver.profile.fileOutput {
		return parseSolution(stdOut.String())
	}

	output, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %v", err)
	}
	return parseModelFile(string(output))
}

func writeTempFile(pattern, content string) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %v", err)
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write temporary file: %v", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to close temporary file: %v", err)
	}
	return file.Name(), nil
}
