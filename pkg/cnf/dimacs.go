package cnf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-air/gini/dimacs"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// ParseDIMACSFile reads a DIMACS-CNF file from disk
func ParseDIMACSFile(fileName string) (*Formula, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "could not open file")
	}
	defer file.Close()

	return ParseDIMACS(file)
}

// ParseDIMACS reads a DIMACS-CNF description: comment lines start with "c", the problem line is
// "p cnf <variables> <clauses>" and every clause is a run of literals terminated by 0.
// A line starting with "%" ends the input (SATLIB benchmark files carry such a trailer)
func ParseDIMACS(reader io.Reader) (*Formula, error) {
	body, variables, declaredClauses, err := cnfBody(reader)
	if err != nil {
		return nil, err
	}

	collector := &clauseCollector{}
	if err := dimacs.ReadCnf(body, collector); err != nil {
		return nil, errors.Wrap(err, "invalid clause")
	}
	// Tolerate a last clause without its trailing 0
	collector.flush()

	if len(collector.clauses) != declaredClauses {
		return nil, errors.Wrapf(ErrInvalidFormula, "problem line declares %d clauses but %d were found", declaredClauses, len(collector.clauses))
	}

	return NewFormula(variables, collector.clauses)
}

// cnfBody keeps the problem line and clause lines up to the first "%" line. The problem line is checked
// and rewritten with single spaces, the only layout the clause reader accepts
func cnfBody(reader io.Reader) (io.Reader, int, int, error) {
	var (
		body                       bytes.Buffer
		variables, declaredClauses int
		headerFound                bool
	)

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "c") {
			continue
		} else if strings.HasPrefix(line, "%") {
			break
		}

		if strings.HasPrefix(line, "p") {
			if headerFound {
				return nil, 0, 0, errors.Errorf("line %d: duplicate problem line", lineNumber)
			}
			parts := strings.Fields(line)
			if len(parts) != 4 || parts[0] != "p" || parts[1] != "cnf" {
				return nil, 0, 0, errors.Errorf("line %d: invalid problem line: %s", lineNumber, line)
			}
			var err error
			if variables, err = strconv.Atoi(parts[2]); err != nil {
				return nil, 0, 0, errors.Wrapf(err, "line %d: invalid variable count", lineNumber)
			}
			if declaredClauses, err = strconv.Atoi(parts[3]); err != nil {
				return nil, 0, 0, errors.Wrapf(err, "line %d: invalid clause count", lineNumber)
			}
			headerFound = true
			fmt.Fprintf(&body, "p cnf %d %d\n", variables, declaredClauses)
			continue
		}

		if !headerFound {
			return nil, 0, 0, errors.Errorf("line %d: clause found before the problem line", lineNumber)
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, 0, errors.Wrap(err, "error reading input")
	} else if !headerFound {
		return nil, 0, 0, errors.New("missing problem line")
	}
	return &body, variables, declaredClauses, nil
}

// clauseCollector gathers the clauses visited by the DIMACS reader as plain integers
type clauseCollector struct {
	clauses [][]int
	current []int
}

func (collector *clauseCollector) Init(_, _ int) {}

func (collector *clauseCollector) Add(m z.Lit) {
	if m == z.LitNull {
		collector.clauses = append(collector.clauses, collector.current)
		collector.current = nil
		return
	}
	collector.current = append(collector.current, m.Dimacs())
}

func (collector *clauseCollector) Eof() {}

func (collector *clauseCollector) flush() {
	if len(collector.current) > 0 {
		collector.clauses = append(collector.clauses, collector.current)
		collector.current = nil
	}
}

// ToDIMACS renders the formula in DIMACS-CNF format
func (formula *Formula) ToDIMACS() string {
	var builder strings.Builder
	formula.WriteDIMACS(&builder)
	return builder.String()
}

func (formula *Formula) WriteDIMACS(writer io.Writer) error {
	buffered := bufio.NewWriter(writer)
	fmt.Fprintf(buffered, "p cnf %d %d\n", formula.variables, len(formula.clauses))
	for _, clause := range formula.clauses {
		for _, literal := range clause {
			fmt.Fprintf(buffered, "%d ", literal)
		}
		buffered.WriteString("0\n")
	}
	return buffered.Flush()
}
