// Package search holds the artifacts shared by the search engines, such as convergence traces.
package search

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/samber/lo"
)

// Point is one observation of a run: the step (generation number or temperature) and the value observed at it
type Point struct {
	Step  float64
	Value int
}

// Trace is an append-only series of points produced for external consumption (e.g. plotting)
type Trace struct {
	StepLabel  string
	ValueLabel string
	Points     []Point
}

func NewTrace(stepLabel, valueLabel string) *Trace {
	return &Trace{
		StepLabel:  stepLabel,
		ValueLabel: valueLabel,
		Points:     make([]Point, 0),
	}
}

func (trace *Trace) Append(step float64, value int) {
	trace.Points = append(trace.Points, Point{Step: step, Value: value})
}

func (trace *Trace) Len() int {
	return len(trace.Points)
}

func (trace *Trace) Steps() []float64 {
	return lo.Map(trace.Points, func(point Point, _ int) float64 { return point.Step })
}

func (trace *Trace) Values() []int {
	return lo.Map(trace.Points, func(point Point, _ int) int { return point.Value })
}

// Last returns the most recent point; ok is false for an empty trace
func (trace *Trace) Last() (point Point, ok bool) {
	if len(trace.Points) == 0 {
		return Point{}, false
	}
	return trace.Points[len(trace.Points)-1], true
}

// BestSoFar derives the running best of the trace: the running minimum when minimize is true, otherwise the running maximum
func (trace *Trace) BestSoFar(minimize bool) *Trace {
	best := NewTrace(trace.StepLabel, "best "+trace.ValueLabel)
	for i, point := range trace.Points {
		value := point.Value
		if i > 0 {
			previous := best.Points[i-1].Value
			if (minimize && previous < value) || (!minimize && previous > value) {
				value = previous
			}
		}
		best.Append(point.Step, value)
	}
	return best
}

// WriteCSV writes the trace as a two-column CSV with a header row
func (trace *Trace) WriteCSV(writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write([]string{trace.StepLabel, trace.ValueLabel}); err != nil {
		return err
	}
	for _, point := range trace.Points {
		record := []string{
			strconv.FormatFloat(point.Step, 'g', -1, 64),
			strconv.Itoa(point.Value),
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
