package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	//** Arrange
	trace := NewTrace("temperature", "cost")

	//** Act
	trace.Append(100, 7)
	trace.Append(95, 9)
	trace.Append(90.25, 3)
	trace.Append(85.7375, 4)

	//** Assert
	assert.Equal(t, 4, trace.Len())
	assert.Equal(t, []float64{100, 95, 90.25, 85.7375}, trace.Steps())
	assert.Equal(t, []int{7, 9, 3, 4}, trace.Values())

	last, ok := trace.Last()
	assert.True(t, ok)
	assert.Equal(t, Point{Step: 85.7375, Value: 4}, last)

	assert.Equal(t, []int{7, 7, 3, 3}, trace.BestSoFar(true).Values())
	assert.Equal(t, []int{7, 9, 9, 9}, trace.BestSoFar(false).Values())
	assert.Equal(t, "best cost", trace.BestSoFar(true).ValueLabel)
}

func TestEmptyTrace(t *testing.T) {
	trace := NewTrace("generation", "fitness")

	_, ok := trace.Last()

	assert.False(t, ok)
	assert.Equal(t, 0, trace.BestSoFar(false).Len())
}

func TestTraceWriteCSV(t *testing.T) {
	trace := NewTrace("generation", "fitness")
	trace.Append(0, 80)
	trace.Append(1, 85)

	var builder strings.Builder
	require.NoError(t, trace.WriteCSV(&builder))

	assert.Equal(t, "generation,fitness\n0,80\n1,85\n", builder.String())
}
