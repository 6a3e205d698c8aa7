package cnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitstringFlip(t *testing.T) {
	original := Bitstring{true, false, true}

	flipped := original.Flip(1)

	assert.Equal(t, Bitstring{true, true, true}, flipped)
	assert.Equal(t, Bitstring{true, false, true}, original)
	assert.Equal(t, 1, HammingDistance(original, flipped))
}

func TestMapAssignmentFlip(t *testing.T) {
	original := MapAssignment{1: true, 2: false, 3: true}

	flipped := original.Flip(2)

	assert.Equal(t, MapAssignment{1: true, 2: true, 3: true}, flipped)
	assert.Equal(t, MapAssignment{1: true, 2: false, 3: true}, original)
	assert.Equal(t, 1, HammingDistance(original, flipped))
}

func TestConversions(t *testing.T) {
	bitstring := Bitstring{false, true, true, false}

	mapAssignment := ToMap(bitstring)

	assert.Equal(t, MapAssignment{1: false, 2: true, 3: true, 4: false}, mapAssignment)
	assert.Equal(t, bitstring, ToBitstring(mapAssignment))
	assert.Equal(t, "0110", Key(bitstring))
	assert.Equal(t, Key(bitstring), Key(mapAssignment))
	assert.Equal(t, "0110", mapAssignment.String())
	assert.Equal(t, []int{-1, 2, 3, -4}, Literals(mapAssignment))
	assert.Equal(t, 0, HammingDistance(bitstring, mapAssignment))
}

func TestNewBitstringCopies(t *testing.T) {
	values := []bool{true, false}

	bitstring := NewBitstring(values...)
	values[0] = false

	assert.True(t, bitstring.ValueOf(1))
	assert.Equal(t, 2, bitstring.Len())
}

func TestSparseMapAssignment(t *testing.T) {
	//** Arrange
	sparse := MapAssignment{2: true}

	//** Act & Assert
	assert.Equal(t, 2, sparse.Len())
	assert.Equal(t, "01", Key(sparse))
	assert.NotEqual(t, Key(MapAssignment{1: false}), Key(sparse))
	assert.Equal(t, Bitstring{false, true}, ToBitstring(sparse))
	assert.Equal(t, []int{-1, 2}, Literals(sparse))
	assert.Equal(t, MapAssignment{1: false, 2: true}, ToMap(sparse))
	assert.Equal(t, 1, HammingDistance(MapAssignment{3: true}, MapAssignment{}))
	assert.Equal(t, 0, HammingDistance(sparse, Bitstring{false, true}))
	assert.Equal(t, 0, MapAssignment{}.Len())
}
