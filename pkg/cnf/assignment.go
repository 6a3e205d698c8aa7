package cnf

import (
	"strings"
)

// Assignment is any candidate solution that can be queried by 1-based variable index
type Assignment interface {
	// Returns the boolean value bound to the variable
	ValueOf(variable int) bool
	// Returns the highest variable index covered by the assignment; variables 1..Len() can be queried
	Len() int
}

// Bitstring is the dense form of an assignment: index i holds the value of variable i+1
type Bitstring []bool

func NewBitstring(values ...bool) Bitstring {
	bitstring := make(Bitstring, len(values))
	copy(bitstring, values)
	return bitstring
}

func (bitstring Bitstring) ValueOf(variable int) bool {
	return bitstring[variable-1]
}

func (bitstring Bitstring) Len() int {
	return len(bitstring)
}

func (bitstring Bitstring) Clone() Bitstring {
	clone := make(Bitstring, len(bitstring))
	copy(clone, bitstring)
	return clone
}

// Flip returns a copy of the bitstring with the bit at the 0-based index negated
func (bitstring Bitstring) Flip(index int) Bitstring {
	flipped := bitstring.Clone()
	flipped[index] = !flipped[index]
	return flipped
}

func (bitstring Bitstring) String() string {
	return Key(bitstring)
}

// MapAssignment is the sparse form of an assignment keyed by 1-based variable index. Missing variables read as false
type MapAssignment map[int]bool

func (assignment MapAssignment) ValueOf(variable int) bool {
	return assignment[variable]
}

// Len is the highest bound variable, so a sparse map covers the unbound variables below it
func (assignment MapAssignment) Len() int {
	highest := 0
	for variable := range assignment {
		highest = max(highest, variable)
	}
	return highest
}

func (assignment MapAssignment) Clone() MapAssignment {
	clone := make(MapAssignment, len(assignment))
	for variable, value := range assignment {
		clone[variable] = value
	}
	return clone
}

// Flip returns a copy of the assignment with the given variable negated
func (assignment MapAssignment) Flip(variable int) MapAssignment {
	flipped := assignment.Clone()
	flipped[variable] = !flipped[variable]
	return flipped
}

func (assignment MapAssignment) String() string {
	return Key(assignment)
}

// ToBitstring converts any assignment into its dense form
func ToBitstring(assignment Assignment) Bitstring {
	bitstring := make(Bitstring, assignment.Len())
	for i := range bitstring {
		bitstring[i] = assignment.ValueOf(i + 1)
	}
	return bitstring
}

// ToMap converts any assignment into its sparse form
func ToMap(assignment Assignment) MapAssignment {
	variables := assignment.Len()
	mapAssignment := make(MapAssignment, variables)
	for variable := 1; variable <= variables; variable++ {
		mapAssignment[variable] = assignment.ValueOf(variable)
	}
	return mapAssignment
}

// Key renders the assignment as a string of 0s and 1s ordered by variable, suitable for content equality
func Key(assignment Assignment) string {
	variables := assignment.Len()
	var builder strings.Builder
	builder.Grow(variables)
	for variable := 1; variable <= variables; variable++ {
		if assignment.ValueOf(variable) {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	return builder.String()
}

// HammingDistance counts the variables in [1, max(a.Len(), b.Len())] on which both assignments disagree
func HammingDistance(a, b Assignment) int {
	lenA, lenB := a.Len(), b.Len()
	distance := 0
	for variable := 1; variable <= max(lenA, lenB); variable++ {
		if valueOrFalse(a, lenA, variable) != valueOrFalse(b, lenB, variable) {
			distance++
		}
	}
	return distance
}

func valueOrFalse(assignment Assignment, length, variable int) bool {
	if variable > length {
		return false
	}
	return assignment.ValueOf(variable)
}

// Literals renders the assignment the way complete solvers report models: v for true, -v for false
func Literals(assignment Assignment) []int {
	variables := assignment.Len()
	literals := make([]int, variables)
	for variable := 1; variable <= variables; variable++ {
		if assignment.ValueOf(variable) {
			literals[variable-1] = variable
		} else {
			literals[variable-1] = -variable
		}
	}
	return literals
}
