package annealing

import (
	"github.com/limaJavier/heurisat/pkg/cnf"
)

// solutionSet keeps assignments in insertion order, ignoring any assignment whose content was already added
type solutionSet struct {
	keys  map[string]bool
	items []cnf.MapAssignment
}

func newSolutionSet() *solutionSet {
	return &solutionSet{
		keys:  make(map[string]bool),
		items: make([]cnf.MapAssignment, 0),
	}
}

// Add reports whether the assignment was new
func (set *solutionSet) Add(assignment cnf.MapAssignment) bool {
	key := cnf.Key(assignment)
	if set.keys[key] {
		return false
	}
	set.keys[key] = true
	set.items = append(set.items, assignment)
	return true
}

func (set *solutionSet) Len() int {
	return len(set.items)
}

func (set *solutionSet) Items() []cnf.MapAssignment {
	items := make([]cnf.MapAssignment, len(set.items))
	copy(items, set.items)
	return items
}
