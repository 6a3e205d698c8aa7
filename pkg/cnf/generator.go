package cnf

import (
	"math/rand/v2"
)

// RandomThreeSAT generates a uniform random 3-CNF formula. Variables inside a clause are distinct whenever variables >= 3
func RandomThreeSAT(rng *rand.Rand, variables, clauses int) (*Formula, error) {
	if variables <= 0 {
		return NewThreeSAT(variables, nil)
	}

	rawClauses := make([][]int, clauses)
	for i := range rawClauses {
		rawClauses[i] = randomClause(rng, variables)
	}
	return NewThreeSAT(variables, rawClauses)
}

// PlantedThreeSAT generates a random 3-CNF formula that is satisfied by the returned assignment
func PlantedThreeSAT(rng *rand.Rand, variables, clauses int) (*Formula, Bitstring, error) {
	if variables <= 0 {
		_, err := NewThreeSAT(variables, nil)
		return nil, nil, err
	}

	planted := RandomBitstring(rng, variables)

	rawClauses := make([][]int, clauses)
	for i := range rawClauses {
		clause := randomClause(rng, variables)
		satisfied := false
		for _, literal := range clause {
			if Literal(literal).Satisfied(planted) {
				satisfied = true
				break
			}
		}
		// Negate a random literal so the planted assignment satisfies the clause
		if !satisfied {
			j := rng.IntN(len(clause))
			clause[j] = -clause[j]
		}
		rawClauses[i] = clause
	}

	formula, err := NewThreeSAT(variables, rawClauses)
	if err != nil {
		return nil, nil, err
	}
	return formula, planted, nil
}

// RandomBitstring draws every bit uniformly from {false, true}
func RandomBitstring(rng *rand.Rand, length int) Bitstring {
	bitstring := make(Bitstring, length)
	for i := range bitstring {
		bitstring[i] = rng.IntN(2) == 1
	}
	return bitstring
}

func randomClause(rng *rand.Rand, variables int) []int {
	clause := make([]int, 0, 3)
	used := make(map[int]bool, 3)
	for len(clause) < 3 {
		variable := rng.IntN(variables) + 1
		if used[variable] && variables >= 3 {
			continue
		}
		used[variable] = true

		if rng.IntN(2) == 0 {
			clause = append(clause, -variable)
		} else {
			clause = append(clause, variable)
		}
	}
	return clause
}
