package alias

import (
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
)

// Matrix caches the relation of every pair of locations of a table.
// The oracle is queried once per unordered pair (i, j) with i < j.
type Matrix struct {
	n    int
	rels []Relation
}

func NewMatrix(table *loc.Table, oracle Oracle) *Matrix {
	n := table.Len()
	m := &Matrix{n: n, rels: make([]Relation, n*n)}

	for i := 0; i < n; i++ {
		m.rels[i*n+i] = MustAlias
		for j := i + 1; j < n; j++ {
			r := oracle.Relation(table.At(i), table.At(j))
			m.rels[i*n+j] = r
			m.rels[j*n+i] = r
		}
	}

	return m
}

// Of returns the relation between the locations with ids i and j.
func (m *Matrix) Of(i, j int) Relation {
	return m.rels[i*m.n+j]
}

func (m *Matrix) Len() int {
	return m.n
}

// Pairs calls do for every unordered pair i < j related by r.
func (m *Matrix) Pairs(r Relation, do func(i, j int)) {
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			if m.rels[i*m.n+j] == r {
				do(i, j)
			}
		}
	}
}
