package accessbefore

import (
	"github.com/benSepanski/lockPlacementBenchmarks/utils/graph"

	"golang.org/x/tools/container/intsets"
)

// Relation is a directed graph over location ids, represented by the
// successor set of every id.
type Relation []*intsets.Sparse

func NewRelation(n int) Relation {
	r := make(Relation, n)
	for i := range r {
		r[i] = &intsets.Sparse{}
	}
	return r
}

// FromLists builds a relation from successor lists.
func FromLists(succs [][]int) Relation {
	r := NewRelation(len(succs))
	for v, ws := range succs {
		for _, w := range ws {
			r[v].Insert(w)
		}
	}
	return r
}

func (r Relation) Add(v, w int) {
	r[v].Insert(w)
}

func (r Relation) Has(v, w int) bool {
	return r[v].Has(w)
}

// Successors returns the successors of v in ascending order.
func (r Relation) Successors(v int) []int {
	return r[v].AppendTo([]int{})
}

// Lists converts the relation to successor lists.
func (r Relation) Lists() [][]int {
	res := make([][]int, len(r))
	for v := range r {
		res[v] = r.Successors(v)
	}
	return res
}

// UnionWith adds every edge of o to r. Both relations must range over the
// same ids.
func (r Relation) UnionWith(o Relation) {
	for v := range r {
		r[v].UnionWith(o[v])
	}
}

// Edges counts the edges of the relation.
func (r Relation) Edges() (n int) {
	for _, s := range r {
		n += s.Len()
	}
	return
}

func (r Relation) Graph() graph.Graph[int] {
	return graph.OfDense(len(r), r.Successors)
}
