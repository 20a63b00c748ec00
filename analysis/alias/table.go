package alias

import (
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
	"github.com/benSepanski/lockPlacementBenchmarks/utils/hmap"
)

type pair struct {
	a, b loc.Location
}

type pairHasher struct{}

func (pairHasher) Hash(p pair) uint32 {
	// Symmetric, since relations are recorded for unordered pairs.
	return p.a.Hash() ^ p.b.Hash()
}

func (pairHasher) Equal(p, q pair) bool {
	return (p.a.Equal(q.a) && p.b.Equal(q.b)) ||
		(p.a.Equal(q.b) && p.b.Equal(q.a))
}

// Table is an oracle backed by explicitly recorded relations, deferring
// to Fallback for every pair it does not know about.
type Table struct {
	Fallback  Oracle
	relations *hmap.Map[pair, Relation]
}

func NewTable(fallback Oracle) *Table {
	return &Table{
		Fallback:  fallback,
		relations: hmap.NewMap[Relation, pair](pairHasher{}),
	}
}

// Record sets the relation between a and b (in both directions).
func (t *Table) Record(a, b loc.Location, r Relation) {
	t.relations.Set(pair{a, b}, r)
}

func (t *Table) Relation(a, b loc.Location) Relation {
	if a.Equal(b) {
		return MustAlias
	}
	if r, ok := t.relations.GetOk(pair{a, b}); ok {
		return r
	}
	if t.Fallback == nil {
		return NotAlias
	}
	return t.Fallback.Relation(a, b)
}

// Len returns the number of recorded relations.
func (t *Table) Len() int {
	return t.relations.Len()
}
