package location

import (
	"github.com/benSepanski/lockPlacementBenchmarks/utils/hmap"
)

// Table assigns dense integer ids to locations in order of first sight.
// A table is owned by the analysis of a single monitor.
type Table struct {
	ids  *hmap.Map[Location, int]
	locs []Location
}

func NewTable() *Table {
	return &Table{
		ids: hmap.NewMap[int, Location](LocationHasher{}),
	}
}

// Intern returns the id of l, assigning the next free id if l is new.
func (t *Table) Intern(l Location) int {
	if id, ok := t.ids.GetOk(l); ok {
		return id
	}

	id := len(t.locs)
	t.ids.Set(l, id)
	t.locs = append(t.locs, l)
	return id
}

// ID returns the id of l, if l has been interned.
func (t *Table) ID(l Location) (int, bool) {
	return t.ids.GetOk(l)
}

// At returns the location with the given id.
func (t *Table) At(id int) Location {
	return t.locs[id]
}

func (t *Table) Len() int {
	return len(t.locs)
}

// All returns the locations indexed by id. The slice must not be modified.
func (t *Table) All() []Location {
	return t.locs
}
