// Package scope determines which locations cannot anchor a local lock at
// the entry of an atomic segment.
package scope

import (
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/program"
)

// InScope decides whether l is guaranteed to be initialized and accessible
// at the entry of seg.
func InScope(seg program.AtomicSegment, l loc.Location) bool {
	body := seg.Body

	switch l := l.(type) {
	case loc.Local:
		for _, d := range body.GuaranteedDefs(seg.First) {
			if d.Equal(l) {
				return true
			}
		}
		return false
	case loc.InstanceField, loc.StaticField, loc.Param:
		return body.Accessible(l)
	case loc.This:
		return !body.IsStatic() && body.Class() == l.Class
	case loc.ArrayElement:
		return InScope(seg, l.Base)
	}
	return false
}

// OutOfScope returns the sorted ids of the locations of table that are not
// in scope at the entry of seg.
func OutOfScope(seg program.AtomicSegment, table *loc.Table) (ids []int) {
	for id, l := range table.All() {
		if !InScope(seg, l) {
			ids = append(ids, id)
		}
	}
	return
}

// Calculate computes OutOfScope for every segment.
func Calculate(segs []program.AtomicSegment, table *loc.Table) [][]int {
	res := make([][]int, len(segs))
	for s, seg := range segs {
		res[s] = OutOfScope(seg, table)
	}
	return res
}
