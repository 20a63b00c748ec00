// Package extract collects the shared locations accessed by atomic segments.
package extract

import (
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/program"

	"golang.org/x/tools/container/intsets"
)

// Result holds the location table of a monitor together with the ids
// accessed by each of its atomic segments.
type Result struct {
	Table *loc.Table
	// Accessed[s] is the sorted set of location ids occurring in segment s.
	Accessed [][]int

	segments []program.AtomicSegment
}

// Locations scans the uses and then the defs of every instruction in every
// segment, interning each candidate location on first sight.
func Locations(segments []program.AtomicSegment) *Result {
	res := &Result{
		Table:    loc.NewTable(),
		Accessed: make([][]int, len(segments)),
		segments: segments,
	}

	for s, seg := range segments {
		var accessed intsets.Sparse
		record := func(ls []loc.Location) {
			for _, l := range ls {
				if loc.IsCandidate(l) {
					accessed.Insert(res.Table.Intern(l))
				}
			}
		}

		for i := seg.First; i <= seg.Last; i++ {
			instr := seg.Body.At(i)
			record(instr.Uses())
			record(instr.Defs())
		}
		res.Accessed[s] = accessed.AppendTo([]int{})
	}

	return res
}

// Segments returns the segments the result was computed for.
func (r *Result) Segments() []program.AtomicSegment {
	return r.segments
}

// Universe returns the ids of the locations accessed by any segment of body.
func (r *Result) Universe(body program.Body) *intsets.Sparse {
	universe := &intsets.Sparse{}
	for s, seg := range r.segments {
		if seg.Body == body {
			for _, id := range r.Accessed[s] {
				universe.Insert(id)
			}
		}
	}
	return universe
}

// Bodies returns the distinct bodies containing segments, in order of first
// appearance.
func (r *Result) Bodies() (bodies []program.Body) {
	seen := make(map[program.Body]bool)
	for _, seg := range r.segments {
		if !seen[seg.Body] {
			seen[seg.Body] = true
			bodies = append(bodies, seg.Body)
		}
	}
	return
}

// IDs maps the candidate locations among ls to their ids in the table,
// dropping locations outside the universe.
func (r *Result) IDs(ls []loc.Location, universe *intsets.Sparse) (ids []int) {
	for _, l := range ls {
		if !loc.IsCandidate(l) {
			continue
		}
		if id, ok := r.Table.ID(l); ok && universe.Has(id) {
			ids = append(ids, id)
		}
	}
	return
}
