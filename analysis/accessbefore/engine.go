// Package accessbefore computes which locations may be accessed after
// another location has been accessed and then possibly modified within the
// same atomic segment, and condenses that relation into the hard ordering
// constraints of the lock assignment.
package accessbefore

import (
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/alias"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/extract"
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/program"
	"github.com/benSepanski/lockPlacementBenchmarks/utils/pq"

	"github.com/benbjohnson/immutable"
	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/container/intsets"
)

type bodyAnalysis struct {
	body     program.Body
	universe *intsets.Sparse
	table    *loc.Table
	aliases  *alias.Matrix

	entries map[int]bool
	exits   map[int]bool

	// In-flow of every instruction.
	facts *immutable.Map[int, flow]
}

func (a *bodyAnalysis) getOrBot(i int) flow {
	if f, ok := a.facts.Get(i); ok {
		return f
	}
	return empty
}

// ids collects the ids of the candidate locations among ls that belong to
// the universe of the body.
func (a *bodyAnalysis) ids(into *intsets.Sparse, ls []loc.Location) {
	for _, l := range ls {
		if !loc.IsCandidate(l) {
			continue
		}
		if id, ok := a.table.ID(l); ok && a.universe.Has(id) {
			into.Insert(id)
		}
	}
}

// transfer computes the out-flow of instruction k. When rel is not nil,
// the accessed-before edges induced by the in-flow are added to it.
func (a *bodyAnalysis) transfer(k int, in flow, rel Relation) flow {
	if a.entries[k] {
		in = freshSegment()
	}
	if !in.inSegment {
		return empty
	}

	instr := a.body.At(k)
	var acc, defs intsets.Sparse
	a.ids(&acc, instr.Uses())
	a.ids(&defs, instr.Defs())
	acc.UnionWith(&defs)

	if rel != nil {
		for _, v := range in.accThenMod.AppendTo(nil) {
			rel[v].UnionWith(&acc)
		}
	}

	out := in.copy()
	out.accessed.UnionWith(&acc)
	accessed := out.accessed.AppendTo(nil)
	for _, d := range defs.AppendTo(nil) {
		for _, v := range accessed {
			if v == d || a.aliases.Of(d, v) != alias.NotAlias {
				out.accThenMod.Insert(v)
			}
		}
	}

	if a.exits[k] {
		return empty
	}
	return out
}

func (a *bodyAnalysis) fixpoint() {
	// Every instruction is processed at least once, since a segment entry
	// produces a non-bottom flow regardless of its in-flow.
	W := pq.Full(a.body.Len())

	for !W.IsEmpty() {
		k := W.GetNext()
		out := a.transfer(k, a.getOrBot(k), nil)

		for _, succ := range a.body.Successors(k) {
			old := a.getOrBot(succ)
			up := old.join(out)
			if !old.eq(up) {
				a.facts = a.facts.Set(succ, up)
				W.Add(succ)
			}
		}
	}
}

// AnalyzeBody runs the accessed-before dataflow over one method body and
// returns the relation it induces over the ids of table. Only the segments
// of segs that belong to body are considered, and only locations in
// universe are tracked.
func AnalyzeBody(
	body program.Body,
	segs []program.AtomicSegment,
	universe *intsets.Sparse,
	table *loc.Table,
	aliases *alias.Matrix,
) Relation {
	a := &bodyAnalysis{
		body:     body,
		universe: universe,
		table:    table,
		aliases:  aliases,
		entries:  make(map[int]bool),
		exits:    make(map[int]bool),
		facts:    immutable.NewMap[int, flow](immutable.NewHasher(0)),
	}
	for _, seg := range segs {
		if seg.Body == body {
			a.entries[seg.First] = true
			a.exits[seg.Last] = true
		}
	}

	a.fixpoint()

	rel := NewRelation(table.Len())
	for k := 0; k < body.Len(); k++ {
		a.transfer(k, a.getOrBot(k), rel)
	}
	return rel
}

// Compute unions the accessed-before relations of every body containing a
// segment of res.
func Compute(res *extract.Result, aliases *alias.Matrix) Relation {
	rel := NewRelation(res.Table.Len())
	for _, body := range res.Bodies() {
		bodyRel := AnalyzeBody(body, res.Segments(), res.Universe(body), res.Table, aliases)
		log.WithFields(log.Fields{
			"body":  body.Name(),
			"edges": bodyRel.Edges(),
		}).Debug("Accessed-before relation of body")
		rel.UnionWith(bodyRel)
	}
	return rel
}
