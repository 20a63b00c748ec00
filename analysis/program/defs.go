package program

import (
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
	"github.com/benSepanski/lockPlacementBenchmarks/utils/worklist"

	"golang.org/x/tools/container/intsets"
)

// guaranteedDefs computes, for every instruction of m, the locals that are
// assigned on every path from the entry to it. This is a forward must
// analysis: the meet is intersection and unvisited instructions start at
// the set of all locals.
func guaranteedDefs(m *Method) [][]loc.Location {
	n := len(m.stmts)
	res := make([][]loc.Location, n)
	if n == 0 {
		return res
	}

	var locals []loc.Location
	index := make(map[loc.Location]int)
	for _, s := range m.stmts {
		for _, d := range s.Def {
			if _, seen := index[d]; !seen && d.Kind() == loc.KindLocal {
				index[d] = len(locals)
				locals = append(locals, d)
			}
		}
	}

	preds := make([][]int, n)
	for i := range m.stmts {
		for _, succ := range m.Successors(i) {
			preds[succ] = append(preds[succ], i)
		}
	}

	top := &intsets.Sparse{}
	for i := range locals {
		top.Insert(i)
	}

	in := make([]*intsets.Sparse, n)
	out := make([]*intsets.Sparse, n)
	for i := range out {
		in[i], out[i] = &intsets.Sparse{}, &intsets.Sparse{}
		in[i].Copy(top)
		out[i].Copy(top)
	}

	W := worklist.EmptySet[int]()
	for i := 0; i < n; i++ {
		W.Add(i)
	}

	W.Process(func(k int, add func(int)) {
		cur := &intsets.Sparse{}
		if k != 0 {
			cur.Copy(top)
			for _, p := range preds[k] {
				cur.IntersectionWith(out[p])
			}
		}
		in[k].Copy(cur)

		for _, d := range m.stmts[k].Def {
			if id, ok := index[d]; ok {
				cur.Insert(id)
			}
		}

		if !cur.Equals(out[k]) {
			out[k] = cur
			for _, succ := range m.Successors(k) {
				add(succ)
			}
		}
	})

	for k := range res {
		for _, id := range in[k].AppendTo(nil) {
			res[k] = append(res[k], locals[id])
		}
	}
	return res
}
