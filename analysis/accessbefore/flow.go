package accessbefore

import (
	"fmt"

	"golang.org/x/tools/container/intsets"
)

// flow is the dataflow fact at a program point. Outside atomic segments the
// universe is empty and no sets are tracked. Inside, accessed holds the
// locations touched so far in the segment and accThenMod the subset that
// may have been written since.
//
// Flow values are never mutated once stored.
type flow struct {
	inSegment  bool
	accessed   *intsets.Sparse
	accThenMod *intsets.Sparse
}

// empty is the bottom element.
var empty = flow{}

func freshSegment() flow {
	return flow{
		inSegment:  true,
		accessed:   &intsets.Sparse{},
		accThenMod: &intsets.Sparse{},
	}
}

func (f flow) join(g flow) flow {
	switch {
	case !f.inSegment:
		return g
	case !g.inSegment:
		return f
	}

	res := freshSegment()
	res.accessed.Union(f.accessed, g.accessed)
	res.accThenMod.Union(f.accThenMod, g.accThenMod)
	return res
}

func (f flow) eq(g flow) bool {
	if f.inSegment != g.inSegment {
		return false
	}
	return !f.inSegment ||
		(f.accessed.Equals(g.accessed) && f.accThenMod.Equals(g.accThenMod))
}

func (f flow) copy() flow {
	if !f.inSegment {
		return empty
	}

	res := freshSegment()
	res.accessed.Copy(f.accessed)
	res.accThenMod.Copy(f.accThenMod)
	return res
}

func (f flow) String() string {
	if !f.inSegment {
		return "⊥"
	}
	return fmt.Sprintf("accessed %v, modified %v", f.accessed, f.accThenMod)
}
