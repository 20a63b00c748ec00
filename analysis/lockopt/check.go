package lockopt

import (
	"fmt"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/alias"
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"

	"github.com/pkg/errors"
)

// Cost is the objective value of an assignment.
type Cost struct {
	// NumLocks weighs every distinct lock in use.
	NumLocks int
	// Conflict weighs every lock shared by a pair of segments.
	Conflict int
}

func (c Cost) Total() int {
	return c.NumLocks + c.Conflict
}

func (c Cost) String() string {
	return fmt.Sprintf("%d (locks %d, conflict %d)", c.Total(), c.NumLocks, c.Conflict)
}

// Check evaluates every hard constraint of p on a directly.
func Check(p *Problem, a Assignment) error {
	if err := p.validate(); err != nil {
		return err
	}

	n := len(p.Locations)
	if len(a) != n {
		return errors.Wrapf(ErrInvalidAssignment, "%d locks for %d locations", len(a), n)
	}

	for i, l := range a {
		if l.Target < 0 || l.Target >= n {
			return errors.Wrapf(ErrInvalidAssignment, "location %d: target %d out of range", i, l.Target)
		}
		if err := checkLock(p, i, l); err != nil {
			return err
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch p.Aliases(i, j) {
			case alias.MustAlias, alias.MayAlias:
				if a[i] != a[j] {
					return errors.Wrapf(ErrInvalidAssignment,
						"aliasing locations %d and %d take %v and %v", i, j, a[i], a[j])
				}
			}
		}
	}

	return nil
}

// checkLock evaluates the clauses restricting which lock location i may
// take, independently of the encoding.
func checkLock(p *Problem, i int, l Lock) error {
	invalid := func(reason string) error {
		return errors.Wrapf(ErrInvalidAssignment, "location %d may not take %v: %s", i, l, reason)
	}

	target := p.Locations[l.Target]
	if loc.IsArrayElement(target) {
		return invalid("array element target")
	}
	if l.Kind == Global {
		return nil
	}

	if target.Primitive() {
		return invalid("primitive target")
	}
	for j := range p.Locations {
		lo, hi := i, j
		if lo > hi {
			lo, hi = hi, lo
		}
		if j != i && p.Aliases(lo, hi) == alias.MayAlias {
			return invalid(fmt.Sprintf("may alias location %d", j))
		}
	}
	for _, j := range p.TopoAccessedBefore[i] {
		if j == l.Target {
			return invalid("target is accessed before")
		}
	}
	for s, ids := range p.Accessed {
		if !contains(ids, i) {
			continue
		}
		if contains(p.OutOfScope[s], l.Target) {
			return invalid(fmt.Sprintf("target out of scope in segment %d", s))
		}
	}
	return nil
}

func contains(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// segmentLocks returns, for every segment, the targets of the local and the
// global locks it needs.
func segmentLocks(p *Problem, a Assignment) (local, global []map[int]bool) {
	local = make([]map[int]bool, len(p.Accessed))
	global = make([]map[int]bool, len(p.Accessed))
	for s, ids := range p.Accessed {
		local[s], global[s] = make(map[int]bool), make(map[int]bool)
		for _, i := range ids {
			if a[i].Kind == Local {
				local[s][a[i].Target] = true
			} else {
				global[s][a[i].Target] = true
			}
		}
	}
	return
}

func shares(x, y map[int]bool) bool {
	for t := range x {
		if y[t] {
			return true
		}
	}
	return false
}

// Evaluate computes the cost of a by direct evaluation. The assignment
// must have one lock per location.
func Evaluate(p *Problem, a Assignment) (c Cost) {
	locals, globals := make(map[int]bool), make(map[int]bool)
	for _, l := range a {
		if l.Kind == Local {
			locals[l.Target] = true
		} else {
			globals[l.Target] = true
		}
	}
	c.NumLocks = p.LocalCost*len(locals) + p.GlobalCost*len(globals)

	segLocal, segGlobal := segmentLocks(p, a)
	for s1 := range p.Accessed {
		for s2 := s1 + 1; s2 < len(p.Accessed); s2++ {
			if shares(segLocal[s1], segLocal[s2]) {
				c.Conflict += p.LocalCost
			}
			if shares(segGlobal[s1], segGlobal[s2]) {
				c.Conflict += p.GlobalCost
			}
		}
	}
	return
}
