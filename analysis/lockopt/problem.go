// Package lockopt chooses which lock protects every location of a monitor.
// The choice is encoded as a boolean circuit and minimized with an
// incremental SAT solver.
package lockopt

import (
	"fmt"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/alias"
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"

	"github.com/pkg/errors"
)

var (
	// ErrUnsatisfiable reports that no assignment satisfies the constraints.
	ErrUnsatisfiable = errors.New("lock constraints are unsatisfiable")
	// ErrUnknown reports that the solver gave up before deciding.
	ErrUnknown = errors.New("solver could not decide the lock constraints")
	// ErrInconsistent reports a model that does not decode to a valid
	// assignment.
	ErrInconsistent = errors.New("inconsistent lock assignment")
	// ErrInvalidAssignment is wrapped by Check when a constraint is violated.
	ErrInvalidAssignment = errors.New("assignment violates the lock constraints")
	// ErrInvalidProblem is returned for malformed problems.
	ErrInvalidProblem = errors.New("malformed lock assignment problem")
)

// Kind distinguishes locks stored in the object reached through the target
// location from the lock shared by all instances of the monitor.
type Kind int

const (
	Local Kind = iota
	Global
)

func (k Kind) String() string {
	if k == Global {
		return "global"
	}
	return "local"
}

// Lock identifies a lock by the location it is associated with.
type Lock struct {
	Target int
	Kind   Kind
}

func (l Lock) String() string {
	return fmt.Sprintf("%s(%d)", l.Kind, l.Target)
}

// Assignment maps every location id to the lock protecting it.
type Assignment []Lock

// AliasFunc returns the alias relation between two location ids.
type AliasFunc func(i, j int) alias.Relation

// Problem is the input of the optimizer. Location ids index Locations,
// and every per-segment slice has one entry per atomic segment.
type Problem struct {
	Locations []loc.Location
	// Accessed[s] lists the ids accessed by segment s.
	Accessed [][]int
	// OutOfScope[s] lists the ids that cannot anchor a local lock at the
	// entry of segment s.
	OutOfScope [][]int
	// TopoAccessedBefore[i] lists the ids that i may not take a local lock
	// on.
	TopoAccessedBefore [][]int
	Aliases            AliasFunc
	LocalCost          int
	GlobalCost         int
}

// DefaultCosts returns the default weights of local and global locks.
func DefaultCosts() (local, global int) {
	return 1, 2
}

func (p *Problem) validate() error {
	n := len(p.Locations)
	switch {
	case len(p.Accessed) != len(p.OutOfScope):
		return errors.Wrapf(ErrInvalidProblem, "%d segments accessed, %d scoped",
			len(p.Accessed), len(p.OutOfScope))
	case len(p.TopoAccessedBefore) != n:
		return errors.Wrapf(ErrInvalidProblem, "ordering constraints for %d of %d locations",
			len(p.TopoAccessedBefore), n)
	case p.LocalCost <= 0 || p.GlobalCost <= 0:
		return errors.Wrapf(ErrInvalidProblem, "costs must be positive, got %d and %d",
			p.LocalCost, p.GlobalCost)
	case p.Aliases == nil:
		return errors.Wrap(ErrInvalidProblem, "no alias relation")
	}

	inRange := func(ids [][]int) error {
		for _, set := range ids {
			for _, id := range set {
				if id < 0 || id >= n {
					return errors.Wrapf(ErrInvalidProblem, "location id %d out of range", id)
				}
			}
		}
		return nil
	}
	for _, ids := range [][][]int{p.Accessed, p.OutOfScope, p.TopoAccessedBefore} {
		if err := inRange(ids); err != nil {
			return err
		}
	}
	return nil
}

// allowed computes which locks each location may take when only the
// constraints on single locations are considered.
func (p *Problem) allowed() (local, global [][]bool) {
	n := len(p.Locations)
	local, global = make([][]bool, n), make([][]bool, n)

	mayAlias := make([]bool, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if p.Aliases(i, j) == alias.MayAlias {
				mayAlias[i], mayAlias[j] = true, true
			}
		}
	}

	for i := range p.Locations {
		local[i], global[i] = make([]bool, n), make([]bool, n)
		for j, target := range p.Locations {
			arr := loc.IsArrayElement(target)
			global[i][j] = !arr
			local[i][j] = !arr && !target.Primitive() && !mayAlias[i]
		}
		for _, j := range p.TopoAccessedBefore[i] {
			local[i][j] = false
		}
	}

	for s, ids := range p.Accessed {
		for _, i := range ids {
			for _, j := range p.OutOfScope[s] {
				local[i][j] = false
			}
		}
	}

	return
}
