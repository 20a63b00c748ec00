package lockopt

import (
	"context"
	"time"

	"github.com/benSepanski/lockPlacementBenchmarks/utils"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// pollInterval bounds how long a cancelled solve keeps running.
const pollInterval = 10 * time.Millisecond

// Options configure the solver.
type Options struct {
	// Timeout bounds every individual solver call. Zero means no bound.
	Timeout time.Duration
}

// Solution is a minimum-cost assignment.
type Solution struct {
	Assignment Assignment
	Cost       Cost
	// Iterations counts the solver calls.
	Iterations int
}

type solver struct {
	g    *gini.Gini
	opts Options
}

// solve runs the solver under the given assumptions. The result follows
// gini: 1 for satisfiable, -1 for unsatisfiable and 0 for unknown.
func (s *solver) solve(ctx context.Context, assumptions ...z.Lit) int {
	s.g.Assume(assumptions...)
	if s.opts.Timeout == 0 && ctx.Done() == nil {
		return s.g.Solve()
	}

	run := s.g.GoSolve()
	var deadline <-chan time.Time
	if s.opts.Timeout > 0 {
		timer := time.NewTimer(s.opts.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if res, done := run.Test(); done {
			return res
		}
		select {
		case <-ctx.Done():
			return run.Stop()
		case <-deadline:
			return run.Stop()
		case <-ticker.C:
		}
	}
}

func (e *encoding) decode(g *gini.Gini) (Assignment, error) {
	n := len(e.p.Locations)
	a := make(Assignment, n)
	for i := 0; i < n; i++ {
		var locks []Lock
		for j := 0; j < n; j++ {
			if g.Value(e.Local(i, j)) {
				locks = append(locks, Lock{Target: j, Kind: Local})
			}
			if g.Value(e.Global(i, j)) {
				locks = append(locks, Lock{Target: j, Kind: Global})
			}
		}
		if len(locks) != 1 {
			return nil, errors.Wrapf(ErrInconsistent, "location %d decoded to %v", i, locks)
		}
		a[i] = locks[0]
	}
	return a, nil
}

// Solve computes an assignment of minimum cost satisfying every hard
// constraint of p. The minimum is found by tightening an upper bound on the
// cost until the solver reports unsatisfiability.
func Solve(ctx context.Context, p *Problem, opts Options) (*Solution, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	defer utils.TimeTrack(time.Now(), "Lock assignment")

	e := encode(p)
	g := gini.New()
	e.c.ToCnf(g)
	g.Add(e.c.T)
	g.Add(z.LitNull)
	for _, m := range e.constraints {
		g.Add(m)
		g.Add(z.LitNull)
	}

	s := &solver{g: g, opts: opts}
	sol := &Solution{}
	bound := e.c.T
	for {
		sol.Iterations++
		res := s.solve(ctx, bound)
		if res == 0 {
			return nil, errors.Wrapf(ErrUnknown, "after %s", utils.Plural(sol.Iterations, "solver call"))
		}
		if res < 0 {
			break
		}

		a, err := e.decode(g)
		if err != nil {
			return nil, err
		}
		sol.Assignment, sol.Cost = a, Evaluate(p, a)
		if sol.Cost.Total() == 0 {
			break
		}
		bound = e.atMost(sol.Cost.Total() - 1)
	}

	if sol.Assignment == nil {
		return nil, ErrUnsatisfiable
	}
	if err := Check(p, sol.Assignment); err != nil {
		return nil, errors.Wrapf(ErrInconsistent, "%v", err)
	}

	log.WithFields(log.Fields{
		"locations":  len(p.Locations),
		"segments":   len(p.Accessed),
		"cost":       sol.Cost.Total(),
		"iterations": sol.Iterations,
	}).Debug("Found minimum lock assignment")

	return sol, nil
}
