// Package monitor runs the lock placement pipeline on a single monitor:
// segment and location extraction, scope, the accessed-before relation,
// lock assignment and the lock order.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/accessbefore"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/alias"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/extract"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockopt"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockorder"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/program"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/scope"
	"github.com/benSepanski/lockPlacementBenchmarks/utils"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Pipeline stages, as reported by Error.
const (
	StageSegments       = "segments"
	StageExtract        = "extract"
	StageAliases        = "aliases"
	StageAccessedBefore = "accessed-before"
	StageSolve          = "solve"
)

// Config holds the parameters of a monitor analysis.
type Config struct {
	// Oracle answers alias queries. Facts recorded in the monitor take
	// precedence. Nil means alias.Optimistic.
	Oracle     alias.Oracle
	LocalCost  int
	GlobalCost int
	Solver     lockopt.Options
	Metrics    bool
}

// DefaultConfig uses the optimistic oracle and the default lock costs.
func DefaultConfig() Config {
	localCost, globalCost := lockopt.DefaultCosts()
	return Config{
		Oracle:     alias.Optimistic{},
		LocalCost:  localCost,
		GlobalCost: globalCost,
	}
}

// Error reports the failure of one stage of the analysis of a monitor.
type Error struct {
	Monitor string
	Stage   string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("monitor %s: %s: %v", e.Monitor, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// aliased is implemented by monitors that carry known alias facts.
type aliased interface {
	Aliases() []program.AliasFact
}

// Analysis holds everything computed for a monitor before lock assignment.
// It owns the location table and the relations indexed by its ids.
type Analysis struct {
	Monitor  program.Monitor
	Segments []program.AtomicSegment
	// Extracted holds the location table and the ids accessed by each
	// segment.
	Extracted *extract.Result
	Aliases   *alias.Matrix

	// OutOfScope[s] lists the ids not in scope at the entry of segment s.
	OutOfScope         [][]int
	AccessedBefore     accessbefore.Relation
	TopoAccessedBefore accessbefore.Relation
}

// Result is a complete lock placement for a monitor.
type Result struct {
	*Analysis
	Solution *lockopt.Solution
	Order    lockorder.Order
	// Plans[s] lists the locks of segment s in acquisition order.
	Plans   [][]lockopt.Lock
	Metrics *Metrics
}

func (cfg Config) oracle(m program.Monitor) (alias.Oracle, error) {
	fallback := cfg.Oracle
	if fallback == nil {
		fallback = alias.Optimistic{}
	}

	am, ok := m.(aliased)
	if !ok || len(am.Aliases()) == 0 {
		return fallback, nil
	}

	table := alias.NewTable(fallback)
	for _, fact := range am.Aliases() {
		r, ok := alias.Parse(fact.Relation)
		if !ok {
			return nil, errors.Wrapf(program.ErrContract,
				"unknown relation %q between %v and %v", fact.Relation, fact.A, fact.B)
		}
		table.Record(fact.A, fact.B, r)
	}
	return table, nil
}

// Prepare runs every stage up to and including the accessed-before
// relation.
func Prepare(m program.Monitor, cfg Config) (*Analysis, error) {
	fail := func(stage string, err error) (*Analysis, error) {
		return nil, &Error{Monitor: m.Name(), Stage: stage, Err: err}
	}
	logger := log.WithField("monitor", m.Name())

	segs, err := m.Segments()
	if err != nil {
		return fail(StageSegments, err)
	}
	// Monitors other than *program.Class may skip validation.
	if err := program.ValidateSegments(segs); err != nil {
		return fail(StageSegments, err)
	}
	logger.WithField("stage", StageSegments).Debugf("Found %s", utils.Plural(len(segs), "segment"))

	a := &Analysis{
		Monitor:   m,
		Segments:  segs,
		Extracted: extract.Locations(segs),
	}
	table := a.Extracted.Table
	logger.WithField("stage", StageExtract).Debugf("Found %s", utils.Plural(table.Len(), "location"))

	oracle, err := cfg.oracle(m)
	if err != nil {
		return fail(StageAliases, err)
	}
	a.Aliases = alias.NewMatrix(table, oracle)

	a.OutOfScope = scope.Calculate(segs, table)

	a.AccessedBefore = accessbefore.Compute(a.Extracted, a.Aliases)
	a.TopoAccessedBefore = accessbefore.Condense(a.AccessedBefore)
	logger.WithFields(log.Fields{
		"stage": StageAccessedBefore,
		"edges": a.AccessedBefore.Edges(),
	}).Debug("Computed accessed-before relation")

	return a, nil
}

// Problem returns the lock assignment problem of the analysis.
func (a *Analysis) Problem(localCost, globalCost int) *lockopt.Problem {
	return &lockopt.Problem{
		Locations:          a.Extracted.Table.All(),
		Accessed:           a.Extracted.Accessed,
		OutOfScope:         a.OutOfScope,
		TopoAccessedBefore: a.TopoAccessedBefore.Lists(),
		Aliases:            a.Aliases.Of,
		LocalCost:          localCost,
		GlobalCost:         globalCost,
	}
}

// Solve assigns locks to the locations of the analysis and orders them.
func (a *Analysis) Solve(ctx context.Context, cfg Config) (*Result, error) {
	sol, err := lockopt.Solve(ctx, a.Problem(cfg.LocalCost, cfg.GlobalCost), cfg.Solver)
	if err != nil {
		return nil, &Error{Monitor: a.Monitor.Name(), Stage: StageSolve, Err: err}
	}

	order := lockorder.Build(a.TopoAccessedBefore)
	return &Result{
		Analysis: a,
		Solution: sol,
		Order:    order,
		Plans:    lockorder.Plans(order, sol.Assignment, a.Extracted.Accessed),
	}, nil
}

// Analyze computes the lock placement of m. On failure the returned error
// is an *Error naming the failing stage, and no partial result is
// returned.
func Analyze(ctx context.Context, m program.Monitor, cfg Config) (*Result, error) {
	return AnalyzeWith(ctx, m, cfg, cfg.InitializeMetrics(m))
}

// AnalyzeWith is Analyze recording into the given metrics, which may be
// nil.
func AnalyzeWith(ctx context.Context, m program.Monitor, cfg Config, metrics *Metrics) (res *Result, err error) {
	metrics.TimerStart()
	defer func() {
		if err != nil {
			metrics.Fail(err)
		}
	}()

	start := time.Now()
	a, err := Prepare(m, cfg)
	if err != nil {
		return nil, err
	}
	metrics.Prepared(a, time.Since(start))

	if res, err = a.Solve(ctx, cfg); err != nil {
		return nil, err
	}
	metrics.Done(res)
	res.Metrics = metrics

	log.WithFields(log.Fields{
		"monitor": m.Name(),
		"cost":    res.Solution.Cost.Total(),
	}).Debug("Lock placement complete")
	return res, nil
}
