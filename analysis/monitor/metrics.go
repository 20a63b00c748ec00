package monitor

import (
	"fmt"
	"time"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockopt"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/program"

	"github.com/pkg/errors"
)

// Metrics records counts and timings of the analysis of one monitor.
// Every method is a no-op on a nil receiver.
type Metrics struct {
	Monitor string
	Outcome string

	segments   int
	locations  int
	abEdges    int
	iterations int
	cost       lockopt.Cost
	prepare    time.Duration
	time       time.Duration
	timer      time.Time
	err        error
}

// Encoding of metric outcomes.
var (
	OUTCOME_PLACED  = "Locks placed"
	OUTCOME_UNSAT   = "Unsatisfiable"
	OUTCOME_UNKNOWN = "Solver gave up"
	OUTCOME_FAILED  = "Failed"
)

// InitializeMetrics returns a Metrics object for m, or nil if metrics are
// disabled.
func (cfg Config) InitializeMetrics(m program.Monitor) *Metrics {
	if !cfg.Metrics {
		return nil
	}
	return &Metrics{Monitor: m.Name()}
}

// Enabled checks whether the Metrics object is available.
func (m *Metrics) Enabled() bool {
	return m != nil
}

// TimerStart starts a timer before the analysis runs.
func (m *Metrics) TimerStart() {
	if m == nil {
		return
	}
	m.timer = time.Now()
}

func (m *Metrics) timerStop() {
	if m == nil {
		return
	}
	m.time = time.Since(m.timer)
}

// Prepared registers the sizes computed before lock assignment.
func (m *Metrics) Prepared(a *Analysis, took time.Duration) {
	if m == nil {
		return
	}
	m.segments = len(a.Segments)
	m.locations = a.Extracted.Table.Len()
	m.abEdges = a.AccessedBefore.Edges()
	m.prepare = took
}

// Done registers a successful lock placement.
func (m *Metrics) Done(res *Result) {
	if m == nil {
		return
	}
	m.timerStop()
	m.err = nil
	m.Outcome = OUTCOME_PLACED
	m.iterations = res.Solution.Iterations
	m.cost = res.Solution.Cost
}

// Fail registers that the analysis stopped with err. A later attempt may
// overwrite the outcome.
func (m *Metrics) Fail(err error) {
	if m == nil {
		return
	}
	m.timerStop()
	m.err = err

	switch {
	case errors.Is(err, lockopt.ErrUnsatisfiable):
		m.Outcome = OUTCOME_UNSAT
	case errors.Is(err, lockopt.ErrUnknown):
		m.Outcome = OUTCOME_UNKNOWN
	default:
		m.Outcome = OUTCOME_FAILED
	}
}

// Segments returns the number of atomic segments.
func (m *Metrics) Segments() int {
	if m == nil {
		return 0
	}
	return m.segments
}

// Locations returns the number of shared locations.
func (m *Metrics) Locations() int {
	if m == nil {
		return 0
	}
	return m.locations
}

// AccessedBeforeEdges returns the size of the accessed-before relation.
func (m *Metrics) AccessedBeforeEdges() int {
	if m == nil {
		return 0
	}
	return m.abEdges
}

// Iterations returns the number of solver calls.
func (m *Metrics) Iterations() int {
	if m == nil {
		return 0
	}
	return m.iterations
}

// Cost returns the cost of the placement.
func (m *Metrics) Cost() lockopt.Cost {
	if m == nil {
		return lockopt.Cost{}
	}
	return m.cost
}

// Performance logs how fast the analysis ran.
func (m *Metrics) Performance() string {
	if m == nil {
		return "- no metrics gathered -"
	}
	return fmt.Sprintf("%s (%s before lock assignment)", m.time, m.prepare)
}

// Duration returns the running time of the analysis.
func (m *Metrics) Duration() time.Duration {
	if m == nil {
		return 0
	}
	return m.time
}

// Error prints the error message resulting from running the analysis.
func (m *Metrics) Error() string {
	if m == nil || m.err == nil {
		return ""
	}
	return m.err.Error()
}
