package main

import (
	"context"
	"time"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockopt"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/monitor"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/program"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// pipeline analyzes a batch of monitors.
type pipeline struct {
	cfg config
}

// outcome is the analysis result of one monitor. Exactly one of result and
// err is set.
type outcome struct {
	monitor *program.Class
	result  *monitor.Result
	metrics *monitor.Metrics
	err     error
}

// loadMonitors reads the target monitors of every model file, in order.
func (p pipeline) loadMonitors(paths []string) ([]*program.Class, error) {
	var monitors []*program.Class
	for _, path := range paths {
		classes, err := program.LoadFile(path)
		if err != nil {
			return nil, err
		}
		for _, c := range classes {
			if p.cfg.wanted(c.Name()) {
				monitors = append(monitors, c)
			}
		}
	}
	return monitors, nil
}

// run analyzes the monitors in parallel. A failing monitor does not affect
// the others; the outcomes are in the order of monitors.
func (p pipeline) run(ctx context.Context, monitors []*program.Class) []outcome {
	outcomes := make([]outcome, len(monitors))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Parallelism)
	for i, m := range monitors {
		i, m := i, m
		g.Go(func() error {
			outcomes[i] = p.analyze(ctx, m)
			return nil
		})
	}
	// Failures are reported per outcome.
	_ = g.Wait()

	return outcomes
}

// analyze runs the analysis of m. When the solver gives up, the analysis
// is retried up to cfg.Retries times, doubling the solver timeout each time.
func (p pipeline) analyze(ctx context.Context, m *program.Class) outcome {
	mcfg := p.cfg.monitorConfig()
	out := outcome{monitor: m, metrics: mcfg.InitializeMetrics(m)}

	attempt := func() error {
		res, err := monitor.AnalyzeWith(ctx, m, mcfg, out.metrics)
		switch {
		case err == nil:
			out.result = res
			return nil
		case !errors.Is(err, lockopt.ErrUnknown) || mcfg.Solver.Timeout == 0:
			return backoff.Permanent(err)
		}

		mcfg.Solver.Timeout *= 2
		log.WithFields(log.Fields{
			"monitor": m.Name(),
			"timeout": mcfg.Solver.Timeout,
		}).Warn("Solver gave up, retrying")
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	out.err = backoff.Retry(attempt,
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.cfg.Retries)), ctx))
	return out
}
