package main

import (
	"fmt"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/monitor"
)

func gatherMetrics(outcomes []outcome) {
	if !opts.Metrics() || len(outcomes) == 0 {
		return
	}

	msg := "================ Results =====================\n\n"

	placed, locations, segments := 0, 0, 0
	for _, o := range outcomes {
		r := o.metrics
		msg += "Monitor: " + o.monitor.Name() + "\n"
		msg += "Outcome: " + r.Outcome + "\n"

		if r.Outcome != monitor.OUTCOME_PLACED {
			msg += r.Error() + "\nMonitor finished\n\n"
			continue
		}
		placed++
		locations += r.Locations()
		segments += r.Segments()

		msg += "Time: " + r.Performance() + "\n"
		msg += fmt.Sprintf("Segments: %d\nLocations: %d\nAccessed-before edges: %d\n",
			r.Segments(), r.Locations(), r.AccessedBeforeEdges())
		msg += fmt.Sprintf("Solver calls: %d\nCost: %v\n", r.Iterations(), r.Cost())
		msg += "Monitor finished\n\n"
	}

	msg += fmt.Sprintf("Monitors placed: %d/%d\n", placed, len(outcomes))
	msg += fmt.Sprintf("Segments: %d\nLocations: %d\n", segments, locations)
	msg += "================ Results ====================="
	fmt.Println(msg)
}
