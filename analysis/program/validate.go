package program

import (
	"sort"

	"github.com/benSepanski/lockPlacementBenchmarks/utils/graph"

	"github.com/pkg/errors"
)

// CFG returns the control-flow graph of a body over instruction indices.
func CFG(body Body) graph.Graph[int] {
	return graph.OfDense(body.Len(), body.Successors)
}

// ValidateSegments checks the structural assumptions the analysis makes
// about atomic segments: bounds lie within the body, the first instruction
// dominates the last one and every return in between, and segments of the
// same body do not overlap. Segments in unreachable code are accepted.
func ValidateSegments(segs []AtomicSegment) error {
	byBody := make(map[Body][]AtomicSegment)
	var bodies []Body

	for _, seg := range segs {
		if seg.Body == nil {
			return errors.Wrap(ErrContract, "atomic segment without a body")
		}
		if seg.First < 0 || seg.First > seg.Last || seg.Last >= seg.Body.Len() {
			return errors.Wrapf(ErrContract, "segment bounds %d..%d are not within %s (%d instructions)",
				seg.First, seg.Last, seg.Body.Name(), seg.Body.Len())
		}
		if _, seen := byBody[seg.Body]; !seen {
			bodies = append(bodies, seg.Body)
		}
		byBody[seg.Body] = append(byBody[seg.Body], seg)
	}

	for _, body := range bodies {
		bsegs := byBody[body]
		sort.Slice(bsegs, func(i, j int) bool { return bsegs[i].First < bsegs[j].First })
		for i := 1; i < len(bsegs); i++ {
			if bsegs[i-1].Last >= bsegs[i].First {
				return errors.Wrapf(ErrContract, "segments %v and %v overlap", bsegs[i-1], bsegs[i])
			}
		}

		dom := CFG(body).DominatorTree(0)
		for _, seg := range bsegs {
			if !dom.Reachable(seg.First) {
				continue
			}

			for i := seg.First; i <= seg.Last; i++ {
				isExit := i == seg.Last || len(body.Successors(i)) == 0
				if isExit && dom.Reachable(i) && !dom.Dominates(seg.First, i) {
					return errors.Wrapf(ErrContract, "entry of segment %v does not dominate its exit %d", seg, i)
				}
			}
		}
	}

	return nil
}
