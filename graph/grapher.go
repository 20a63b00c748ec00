// Package graph visualizes the accessed-before relation of a monitor.
package graph

import (
	"bytes"
	"fmt"
	"io"

	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/monitor"
	"github.com/benSepanski/lockPlacementBenchmarks/utils/dot"
	"github.com/benSepanski/lockPlacementBenchmarks/utils/graph"
)

var fillColors = map[loc.Kind]string{
	loc.KindLocal:         "lightyellow",
	loc.KindParam:         "lightyellow",
	loc.KindThis:          "lightblue",
	loc.KindInstanceField: "honeydew",
	loc.KindStaticField:   "lavender",
	loc.KindArrayElement:  "mistyrose",
}

// AccessedBefore builds the dot graph of the accessed-before relation of
// a. Nodes are locations, and the members of every non-trivial strongly
// connected component are grouped into a cluster. Labels use the location
// printer, so colorization should be disabled by the caller.
func AccessedBefore(a *monitor.Analysis) *dot.DotGraph {
	table := a.Extracted.Table
	G := a.AccessedBefore.Graph()
	nodes := graph.Range(table.Len())
	scc := G.SCC(nodes)

	dg := G.ToDotGraph(nodes, &graph.VisualizationConfig[int]{
		NodeAttrs: func(id int) (string, dot.DotAttrs) {
			l := table.At(id)
			return fmt.Sprint(id), dot.DotAttrs{
				"label":     fmt.Sprintf("%d: %v", id, l),
				"tooltip":   l.Kind().String(),
				"fillcolor": fillColors[l.Kind()],
			}
		},
		ClusterKey: func(id int) any {
			if c := scc.ComponentOf(id); !scc.IsTrivial(c) {
				return c
			}
			return nil
		},
		ClusterAttrs: func(key any) (string, dot.DotAttrs) {
			return fmt.Sprintf("scc%d", key), dot.DotAttrs{
				"label":     fmt.Sprintf("SCC %d", key),
				"style":     "filled",
				"fillcolor": "white",
			}
		},
	})
	dg.Title = fmt.Sprintf("Accessed-before relation of %s", a.Monitor.Name())
	return dg
}

// WriteAccessedBefore writes the accessed-before graph of a in dot syntax.
func WriteAccessedBefore(w io.Writer, a *monitor.Analysis) error {
	return AccessedBefore(a).WriteDot(w)
}

// RenderAccessedBefore renders the accessed-before graph of a to
// prefix.format, returning the path of the image.
func RenderAccessedBefore(a *monitor.Analysis, prefix, format string) (string, error) {
	var buf bytes.Buffer
	if err := WriteAccessedBefore(&buf, a); err != nil {
		return "", err
	}
	return dot.DotToImage(prefix, format, buf.Bytes())
}
