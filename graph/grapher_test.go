package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/monitor"
	"github.com/benSepanski/lockPlacementBenchmarks/testutil"
	"github.com/benSepanski/lockPlacementBenchmarks/utils"
)

const swap = `
monitors:
  - name: Swap
    fields:
      - {name: a, type: Object}
      - {name: b, type: Object}
    methods:
      - name: spin
        body:
          - {label: top, text: "this.a = this.b", defs: [this.a], uses: [this.b]}
          - {text: "this.b = this.a", defs: [this.b], uses: [this.a]}
          - {text: "if this.a != null goto top", uses: [this.a, "#null"], goto: [top], cond: true}
          - {text: "return", return: true}
`

func prepare(t *testing.T, source string) *monitor.Analysis {
	t.Helper()
	utils.SetNoColorize(true)
	a, err := monitor.Prepare(testutil.LoadMonitorFromSource(t, source).Monitor, monitor.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestAccessedBeforeAcyclic(t *testing.T) {
	a := prepare(t, testutil.ReadersWriters)
	dg := AccessedBefore(a)

	if len(dg.Clusters) != 0 {
		t.Errorf("Expected no clusters, got %d", len(dg.Clusters))
	}
	if len(dg.Nodes) != a.Extracted.Table.Len() {
		t.Errorf("Expected %d nodes, got %d", a.Extracted.Table.Len(), len(dg.Nodes))
	}
	if len(dg.Edges) != a.AccessedBefore.Edges() {
		t.Errorf("Expected %d edges, got %d", a.AccessedBefore.Edges(), len(dg.Edges))
	}
	if dg.Nodes[1].Attrs["label"] != "1: r0.readers" {
		t.Errorf("Unexpected label %q", dg.Nodes[1].Attrs["label"])
	}
}

func TestAccessedBeforeCycle(t *testing.T) {
	a := prepare(t, swap)
	dg := AccessedBefore(a)

	if len(dg.Clusters) != 1 {
		t.Fatalf("Expected one cluster, got %d", len(dg.Clusters))
	}
	if n := len(dg.Clusters[0].Nodes); n != 2 {
		t.Errorf("Expected this.a and this.b in the cluster, got %d nodes", n)
	}
	if len(dg.Edges) != a.AccessedBefore.Edges() {
		t.Errorf("Expected %d edges, got %d", a.AccessedBefore.Edges(), len(dg.Edges))
	}

	var out bytes.Buffer
	if err := WriteAccessedBefore(&out, a); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"digraph", "cluster_scc", "Accessed-before relation of Swap"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Dot output does not contain %q:\n%s", want, out.String())
		}
	}
}
