package extract

import (
	"testing"

	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/program"
	"github.com/benSepanski/lockPlacementBenchmarks/testutil"

	"github.com/google/go-cmp/cmp"
)

func TestLocations(t *testing.T) {
	lr := testutil.LoadMonitorFromSource(t, testutil.ReadersWriters)
	res := Locations(lr.Segments)

	expected := []loc.Location{
		lr.Loc(t, "enterReader", "r0"),
		lr.Loc(t, "enterReader", "r0.readers"),
		lr.Loc(t, "enterReader", "r0.log"),
		lr.Loc(t, "enterReader", "r0.log[i1]"),
		lr.Loc(t, "exitReader", "r0.readers"),
		lr.Loc(t, "exitReader", "r0"),
	}
	if diff := cmp.Diff(expected, res.Table.All()); diff != "" {
		t.Errorf("Table mismatch (-expected +got):\n%s", diff)
	}

	if diff := cmp.Diff([][]int{{0, 1, 2, 3}, {4, 5}}, res.Accessed); diff != "" {
		t.Errorf("Accessed mismatch (-expected +got):\n%s", diff)
	}
}

func TestLocationsIgnoresPrimitives(t *testing.T) {
	lr := testutil.LoadMonitorFromSource(t, testutil.ReadersWriters)
	res := Locations(lr.Segments)

	for id, l := range res.Table.All() {
		if !loc.IsCandidate(l) {
			t.Errorf("Location %d (%v) is not a candidate", id, l)
		}
	}
	for _, name := range []string{"z0", "i0", "i1"} {
		if _, ok := res.Table.ID(lr.Loc(t, "enterReader", name)); ok {
			t.Errorf("Primitive local %s was interned", name)
		}
	}
}

func TestLocationsEmpty(t *testing.T) {
	res := Locations(nil)
	if res.Table.Len() != 0 || len(res.Accessed) != 0 {
		t.Errorf("Expected an empty result, got %d locations", res.Table.Len())
	}
}

func TestUniverse(t *testing.T) {
	lr := testutil.LoadMonitorFromSource(t, testutil.ReadersWriters)
	res := Locations(lr.Segments)

	bodies := res.Bodies()
	if len(bodies) != 2 {
		t.Fatalf("Bodies() = %v, expected 2 bodies", bodies)
	}

	tests := []struct {
		body     program.Body
		expected []int
	}{
		{lr.Method(t, "enterReader"), []int{0, 1, 2, 3}},
		{lr.Method(t, "exitReader"), []int{4, 5}},
		{lr.Method(t, "count"), []int{}},
	}
	for _, test := range tests {
		got := res.Universe(test.body).AppendTo([]int{})
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Errorf("Universe(%s) mismatch (-expected +got):\n%s", test.body.Name(), diff)
		}
	}

	enter := lr.Method(t, "enterReader")
	universe := res.Universe(enter)
	ids := res.IDs([]loc.Location{
		lr.Loc(t, "exitReader", "r0"),
		lr.Loc(t, "enterReader", "i0"),
		lr.Loc(t, "enterReader", "r0.readers"),
	}, universe)
	if diff := cmp.Diff([]int{1}, ids); diff != "" {
		t.Errorf("IDs mismatch (-expected +got):\n%s", diff)
	}
}
