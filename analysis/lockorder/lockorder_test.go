package lockorder

import (
	"math/rand"
	"testing"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/accessbefore"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockopt"

	"github.com/google/go-cmp/cmp"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		tab      [][]int
		expected Order
	}{
		{"empty", [][]int{}, Order{}},
		{"unrelated", [][]int{{}, {}, {}}, Order{3, 2, 1}},
		{"chain", [][]int{{1}, {2}, {}}, Order{1, 2, 3}},
		{"reversed-chain", [][]int{{}, {0}, {1}}, Order{3, 2, 1}},
		// Condensed cycle {0, 1} with downstream 2.
		{"cycle", [][]int{{0, 1, 2}, {0, 1, 2}, {}}, Order{1, 2, 3}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Build(accessbefore.FromLists(test.tab))
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Build mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestBuildConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for iter := 0; iter < 100; iter++ {
		n := 1 + rng.Intn(30)
		rel := accessbefore.NewRelation(n)
		for e := rng.Intn(2 * n); e > 0; e-- {
			rel.Add(rng.Intn(n), rng.Intn(n))
		}
		tab := accessbefore.Condense(rel)
		order := Build(tab)

		seen := make(map[int]bool)
		for v, o := range order {
			if o < 1 || o > n || seen[o] {
				t.Fatalf("Order %v is not a permutation of 1..%d", order, n)
			}
			seen[o] = true

			for _, w := range tab.Successors(v) {
				if !tab.Has(w, v) && order[v] >= order[w] {
					t.Fatalf("Edge %d -> %d, but order %d >= %d", v, w, order[v], order[w])
				}
			}
		}
	}
}

func TestPlans(t *testing.T) {
	order := Order{2, 3, 1}
	a := lockopt.Assignment{
		{Target: 1, Kind: lockopt.Local},
		{Target: 1, Kind: lockopt.Global},
		{Target: 2, Kind: lockopt.Global},
	}

	plans := Plans(order, a, [][]int{{0, 1, 2}, {0, 0}, {}})
	expected := [][]lockopt.Lock{
		{{Target: 2, Kind: lockopt.Global}, {Target: 1, Kind: lockopt.Global}, {Target: 1, Kind: lockopt.Local}},
		{{Target: 1, Kind: lockopt.Local}},
		{},
	}
	if diff := cmp.Diff(expected, plans); diff != "" {
		t.Errorf("Plans mismatch (-expected +got):\n%s", diff)
	}
}
