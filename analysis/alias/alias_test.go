package alias

import (
	"testing"

	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
)

var (
	this = loc.This{Class: "Queue"}
	head = loc.InstanceField{Base: this, Class: "Queue", Field: "head"}
	tail = loc.InstanceField{Base: this, Class: "Queue", Field: "tail"}
	r1   = loc.Local{Method: "put", Name: "r1"}
)

func TestOracles(t *testing.T) {
	tests := []struct {
		name     string
		oracle   Oracle
		a, b     loc.Location
		expected Relation
	}{
		{"optimistic-same", Optimistic{}, head, head, MustAlias},
		{"optimistic-distinct", Optimistic{}, head, tail, NotAlias},
		{"pessimistic-same", Pessimistic{}, head, head, MustAlias},
		{"pessimistic-distinct", Pessimistic{}, head, tail, MayAlias},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if r := test.oracle.Relation(test.a, test.b); r != test.expected {
				t.Errorf("Relation(%v, %v) = %v, expected %v", test.a, test.b, r, test.expected)
			}
		})
	}
}

func TestTable(t *testing.T) {
	table := NewTable(Optimistic{})
	table.Record(head, tail, MayAlias)
	table.Record(r1, head, MustAlias)

	check := func(a, b loc.Location, expected Relation) {
		t.Helper()
		if r := table.Relation(a, b); r != expected {
			t.Errorf("Relation(%v, %v) = %v, expected %v", a, b, r, expected)
		}
	}

	check(head, tail, MayAlias)
	check(tail, head, MayAlias)
	check(head, r1, MustAlias)
	check(r1, tail, NotAlias)
	check(this, this, MustAlias)

	if table.Len() != 2 {
		t.Errorf("table.Len() = %d, expected 2", table.Len())
	}
}

func TestMatrix(t *testing.T) {
	table := loc.NewTable()
	for _, l := range []loc.Location{head, tail, r1} {
		table.Intern(l)
	}

	queries := 0
	oracle := OracleFunc(func(a, b loc.Location) Relation {
		queries++
		if a.Equal(r1) || b.Equal(r1) {
			return MayAlias
		}
		return NotAlias
	})

	m := NewMatrix(table, oracle)
	if queries != 3 {
		t.Errorf("oracle queried %d times, expected 3", queries)
	}
	if r := m.Of(2, 0); r != MayAlias {
		t.Errorf("m.Of(2, 0) = %v, expected %v", r, MayAlias)
	}
	if r := m.Of(1, 1); r != MustAlias {
		t.Errorf("m.Of(1, 1) = %v, expected %v", r, MustAlias)
	}

	var pairs [][2]int
	m.Pairs(MayAlias, func(i, j int) { pairs = append(pairs, [2]int{i, j}) })
	if len(pairs) != 2 || pairs[0] != [2]int{0, 2} || pairs[1] != [2]int{1, 2} {
		t.Errorf("m.Pairs(MayAlias) = %v, expected [[0 2] [1 2]]", pairs)
	}
}
