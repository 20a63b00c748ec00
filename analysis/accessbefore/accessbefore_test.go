package accessbefore

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/alias"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/extract"
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/program"
	"github.com/benSepanski/lockPlacementBenchmarks/testutil"

	"github.com/google/go-cmp/cmp"
)

type fixture struct {
	c        *program.Class
	m        *program.Method
	a, b, cf loc.Location
}

func newFixture() *fixture {
	c := program.NewClass("C")
	field := func(name string) loc.Location {
		c.DeclareField(program.Field{Name: name, Type: "Object"})
		return loc.InstanceField{Base: c.This(), Class: "C", Field: name}
	}
	return &fixture{
		c:  c,
		m:  c.AddMethod("m", false),
		a:  field("a"),
		b:  field("b"),
		cf: field("c"),
	}
}

func use(ls ...loc.Location) *program.Stmt { return &program.Stmt{Use: ls} }
func def(ls ...loc.Location) *program.Stmt { return &program.Stmt{Def: ls} }

func ret() *program.Stmt { return &program.Stmt{Return: true} }

// analyze runs the engine over the fixture and reports the relation as
// successor lists over locations.
func (f *fixture) analyze(t *testing.T, oracle alias.Oracle) map[string][]string {
	t.Helper()
	segs, err := f.c.Segments()
	if err != nil {
		t.Fatal(err)
	}

	res := extract.Locations(segs)
	rel := Compute(res, alias.NewMatrix(res.Table, oracle))

	got := make(map[string][]string)
	for v := range rel {
		for _, w := range rel.Successors(v) {
			vs := res.Table.At(v).(loc.InstanceField).Field
			got[vs] = append(got[vs], res.Table.At(w).(loc.InstanceField).Field)
		}
	}
	return got
}

func TestAccessedBeforeAfterWrite(t *testing.T) {
	f := newFixture()
	f.m.Append(use(f.a))
	f.m.Append(def(f.a))
	f.m.Append(use(f.b))
	f.m.Append(ret())
	f.m.Segment(0, 3)

	expected := map[string][]string{"a": {"b"}}
	if diff := cmp.Diff(expected, f.analyze(t, alias.Optimistic{})); diff != "" {
		t.Errorf("Relation mismatch (-expected +got):\n%s", diff)
	}
}

func TestAccessedBeforeNoWrite(t *testing.T) {
	f := newFixture()
	f.m.Append(use(f.a))
	f.m.Append(use(f.b))
	f.m.Append(use(f.a, f.b))
	f.m.Append(ret())
	f.m.Segment(0, 3)

	if diff := cmp.Diff(map[string][]string{}, f.analyze(t, alias.Optimistic{})); diff != "" {
		t.Errorf("Relation mismatch (-expected +got):\n%s", diff)
	}
}

func TestAccessedBeforeMayAlias(t *testing.T) {
	f := newFixture()
	f.m.Append(use(f.a))
	f.m.Append(def(f.cf))
	f.m.Append(use(f.b))
	f.m.Append(ret())
	f.m.Segment(0, 3)

	t.Run("optimistic", func(t *testing.T) {
		if diff := cmp.Diff(map[string][]string{"c": {"b"}}, f.analyze(t, alias.Optimistic{})); diff != "" {
			t.Errorf("Relation mismatch (-expected +got):\n%s", diff)
		}
	})

	t.Run("may-alias", func(t *testing.T) {
		table := alias.NewTable(alias.Optimistic{})
		table.Record(f.a, f.cf, alias.MayAlias)

		expected := map[string][]string{"a": {"b"}, "c": {"b"}}
		if diff := cmp.Diff(expected, f.analyze(t, table)); diff != "" {
			t.Errorf("Relation mismatch (-expected +got):\n%s", diff)
		}
	})
}

func TestAccessedBeforeLoop(t *testing.T) {
	f := newFixture()
	f.m.Append(use(f.a))
	f.m.Append(use(f.b))
	f.m.Append(&program.Stmt{Def: []loc.Location{f.b}, Goto: []int{1}, Cond: true})
	f.m.Append(ret())
	f.m.Segment(0, 3)

	if diff := cmp.Diff(map[string][]string{"b": {"b"}}, f.analyze(t, alias.Optimistic{})); diff != "" {
		t.Errorf("Relation mismatch (-expected +got):\n%s", diff)
	}
}

func TestAccessedBeforeJoin(t *testing.T) {
	f := newFixture()
	// 0: if ... goto 3
	// 1: a = ...
	// 2: goto 4
	// 3: use b
	// 4: use c
	// 5: return
	f.m.Append(&program.Stmt{Use: []loc.Location{f.b}, Goto: []int{3}, Cond: true})
	f.m.Append(def(f.a))
	f.m.Append(&program.Stmt{Goto: []int{4}})
	f.m.Append(use(f.b))
	f.m.Append(use(f.cf))
	f.m.Append(ret())
	f.m.Segment(0, 5)

	// Only the path through 1 modifies a. The relation holds if any path
	// exhibits the pattern.
	expected := map[string][]string{"a": {"c"}}
	if diff := cmp.Diff(expected, f.analyze(t, alias.Optimistic{})); diff != "" {
		t.Errorf("Relation mismatch (-expected +got):\n%s", diff)
	}
}

func TestAccessedBeforeOutsideSegment(t *testing.T) {
	f := newFixture()
	f.m.Append(def(f.a))
	f.m.Append(use(f.a))
	f.m.Append(def(f.a))
	f.m.Append(use(f.b))
	f.m.Append(def(f.b))
	f.m.Append(use(f.a))
	f.m.Append(ret())
	f.m.Segment(1, 3)

	if diff := cmp.Diff(map[string][]string{"a": {"b"}}, f.analyze(t, alias.Optimistic{})); diff != "" {
		t.Errorf("Relation mismatch (-expected +got):\n%s", diff)
	}
}

func TestAccessedBeforeSegmentsReset(t *testing.T) {
	f := newFixture()
	f.m.Append(use(f.a))
	f.m.Append(def(f.a))
	f.m.Append(use(f.b))
	f.m.Append(def(f.b))
	f.m.Append(use(f.cf))
	f.m.Append(ret())
	f.m.Segment(0, 1)
	f.m.Segment(2, 5)

	if diff := cmp.Diff(map[string][]string{"b": {"c"}}, f.analyze(t, alias.Optimistic{})); diff != "" {
		t.Errorf("Relation mismatch (-expected +got):\n%s", diff)
	}
}

func TestComputeMonitor(t *testing.T) {
	lr := testutil.LoadMonitorFromSource(t, testutil.ReadersWriters)
	res := extract.Locations(lr.Segments)
	rel := Compute(res, alias.NewMatrix(res.Table, alias.Optimistic{}))

	// After r0.readers is written in enterReader, r0 and the log are read.
	expected := [][]int{{}, {0, 2, 3}, {}, {}, {}, {}}
	if diff := cmp.Diff(expected, rel.Lists()); diff != "" {
		t.Errorf("Relation mismatch (-expected +got):\n%s", diff)
	}

	if tab := Condense(rel); tab.Edges() != 0 {
		t.Errorf("Expected an acyclic relation to condense to nothing, got %v", tab.Lists())
	}
}

func TestCondense(t *testing.T) {
	tests := []struct {
		name     string
		rel      [][]int
		expected [][]int
	}{
		{
			// v <-> w -> u, x -> u
			"cycle-with-downstream",
			[][]int{{1}, {0, 2}, {}, {2}},
			[][]int{{0, 1, 2}, {0, 1, 2}, {}, {}},
		},
		{
			"self-loop",
			[][]int{{0}},
			[][]int{{}},
		},
		{
			"chain",
			[][]int{{1}, {2}, {}},
			[][]int{{}, {}, {}},
		},
		{
			// 0 <-> 1 -> 2 <-> 3
			"nested-cycles",
			[][]int{{1}, {0, 2}, {3}, {2}},
			[][]int{{0, 1, 2, 3}, {0, 1, 2, 3}, {2, 3}, {2, 3}},
		},
		{
			"empty",
			[][]int{},
			[][]int{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Condense(FromLists(test.rel)).Lists()
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Condense mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestFlowJoin(t *testing.T) {
	f := freshSegment()
	f.accessed.Insert(1)
	g := freshSegment()
	g.accessed.Insert(2)
	g.accThenMod.Insert(2)

	if !empty.join(f).eq(f) || !f.join(empty).eq(f) {
		t.Error("Empty is not the identity of join")
	}

	j := f.join(g)
	if !j.inSegment || j.accessed.Len() != 2 || j.accThenMod.Len() != 1 {
		t.Errorf("Unexpected join %v", j)
	}
	if f.accessed.Len() != 1 {
		t.Error("Join mutated its operand")
	}
	if empty.eq(freshSegment()) {
		t.Error("Empty equals an empty segment flow")
	}
}

// On straight-line code the relation is exactly the set of pairs (v, w)
// such that v is accessed, then written, then w is accessed.
func TestAccessedBeforeStraightLine(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 50; iter++ {
		f := newFixture()
		fields := []loc.Location{f.a, f.b, f.cf}
		names := []string{"a", "b", "c"}

		type step struct {
			used, defined int
		}
		var steps []step
		n := 2 + rng.Intn(8)
		for i := 0; i < n; i++ {
			s := step{used: rng.Intn(3), defined: -1}
			stmt := use(fields[s.used])
			if rng.Intn(2) == 0 {
				s.defined = rng.Intn(3)
				stmt.Def = []loc.Location{fields[s.defined]}
			}
			steps = append(steps, s)
			f.m.Append(stmt)
		}
		f.m.Append(ret())
		f.m.Segment(0, len(steps))

		expected := make(map[string][]string)
		for v := range fields {
			var succs []string
			for w := range fields {
				found := false
				for i := range steps {
					if steps[i].used != v && steps[i].defined != v {
						continue
					}
					for j := i; j < len(steps); j++ {
						if steps[j].defined != v {
							continue
						}
						for k := j + 1; k < len(steps); k++ {
							if steps[k].used == w || steps[k].defined == w {
								found = true
							}
						}
					}
				}
				if found {
					succs = append(succs, names[w])
				}
			}
			if len(succs) > 0 {
				expected[names[v]] = succs
			}
		}

		got := f.analyze(t, alias.Optimistic{})
		// Ids follow first occurrence, so compare as sets.
		for v, ws := range got {
			sort.Strings(ws)
			got[v] = ws
		}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Fatalf("Relation mismatch on %v (-expected +got):\n%s", steps, diff)
		}
	}
}
