package twophase

import (
	"context"
	"sync"
	"testing"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockopt"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// recorder is a lock that logs its operations.
type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) Lock()   { *r.log = append(*r.log, "lock "+r.name) }
func (r *recorder) Unlock() { *r.log = append(*r.log, "unlock "+r.name) }

func TestNestedRelease(t *testing.T) {
	var log []string
	a, b := &recorder{"A", &log}, &recorder{"B", &log}
	m := NewManager()

	step := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	m.EnterAtomicSegment()
	m.EnterAtomicSegment()
	step(m.ObtainLock(a))
	step(m.ObtainLock(b))
	step(m.ExitAtomicSegment())

	if diff := cmp.Diff([]string{"lock A", "lock B"}, log); diff != "" {
		t.Errorf("Released inside a segment (-expected +got):\n%s", diff)
	}
	if m.Depth() != 1 || len(m.Held()) != 2 {
		t.Errorf("Expected depth 1 with 2 locks, got %d with %d", m.Depth(), len(m.Held()))
	}

	step(m.ExitAtomicSegment())
	expected := []string{"lock A", "lock B", "unlock B", "unlock A"}
	if diff := cmp.Diff(expected, log); diff != "" {
		t.Errorf("Log mismatch (-expected +got):\n%s", diff)
	}
	if m.Depth() != 0 || len(m.Held()) != 0 {
		t.Errorf("Expected an idle manager, got depth %d with %d locks", m.Depth(), len(m.Held()))
	}
}

func TestUnmatchedExit(t *testing.T) {
	m := NewManager()
	if err := m.ExitAtomicSegment(); !errors.Is(err, ErrUnmatchedExit) {
		t.Errorf("Expected ErrUnmatchedExit, got %v", err)
	}

	m.EnterAtomicSegment()
	if err := m.ExitAtomicSegment(); err != nil {
		t.Fatal(err)
	}
	if err := m.ExitAtomicSegment(); !errors.Is(err, ErrUnmatchedExit) {
		t.Errorf("Expected ErrUnmatchedExit, got %v", err)
	}
}

func TestObtainOutsideSegment(t *testing.T) {
	var log []string
	m := NewManager()
	if err := m.ObtainLock(&recorder{"A", &log}); !errors.Is(err, ErrNotInSegment) {
		t.Errorf("Expected ErrNotInSegment, got %v", err)
	}
	if len(log) != 0 {
		t.Errorf("Lock was acquired: %v", log)
	}
}

func TestObtainHeldLock(t *testing.T) {
	m := NewManager()
	mu := &sync.Mutex{}

	m.EnterAtomicSegment()
	m.EnterAtomicSegment()
	for i := 0; i < 2; i++ {
		// A second Lock on a held sync.Mutex would deadlock.
		if err := m.ObtainLock(mu); err != nil {
			t.Fatal(err)
		}
	}
	m.ExitAtomicSegment()
	m.ExitAtomicSegment()

	if !mu.TryLock() {
		t.Error("Mutex still held after the outermost exit")
	}
}

func TestAtomic(t *testing.T) {
	var log []string
	a, b := &recorder{"A", &log}, &recorder{"B", &log}
	m := NewManager()

	fail := errors.New("fail")
	err := m.Atomic([]sync.Locker{a, b}, func() error {
		log = append(log, "body")
		return fail
	})
	if !errors.Is(err, fail) {
		t.Errorf("Expected the error of the body, got %v", err)
	}

	expected := []string{"lock A", "lock B", "body", "unlock B", "unlock A"}
	if diff := cmp.Diff(expected, log); diff != "" {
		t.Errorf("Log mismatch (-expected +got):\n%s", diff)
	}
}

func TestContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("Found a manager in an empty context")
	}

	m := NewManager()
	got, ok := FromContext(NewContext(context.Background(), m))
	if !ok || got != m {
		t.Errorf("FromContext returned %v, expected %v", got, m)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Global(1) != r.Global(1) || r.Global(1) == r.Global(2) {
		t.Error("Global locks are not one per target")
	}

	type object struct{ int }
	x, y := &object{}, &object{}
	local := func(root any) *sync.Mutex {
		t.Helper()
		l, err := r.Local(root)
		if err != nil {
			t.Fatal(err)
		}
		return l
	}
	if local(x) != local(x) || local(x) == local(y) {
		t.Error("Local locks are not one per object")
	}

	plan := []lockopt.Lock{
		{Target: 0, Kind: lockopt.Global},
		{Target: 1, Kind: lockopt.Local},
		{Target: 2, Kind: lockopt.Local},
	}
	// Targets 1 and 2 refer to the same object.
	locks, err := r.Resolve(plan, func(int) any { return x })
	if err != nil {
		t.Fatal(err)
	}
	expected := []sync.Locker{r.Global(0), local(x)}
	if len(locks) != len(expected) {
		t.Fatalf("Resolve returned %d locks, expected %d", len(locks), len(expected))
	}
	for i := range locks {
		if locks[i] != expected[i] {
			t.Errorf("Lock %d differs", i)
		}
	}
}

func TestRegistryInvalidRoots(t *testing.T) {
	r := NewRegistry()
	tests := map[string]any{
		"nil":   nil,
		"slice": []int{1},
		"map":   map[string]int{},
		"func":  func() {},
	}
	for name, root := range tests {
		t.Run(name, func(t *testing.T) {
			if l, err := r.Local(root); !errors.Is(err, ErrInvalidRoot) || l != nil {
				t.Errorf("Local(%T) = %v, %v, expected ErrInvalidRoot", root, l, err)
			}
		})
	}

	plan := []lockopt.Lock{{Target: 0, Kind: lockopt.Local}}
	if _, err := r.Resolve(plan, func(int) any { return []int{} }); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("Resolve accepted a slice root: %v", err)
	}
}

func TestConcurrentSegments(t *testing.T) {
	r := NewRegistry()
	type account struct{ balance int }
	x, y := &account{100}, &account{100}

	// Transfers in both directions acquire the same plan order.
	plan := []lockopt.Lock{
		{Target: 0, Kind: lockopt.Local},
		{Target: 1, Kind: lockopt.Local},
	}
	roots := func(target int) any {
		if target == 0 {
			return x
		}
		return y
	}

	locks, err := r.Resolve(plan, roots)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			m := NewManager()
			for i := 0; i < 200; i++ {
				from, to := x, y
				if (g+i)%2 == 0 {
					from, to = y, x
				}
				err := m.Atomic(locks, func() error {
					from.balance--
					to.balance++
					return nil
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if x.balance+y.balance != 200 {
		t.Errorf("Lost updates: balances %d and %d", x.balance, y.balance)
	}
}
