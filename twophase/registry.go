package twophase

import (
	"reflect"
	"sync"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockopt"

	"github.com/pkg/errors"
)

// ErrInvalidRoot is returned for local lock roots without identity.
var ErrInvalidRoot = errors.New("invalid local lock root")

// Registry owns the mutexes of one monitor. Global locks exist once per
// target location. Local locks exist once per object, standing in for a
// lock field added to the object the target location refers to.
type Registry struct {
	mu     sync.Mutex
	global map[int]*sync.Mutex
	local  map[any]*sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		global: make(map[int]*sync.Mutex),
		local:  make(map[any]*sync.Mutex),
	}
}

// Global returns the global lock of target.
func (r *Registry) Global(target int) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.global[target]
	if !ok {
		l = &sync.Mutex{}
		r.global[target] = l
	}
	return l
}

// Local returns the lock stored in root, which is usually a pointer. Roots
// that cannot serve as map keys, such as slices or nil, are rejected with
// ErrInvalidRoot.
func (r *Registry) Local(root any) (*sync.Mutex, error) {
	if root == nil {
		return nil, errors.Wrap(ErrInvalidRoot, "nil root")
	}
	if typ := reflect.TypeOf(root); !typ.Comparable() {
		return nil, errors.Wrapf(ErrInvalidRoot, "root of type %s is not comparable", typ)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.local[root]
	if !ok {
		l = &sync.Mutex{}
		r.local[root] = l
	}
	return l, nil
}

// Resolve maps a segment plan to mutexes, preserving its order. roots
// returns the object the target location refers to at segment entry, and
// is only called for local locks. Mutexes occurring more than once are
// kept at their first position.
func (r *Registry) Resolve(plan []lockopt.Lock, roots func(target int) any) ([]sync.Locker, error) {
	res := make([]sync.Locker, 0, len(plan))
	seen := make(map[*sync.Mutex]bool)
	for _, l := range plan {
		var mu *sync.Mutex
		if l.Kind == lockopt.Global {
			mu = r.Global(l.Target)
		} else {
			var err error
			if mu, err = r.Local(roots(l.Target)); err != nil {
				return nil, errors.Wrapf(err, "resolving %v", l)
			}
		}

		if !seen[mu] {
			seen[mu] = true
			res = append(res, mu)
		}
	}
	return res, nil
}
