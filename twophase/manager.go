// Package twophase is the runtime support of instrumented monitors. Atomic
// segments may nest, and every lock obtained inside them is held until the
// outermost segment exits.
package twophase

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrUnmatchedExit is returned when a segment is exited without having
	// been entered.
	ErrUnmatchedExit = errors.New("unmatched exit of atomic segment")
	// ErrNotInSegment is returned when a lock is obtained outside of any
	// atomic segment.
	ErrNotInSegment = errors.New("lock obtained outside of an atomic segment")
)

// Manager tracks the nesting depth and the held locks of one goroutine.
// It must not be shared between goroutines. Locks must be obtained in the
// order computed for the monitor; the manager does not check it.
type Manager struct {
	depth int
	held  []sync.Locker
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) EnterAtomicSegment() {
	m.depth++
}

// ObtainLock blocks until l is acquired. Locks already held by the manager
// are not acquired again.
func (m *Manager) ObtainLock(l sync.Locker) error {
	if m.depth == 0 {
		return ErrNotInSegment
	}
	if m.holds(l) {
		return nil
	}

	l.Lock()
	m.held = append(m.held, l)
	return nil
}

// ExitAtomicSegment leaves the innermost segment. When the outermost
// segment is left, every held lock is released in reverse acquisition
// order.
func (m *Manager) ExitAtomicSegment() error {
	if m.depth == 0 {
		return ErrUnmatchedExit
	}

	m.depth--
	if m.depth == 0 {
		for i := len(m.held) - 1; i >= 0; i-- {
			m.held[i].Unlock()
			m.held[i] = nil
		}
		m.held = m.held[:0]
	}
	return nil
}

func (m *Manager) holds(l sync.Locker) bool {
	for _, h := range m.held {
		if h == l {
			return true
		}
	}
	return false
}

// Depth returns the current nesting depth. Zero means idle.
func (m *Manager) Depth() int {
	return m.depth
}

// Held returns the held locks in acquisition order.
func (m *Manager) Held() []sync.Locker {
	return append([]sync.Locker(nil), m.held...)
}

// Atomic runs fn inside an atomic segment protected by locks, which must be
// given in acquisition order.
func (m *Manager) Atomic(locks []sync.Locker, fn func() error) (err error) {
	m.EnterAtomicSegment()
	defer func() {
		if exitErr := m.ExitAtomicSegment(); err == nil {
			err = exitErr
		}
	}()

	for _, l := range locks {
		if err := m.ObtainLock(l); err != nil {
			return err
		}
	}
	return fn()
}
