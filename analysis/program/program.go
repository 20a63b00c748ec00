// Package program describes the program model the lock placement analysis
// consumes: monitors, their method bodies and the atomic segments within
// them. The analysis only depends on the interfaces declared here; the
// in-memory model and its YAML loader are one provider of them.
package program

import (
	"fmt"

	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"

	"github.com/pkg/errors"
)

// ErrContract is wrapped by every violation of the program model contract.
var ErrContract = errors.New("program model contract violation")

// Instruction exposes the storage occurrences of a single instruction.
type Instruction interface {
	Uses() []loc.Location
	Defs() []loc.Location
}

// Body is the control-flow graph of a method. Instructions are addressed by
// their index in 0..Len()-1, and instruction 0 is the entry.
type Body interface {
	// Name is the qualified name of the method.
	Name() string
	// Class is the name of the declaring class.
	Class() string
	IsStatic() bool
	Len() int
	At(i int) Instruction
	Successors(i int) []int
	// GuaranteedDefs lists the locals that are defined on every path from
	// the entry to instruction i.
	GuaranteedDefs(i int) []loc.Location
	// Accessible decides whether a field or parameter may be referenced from
	// this method.
	Accessible(l loc.Location) bool
}

// AtomicSegment is the contiguous instruction region First..Last of Body.
type AtomicSegment struct {
	Body  Body
	First int
	Last  int
}

func (s AtomicSegment) String() string {
	return fmt.Sprintf("%s[%d..%d]", s.Body.Name(), s.First, s.Last)
}

// Contains reports whether instruction i lies in the segment.
func (s AtomicSegment) Contains(i int) bool {
	return s.First <= i && i <= s.Last
}

// Monitor is a unit of analysis whose atomic segments must be serialized.
type Monitor interface {
	Name() string
	Segments() ([]AtomicSegment, error)
}

// Marker classifies instructions for segment extraction.
type Marker int

const (
	NoMarker Marker = iota
	// Identity instructions bind the receiver and parameters to locals.
	Identity
	// Predicate instructions assign the result of a predicate method call.
	Predicate
	// WaitUntil instructions block until the preceding predicate holds.
	WaitUntil
)

// Marked is implemented by instructions that carry a Marker.
type Marked interface {
	Marker() Marker
}

// MarkerOf returns the marker of an instruction, or NoMarker.
func MarkerOf(i Instruction) Marker {
	if m, ok := i.(Marked); ok {
		return m.Marker()
	}
	return NoMarker
}
