// Package alias provides the alias oracles consulted by the lock placement
// analysis. An oracle may be imprecise, but it must never report NotAlias
// for locations that may share storage, nor MustAlias for locations that
// may not.
package alias

import (
	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
)

// Relation classifies a pair of locations.
type Relation int

const (
	NotAlias Relation = iota
	MayAlias
	MustAlias
)

func (r Relation) String() string {
	switch r {
	case MayAlias:
		return "may"
	case MustAlias:
		return "must"
	}
	return "not"
}

// Parse converts the textual form produced by String back into a Relation.
func Parse(s string) (Relation, bool) {
	switch s {
	case "not":
		return NotAlias, true
	case "may":
		return MayAlias, true
	case "must":
		return MustAlias, true
	}
	return NotAlias, false
}

// Oracle answers alias queries between locations.
type Oracle interface {
	Relation(a, b loc.Location) Relation
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(a, b loc.Location) Relation

func (f OracleFunc) Relation(a, b loc.Location) Relation {
	return f(a, b)
}

// Optimistic assumes that locations alias exactly when they are
// structurally equal.
type Optimistic struct{}

func (Optimistic) Relation(a, b loc.Location) Relation {
	if a.Equal(b) {
		return MustAlias
	}
	return NotAlias
}

// Pessimistic assumes any two distinct locations may alias.
type Pessimistic struct{}

func (Pessimistic) Relation(a, b loc.Location) Relation {
	if a.Equal(b) {
		return MustAlias
	}
	return MayAlias
}

// ByName returns the oracle registered under the given name.
func ByName(name string) (Oracle, bool) {
	switch name {
	case "optimistic":
		return Optimistic{}, true
	case "pessimistic":
		return Pessimistic{}, true
	}
	return nil, false
}
