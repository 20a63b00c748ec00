package location

import (
	"fmt"

	"github.com/benSepanski/lockPlacementBenchmarks/utils"
)

// Local is a method-scoped local variable.
type Local struct {
	Method string
	Name   string
	Prim   bool
}

func (l Local) Equal(ol Location) bool {
	o, ok := ol.(Local)
	return ok && l == o
}

func (l Local) Hash() uint32 {
	return utils.HashCombine(
		uint32(KindLocal),
		utils.HashString(l.Method),
		utils.HashString(l.Name),
	)
}

func (l Local) String() string {
	return colorize.Local(l.Name)
}

func (Local) Kind() Kind { return KindLocal }

func (l Local) Primitive() bool { return l.Prim }

// Param is the formal parameter at position Index of a method.
type Param struct {
	Method string
	Index  int
	Prim   bool
}

func (l Param) Equal(ol Location) bool {
	o, ok := ol.(Param)
	return ok && l == o
}

func (l Param) Hash() uint32 {
	return utils.HashCombine(
		uint32(KindParam),
		utils.HashString(l.Method),
		utils.HashInt(l.Index),
	)
}

func (l Param) String() string {
	return colorize.Param(fmt.Sprintf("@p%d", l.Index))
}

func (Param) Kind() Kind { return KindParam }

func (l Param) Primitive() bool { return l.Prim }

// This is the receiver of the instance methods of Class.
type This struct {
	Class string
}

func (l This) Equal(ol Location) bool {
	o, ok := ol.(This)
	return ok && l == o
}

func (l This) Hash() uint32 {
	return utils.HashCombine(uint32(KindThis), utils.HashString(l.Class))
}

func (l This) String() string {
	return colorize.This("this")
}

func (This) Kind() Kind { return KindThis }

func (This) Primitive() bool { return false }

// Value is an operand that does not denote storage, e. g. a constant.
type Value struct {
	Text string
}

func (l Value) Equal(ol Location) bool {
	o, ok := ol.(Value)
	return ok && l == o
}

func (l Value) Hash() uint32 {
	return utils.HashCombine(uint32(KindValue), utils.HashString(l.Text))
}

func (l Value) String() string {
	return colorize.Value(l.Text)
}

func (Value) Kind() Kind { return KindValue }

func (Value) Primitive() bool { return true }
