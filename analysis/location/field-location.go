package location

import (
	"fmt"

	"github.com/benSepanski/lockPlacementBenchmarks/utils"
)

// InstanceField is the field Class.Field of the object referenced by Base.
type InstanceField struct {
	Base  Location
	Class string
	Field string
	Prim  bool
}

func (l InstanceField) Hash() uint32 {
	return utils.HashCombine(
		uint32(KindInstanceField),
		l.Base.Hash(),
		utils.HashString(l.Class),
		utils.HashString(l.Field),
	)
}

func (l InstanceField) Equal(ol Location) bool {
	o, ok := ol.(InstanceField)
	return ok && l == o
}

func (l InstanceField) String() string {
	return fmt.Sprintf("%s.%s", l.Base, colorize.Field(l.Field))
}

func (InstanceField) Kind() Kind { return KindInstanceField }

func (l InstanceField) Primitive() bool { return l.Prim }

// ArrayElement is the element at Index of the array referenced by Base.
// Distinct index operands give distinct locations; aliasing between them is
// left to the alias oracle.
type ArrayElement struct {
	Base  Location
	Index Location
	Prim  bool
}

func (l ArrayElement) Hash() uint32 {
	return utils.HashCombine(
		uint32(KindArrayElement),
		l.Base.Hash(),
		l.Index.Hash(),
	)
}

func (l ArrayElement) Equal(ol Location) bool {
	o, ok := ol.(ArrayElement)
	return ok && l == o
}

func (l ArrayElement) String() string {
	return fmt.Sprintf("%s"+colorize.Index("[%s]"), l.Base, l.Index)
}

func (ArrayElement) Kind() Kind { return KindArrayElement }

func (l ArrayElement) Primitive() bool { return l.Prim }

// Root strips field and array accesses until reaching the location at the
// base of the access path.
func Root(l Location) Location {
	for {
		switch b := l.(type) {
		case InstanceField:
			l = b.Base
		case ArrayElement:
			l = b.Base
		default:
			return l
		}
	}
}
