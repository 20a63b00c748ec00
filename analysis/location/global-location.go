package location

import (
	"fmt"

	"github.com/benSepanski/lockPlacementBenchmarks/utils"
)

// StaticField is a class-level field.
type StaticField struct {
	Class string
	Field string
	Prim  bool
}

func (l StaticField) Hash() uint32 {
	return utils.HashCombine(
		uint32(KindStaticField),
		utils.HashString(l.Class),
		utils.HashString(l.Field),
	)
}

func (l StaticField) Equal(ol Location) bool {
	o, ok := ol.(StaticField)
	return ok && l == o
}

func (l StaticField) String() string {
	return fmt.Sprintf("%s::%s", l.Class, colorize.Static(l.Field))
}

func (StaticField) Kind() Kind { return KindStaticField }

func (l StaticField) Primitive() bool { return l.Prim }
