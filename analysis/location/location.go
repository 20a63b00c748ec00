package location

import (
	"github.com/benSepanski/lockPlacementBenchmarks/utils"

	"github.com/fatih/color"
)

// colorize is used for pretty-printing.
var colorize = struct {
	Local  func(...interface{}) string
	Param  func(...interface{}) string
	This   func(...interface{}) string
	Field  func(...interface{}) string
	Static func(...interface{}) string
	Index  func(...interface{}) string
	Value  func(...interface{}) string
}{
	Local: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiGreen).SprintFunc())(is...)
	},
	Param: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiYellow).SprintFunc())(is...)
	},
	This: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	Field: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiMagenta).SprintFunc())(is...)
	},
	Static: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiRed).SprintFunc())(is...)
	},
	Index: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiCyan).SprintFunc())(is...)
	},
	Value: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiWhite, color.Faint).SprintFunc())(is...)
	},
}

// Kind discriminates the storage a location refers to.
type Kind int

const (
	KindValue Kind = iota
	KindLocal
	KindParam
	KindThis
	KindInstanceField
	KindStaticField
	KindArrayElement
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindParam:
		return "param"
	case KindThis:
		return "this"
	case KindInstanceField:
		return "field"
	case KindStaticField:
		return "static"
	case KindArrayElement:
		return "array"
	}
	return "value"
}

// A Location is an abstract storage reference occurring in a method body.
// Two occurrences denote the same Location iff they are structurally equal.
// All implementations are comparable structs, so == coincides with Equal.
type Location interface {
	Hash() uint32
	Equal(Location) bool
	String() string
	Kind() Kind
	// Primitive reports whether the referenced storage holds a primitive
	// value, i. e. one without object identity to synchronize on.
	Primitive() bool
}

// LocationHasher is needed for immutable.Map and hmap.Map.
type LocationHasher struct{}

func (LocationHasher) Hash(key Location) uint32 {
	return key.Hash()
}

func (LocationHasher) Equal(a, b Location) bool {
	return a.Equal(b)
}

// IsCandidate decides whether an occurrence denotes shared storage that may
// need lock protection: non-primitive locals and parameters, any field,
// the receiver and any array element.
func IsCandidate(l Location) bool {
	switch l.Kind() {
	case KindLocal, KindParam:
		return !l.Primitive()
	case KindThis, KindInstanceField, KindStaticField, KindArrayElement:
		return true
	}
	return false
}

// IsArrayElement reports whether l refers to an array element.
func IsArrayElement(l Location) bool {
	return l.Kind() == KindArrayElement
}
