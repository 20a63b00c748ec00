package program

import (
	"fmt"
	"sort"

	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"
)

// Stmt is an instruction of the in-memory model.
type Stmt struct {
	Text string
	Use  []loc.Location
	Def  []loc.Location
	Mark Marker
	// Goto lists explicit jump targets. Without targets, or when Cond is set,
	// control also falls through to the next instruction.
	Goto   []int
	Cond   bool
	Return bool
}

func (s *Stmt) Uses() []loc.Location { return s.Use }
func (s *Stmt) Defs() []loc.Location { return s.Def }
func (s *Stmt) Marker() Marker       { return s.Mark }

func (s *Stmt) String() string {
	if s.Text != "" {
		return s.Text
	}
	return fmt.Sprintf("defs %v uses %v", s.Def, s.Use)
}

// Field is a field declaration.
type Field struct {
	Owner   string
	Name    string
	Type    string
	Static  bool
	Private bool
}

// Method is a method body of the in-memory model.
type Method struct {
	class       *Class
	name        string
	static      bool
	constructor bool
	params      []string
	locals      map[string]string
	stmts       []*Stmt
	segments    [][2]int

	guaranteed [][]loc.Location
}

func (m *Method) Name() string       { return m.class.name + "." + m.name }
func (m *Method) Class() string      { return m.class.name }
func (m *Method) IsStatic() bool     { return m.static }
func (m *Method) IsConstructor() bool { return m.constructor }
func (m *Method) Len() int           { return len(m.stmts) }

func (m *Method) At(i int) Instruction {
	return m.stmts[i]
}

// Stmts returns the instructions of the method.
func (m *Method) Stmts() []*Stmt {
	return m.stmts
}

// Append adds an instruction at the end of the body, returning its index.
func (m *Method) Append(s *Stmt) int {
	m.stmts = append(m.stmts, s)
	m.guaranteed = nil
	return len(m.stmts) - 1
}

// Segment declares First..Last as an atomic segment explicitly, disabling
// marker-based extraction for this method.
func (m *Method) Segment(first, last int) {
	m.segments = append(m.segments, [2]int{first, last})
}

func (m *Method) Successors(i int) (succs []int) {
	s := m.stmts[i]
	if s.Return {
		return nil
	}

	succs = append(succs, s.Goto...)
	if (len(s.Goto) == 0 || s.Cond) && i+1 < len(m.stmts) {
		succs = append(succs, i+1)
	}
	return
}

func (m *Method) GuaranteedDefs(i int) []loc.Location {
	if m.guaranteed == nil {
		m.guaranteed = guaranteedDefs(m)
	}
	return m.guaranteed[i]
}

func (m *Method) Accessible(l loc.Location) bool {
	switch l := l.(type) {
	case loc.Param:
		return l.Method == m.Name()
	case loc.InstanceField:
		return m.class.canAccess(l.Class, l.Field)
	case loc.StaticField:
		return m.class.canAccess(l.Class, l.Field)
	}
	return false
}

// Local returns the local with the given name, typed by its declaration.
func (m *Method) Local(name string) loc.Local {
	return loc.Local{Method: m.Name(), Name: name, Prim: IsPrimitive(m.locals[name])}
}

// Param returns the i'th parameter.
func (m *Method) Param(i int) loc.Param {
	return loc.Param{Method: m.Name(), Index: i, Prim: IsPrimitive(m.params[i])}
}

// Class is a monitor of the in-memory model.
type Class struct {
	name    string
	fields  map[string]Field
	methods []*Method
	aliases []AliasFact
}

func NewClass(name string) *Class {
	return &Class{name: name, fields: make(map[string]Field)}
}

func (c *Class) Name() string { return c.name }

// This returns the receiver location of the class.
func (c *Class) This() loc.This {
	return loc.This{Class: c.name}
}

// DeclareField registers a field. Fields of other classes may be declared by
// setting Owner.
func (c *Class) DeclareField(f Field) {
	if f.Owner == "" {
		f.Owner = c.name
	}
	c.fields[f.Owner+"."+f.Name] = f
}

// LookupField finds a declared field by name, preferring fields of the
// class itself.
func (c *Class) LookupField(name string) (Field, bool) {
	if f, ok := c.fields[c.name+"."+name]; ok {
		return f, true
	}

	var found []Field
	for _, f := range c.fields {
		if f.Name == name {
			found = append(found, f)
		}
	}
	if len(found) != 1 {
		return Field{}, false
	}
	return found[0], true
}

func (c *Class) canAccess(owner, name string) bool {
	f, ok := c.fields[owner+"."+name]
	return !ok || owner == c.name || !f.Private
}

// AddMethod creates a method with the given parameter types.
func (c *Class) AddMethod(name string, static bool, params ...string) *Method {
	m := &Method{
		class:       c,
		name:        name,
		static:      static,
		constructor: name == "<init>" || name == "<clinit>",
		params:      params,
		locals:      make(map[string]string),
	}
	c.methods = append(c.methods, m)
	return m
}

// DeclareLocal declares the type of a local of m.
func (m *Method) DeclareLocal(name, typ string) loc.Local {
	m.locals[name] = typ
	return m.Local(name)
}

func (c *Class) Methods() []*Method {
	return c.methods
}

// Segments returns the atomic segments of all methods, in method order.
// Methods without explicit segments are split by their markers.
func (c *Class) Segments() ([]AtomicSegment, error) {
	var segs []AtomicSegment
	for _, m := range c.methods {
		if len(m.segments) == 0 {
			segs = append(segs, ExtractSegments(m)...)
			continue
		}

		declared := make([]AtomicSegment, 0, len(m.segments))
		for _, s := range m.segments {
			declared = append(declared, AtomicSegment{Body: m, First: s[0], Last: s[1]})
		}
		sort.Slice(declared, func(i, j int) bool { return declared[i].First < declared[j].First })
		segs = append(segs, declared...)
	}

	if err := ValidateSegments(segs); err != nil {
		return nil, err
	}
	return segs, nil
}

// AliasFact records a known alias relation between two locations of the
// monitor. The relation is kept as text so this package does not decide
// how oracles combine facts.
type AliasFact struct {
	A, B     loc.Location
	Relation string
}

func (c *Class) AddAlias(a, b loc.Location, relation string) {
	c.aliases = append(c.aliases, AliasFact{a, b, relation})
}

func (c *Class) Aliases() []AliasFact {
	return c.aliases
}

// IsPrimitive reports whether a type name denotes a primitive type.
func IsPrimitive(typ string) bool {
	switch typ {
	case "int", "long", "short", "byte", "char", "boolean", "float", "double":
		return true
	}
	return false
}
