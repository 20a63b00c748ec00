package program

import (
	"strconv"
	"strings"

	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"

	"github.com/pkg/errors"
)

// locParser parses the textual location syntax of model files:
//
//	this            receiver
//	@p0             first parameter
//	r0              declared local
//	Class::f        static field
//	x.f             instance field of x
//	x[i]            array element of x at index i
//	42, #text       non-storage operand
type locParser struct {
	text string
	pos  int
	c    *Class
	m    *Method
}

// ParseLocation parses text as a location occurring in method m.
func (c *Class) ParseLocation(m *Method, text string) (loc.Location, error) {
	p := &locParser{text: strings.TrimSpace(text), c: c, m: m}
	l, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.text) {
		return nil, p.errorf("unexpected %q", p.text[p.pos:])
	}
	return l, nil
}

func (p *locParser) errorf(format string, args ...interface{}) error {
	args = append([]interface{}{p.text}, args...)
	return errors.Wrapf(ErrContract, "location %q: "+format, args...)
}

func isIdentChar(b byte) bool {
	return b == '_' || b == '$' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

func (p *locParser) ident() string {
	start := p.pos
	for p.pos < len(p.text) && isIdentChar(p.text[p.pos]) {
		p.pos++
	}
	return p.text[start:p.pos]
}

func (p *locParser) consume(prefix string) bool {
	if strings.HasPrefix(p.text[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *locParser) expr() (loc.Location, error) {
	l, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.pos < len(p.text) {
		switch {
		case p.consume("."):
			name := p.ident()
			f, ok := p.c.LookupField(name)
			if !ok || f.Static {
				return nil, p.errorf("no instance field %q", name)
			}
			l = loc.InstanceField{Base: l, Class: f.Owner, Field: name, Prim: IsPrimitive(f.Type)}
		case p.consume("["):
			idx, err := p.expr()
			if err != nil {
				return nil, err
			}
			if !p.consume("]") {
				return nil, p.errorf("missing ]")
			}
			elem, isArray := strings.CutSuffix(p.typeOf(l), "[]")
			if !isArray {
				return nil, p.errorf("%v is not an array", l)
			}
			l = loc.ArrayElement{Base: l, Index: idx, Prim: IsPrimitive(elem)}
		default:
			return l, nil
		}
	}
	return l, nil
}

func (p *locParser) primary() (loc.Location, error) {
	switch {
	case p.consume("#"):
		start := p.pos
		for p.pos < len(p.text) && p.text[p.pos] != ']' {
			p.pos++
		}
		return loc.Value{Text: p.text[start:p.pos]}, nil
	case p.consume("@p"):
		digits := p.ident()
		i, err := strconv.Atoi(digits)
		if err != nil || i < 0 || i >= len(p.m.params) {
			return nil, p.errorf("no parameter @p%s in %s", digits, p.m.Name())
		}
		return p.m.Param(i), nil
	}

	name := p.ident()
	switch {
	case name == "":
		return nil, p.errorf("expected a location at offset %d", p.pos)
	case name[0] >= '0' && name[0] <= '9':
		return loc.Value{Text: name}, nil
	case name == "this":
		if p.m.static {
			return nil, p.errorf("no receiver in static method %s", p.m.Name())
		}
		return p.c.This(), nil
	case p.consume("::"):
		field := p.ident()
		f, ok := p.c.fields[name+"."+field]
		if !ok || !f.Static {
			return nil, p.errorf("no static field %s::%s", name, field)
		}
		return loc.StaticField{Class: name, Field: field, Prim: IsPrimitive(f.Type)}, nil
	}

	if _, declared := p.m.locals[name]; !declared {
		return nil, p.errorf("undeclared local %q in %s", name, p.m.Name())
	}
	return p.m.Local(name), nil
}

// typeOf returns the declared type of the storage l refers to.
func (p *locParser) typeOf(l loc.Location) string {
	switch l := l.(type) {
	case loc.This:
		return l.Class
	case loc.Local:
		return p.m.locals[l.Name]
	case loc.Param:
		return p.m.params[l.Index]
	case loc.InstanceField:
		return p.c.fields[l.Class+"."+l.Field].Type
	case loc.StaticField:
		return p.c.fields[l.Class+"."+l.Field].Type
	case loc.ArrayElement:
		return strings.TrimSuffix(p.typeOf(l.Base), "[]")
	}
	return "int"
}

// operands returns l followed by the locations read to evaluate it: the
// bases of field and array accesses and array indices.
func operands(l loc.Location) []loc.Location {
	switch a := l.(type) {
	case loc.InstanceField:
		return append([]loc.Location{l}, operands(a.Base)...)
	case loc.ArrayElement:
		res := append([]loc.Location{l}, operands(a.Base)...)
		return append(res, operands(a.Index)...)
	}
	return []loc.Location{l}
}
