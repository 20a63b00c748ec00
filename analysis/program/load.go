package program

import (
	"io"
	"os"

	loc "github.com/benSepanski/lockPlacementBenchmarks/analysis/location"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type fileModel struct {
	Monitors []monitorModel `yaml:"monitors"`
}

type monitorModel struct {
	Name    string        `yaml:"name"`
	Fields  []fieldModel  `yaml:"fields"`
	Methods []methodModel `yaml:"methods"`
	Aliases []aliasModel  `yaml:"aliases"`
}

type fieldModel struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Owner   string `yaml:"owner"`
	Static  bool   `yaml:"static"`
	Private bool   `yaml:"private"`
}

type methodModel struct {
	Name     string            `yaml:"name"`
	Static   bool              `yaml:"static"`
	Params   []string          `yaml:"params"`
	Locals   map[string]string `yaml:"locals"`
	Body     []stmtModel       `yaml:"body"`
	Segments [][]int           `yaml:"segments"`
}

type stmtModel struct {
	Label     string   `yaml:"label"`
	Text      string   `yaml:"text"`
	Uses      []string `yaml:"uses"`
	Defs      []string `yaml:"defs"`
	Goto      []string `yaml:"goto"`
	Cond      bool     `yaml:"cond"`
	Return    bool     `yaml:"return"`
	Identity  bool     `yaml:"identity"`
	Predicate bool     `yaml:"predicate"`
	WaitUntil bool     `yaml:"waituntil"`
}

type aliasModel struct {
	Method   string `yaml:"in"`
	A        string `yaml:"a"`
	B        string `yaml:"b"`
	Relation string `yaml:"relation"`
}

// LoadFile reads the monitors described by a YAML model file.
func LoadFile(path string) ([]*Class, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	classes, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return classes, nil
}

// Load reads the monitors described by a YAML model. Unknown keys are
// rejected. For every occurrence of a field or array access the base (and
// index) are recorded as uses as well.
func Load(r io.Reader) ([]*Class, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var model fileModel
	if err := dec.Decode(&model); err != nil {
		return nil, errors.Wrap(ErrContract, err.Error())
	}

	classes := make([]*Class, 0, len(model.Monitors))
	for _, mm := range model.Monitors {
		c, err := mm.build()
		if err != nil {
			return nil, errors.Wrapf(err, "monitor %s", mm.Name)
		}
		log.WithField("monitor", c.Name()).Debugf("Loaded %d methods", len(c.methods))
		classes = append(classes, c)
	}
	return classes, nil
}

func (mm monitorModel) build() (*Class, error) {
	if mm.Name == "" {
		return nil, errors.Wrap(ErrContract, "monitor without a name")
	}

	c := NewClass(mm.Name)
	for _, f := range mm.Fields {
		c.DeclareField(Field{
			Owner:   f.Owner,
			Name:    f.Name,
			Type:    f.Type,
			Static:  f.Static,
			Private: f.Private,
		})
	}

	methods := make(map[string]*Method)
	for _, md := range mm.Methods {
		m := c.AddMethod(md.Name, md.Static, md.Params...)
		for name, typ := range md.Locals {
			m.DeclareLocal(name, typ)
		}
		if err := md.buildBody(c, m); err != nil {
			return nil, errors.Wrapf(err, "method %s", md.Name)
		}
		if n := m.Len(); n > 0 {
			if reached := len(CFG(m).Reachable(0)); reached < n {
				log.WithField("method", m.Name()).Debugf("%d of %d statements are unreachable", n-reached, n)
			}
		}
		methods[md.Name] = m
	}

	for _, am := range mm.Aliases {
		m, ok := methods[am.Method]
		if !ok && am.Method != "" {
			return nil, errors.Wrapf(ErrContract, "alias fact in unknown method %q", am.Method)
		}
		if m == nil {
			// Only fields, statics and the receiver make sense outside a method.
			m = &Method{class: c, name: "<aliases>", locals: map[string]string{}}
		}

		a, err := c.ParseLocation(m, am.A)
		if err != nil {
			return nil, err
		}
		b, err := c.ParseLocation(m, am.B)
		if err != nil {
			return nil, err
		}
		switch am.Relation {
		case "must", "may", "not":
		default:
			return nil, errors.Wrapf(ErrContract, "unknown alias relation %q", am.Relation)
		}
		c.AddAlias(a, b, am.Relation)
	}

	return c, nil
}

func (md methodModel) buildBody(c *Class, m *Method) error {
	labels := make(map[string]int)
	for i, sm := range md.Body {
		if sm.Label == "" {
			continue
		}
		if _, dup := labels[sm.Label]; dup {
			return errors.Wrapf(ErrContract, "duplicate label %q", sm.Label)
		}
		labels[sm.Label] = i
	}

	parseAll := func(texts []string) (res []loc.Location, err error) {
		for _, text := range texts {
			l, err := c.ParseLocation(m, text)
			if err != nil {
				return nil, err
			}
			res = append(res, l)
		}
		return
	}

	for _, sm := range md.Body {
		uses, err := parseAll(sm.Uses)
		if err != nil {
			return err
		}
		defs, err := parseAll(sm.Defs)
		if err != nil {
			return err
		}

		s := &Stmt{
			Text:   sm.Text,
			Def:    defs,
			Cond:   sm.Cond,
			Return: sm.Return,
		}

		var expanded []loc.Location
		for _, u := range uses {
			expanded = append(expanded, operands(u)...)
		}
		for _, d := range defs {
			expanded = append(expanded, operands(d)[1:]...)
		}
		s.Use = dedup(expanded)

		switch {
		case sm.Identity:
			s.Mark = Identity
		case sm.Predicate:
			s.Mark = Predicate
		case sm.WaitUntil:
			s.Mark = WaitUntil
		}

		for _, target := range sm.Goto {
			i, ok := labels[target]
			if !ok {
				return errors.Wrapf(ErrContract, "unknown label %q", target)
			}
			s.Goto = append(s.Goto, i)
		}

		m.Append(s)
	}

	for _, seg := range md.Segments {
		if len(seg) != 2 {
			return errors.Wrapf(ErrContract, "segment %v is not a [first, last] pair", seg)
		}
		m.Segment(seg[0], seg[1])
	}
	return nil
}

func dedup(ls []loc.Location) (res []loc.Location) {
	seen := make(map[loc.Location]bool)
	for _, l := range ls {
		if !seen[l] {
			seen[l] = true
			res = append(res, l)
		}
	}
	return
}
