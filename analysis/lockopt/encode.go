package lockopt

import (
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/alias"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	uf "github.com/spakin/disjoint"
)

// encoding is the circuit of a problem. Locations that must be assigned
// identical locks share their rows of literals: must-alias classes share
// the local row, and classes closed under may-alias share the global row.
// Forbidden cells hold the constant false.
type encoding struct {
	p *Problem
	c *logic.C

	localRow, globalRow []int
	local, global       [][]z.Lit

	// constraints must hold in every model.
	constraints []z.Lit
	// costLits holds every cost indicator, replicated by its weight.
	costLits []z.Lit
	cost     *logic.CardSort
}

// classes partitions 0..n-1 by the transitive closure of the given pairs,
// returning the class index of every element.
func classes(n int, related func(i, j int) bool) []int {
	elems := make([]*uf.Element, n)
	for i := range elems {
		elems[i] = uf.NewElement()
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if related(i, j) {
				uf.Union(elems[i], elems[j])
			}
		}
	}

	index := make(map[*uf.Element]int)
	res := make([]int, n)
	for i, el := range elems {
		rep := el.Find()
		if _, ok := index[rep]; !ok {
			index[rep] = len(index)
		}
		res[i] = index[rep]
	}
	return res
}

func (e *encoding) F() z.Lit {
	return e.c.T.Not()
}

func (e *encoding) ors(ms []z.Lit) z.Lit {
	if len(ms) == 0 {
		return e.F()
	}
	return e.c.Ors(ms...)
}

// leq returns a literal that holds iff at most k of the n inputs of cs are
// true.
func (e *encoding) leq(cs *logic.CardSort, n, k int) z.Lit {
	switch {
	case k < 0:
		return e.F()
	case k >= n:
		return e.c.T
	}
	return cs.Leq(k)
}

// rows allocates one row of literals per class, leaving the cells that are
// forbidden for some member of the class false.
func (e *encoding) rows(class []int, allowed [][]bool) [][]z.Lit {
	n := len(e.p.Locations)
	ok := make(map[int][]bool)
	for i, c := range class {
		if _, found := ok[c]; !found {
			ok[c] = make([]bool, n)
			copy(ok[c], allowed[i])
			continue
		}
		for j := range ok[c] {
			ok[c][j] = ok[c][j] && allowed[i][j]
		}
	}

	rows := make([][]z.Lit, len(ok))
	for c := range rows {
		rows[c] = make([]z.Lit, n)
		for j := range rows[c] {
			if ok[c][j] {
				rows[c][j] = e.c.Lit()
			} else {
				rows[c][j] = e.F()
			}
		}
	}
	return rows
}

func (e *encoding) Local(i, j int) z.Lit  { return e.local[e.localRow[i]][j] }
func (e *encoding) Global(i, j int) z.Lit { return e.global[e.globalRow[i]][j] }

func encode(p *Problem) *encoding {
	n := len(p.Locations)
	e := &encoding{p: p, c: logic.NewC()}

	e.localRow = classes(n, func(i, j int) bool {
		return p.Aliases(i, j) == alias.MustAlias
	})
	e.globalRow = classes(n, func(i, j int) bool {
		return p.Aliases(i, j) != alias.NotAlias
	})

	allowedLocal, allowedGlobal := p.allowed()
	e.local = e.rows(e.localRow, allowedLocal)
	e.global = e.rows(e.globalRow, allowedGlobal)

	// Exactly one lock per location.
	for i := 0; i < n; i++ {
		row := make([]z.Lit, 0, 2*n)
		for j := 0; j < n; j++ {
			row = append(row, e.Local(i, j), e.Global(i, j))
		}
		atMostOne := e.leq(logic.NewCardSort(row, e.c), len(row), 1)
		e.constraints = append(e.constraints, e.ors(row), atMostOne)
	}

	e.encodeCost()
	return e
}

func (e *encoding) weighted(weight int, m z.Lit) {
	for k := 0; k < weight; k++ {
		e.costLits = append(e.costLits, m)
	}
}

func (e *encoding) encodeCost() {
	p := e.p
	n := len(p.Locations)

	column := func(lit func(i, j int) z.Lit, ids []int, j int) z.Lit {
		ms := make([]z.Lit, 0, len(ids))
		for _, i := range ids {
			ms = append(ms, lit(i, j))
		}
		return e.ors(ms)
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	for j := 0; j < n; j++ {
		e.weighted(p.LocalCost, column(e.Local, all, j))
		e.weighted(p.GlobalCost, column(e.Global, all, j))
	}

	segLocal := make([][]z.Lit, len(p.Accessed))
	segGlobal := make([][]z.Lit, len(p.Accessed))
	for s, ids := range p.Accessed {
		segLocal[s], segGlobal[s] = make([]z.Lit, n), make([]z.Lit, n)
		for j := 0; j < n; j++ {
			segLocal[s][j] = column(e.Local, ids, j)
			segGlobal[s][j] = column(e.Global, ids, j)
		}
	}

	share := func(x, y []z.Lit) z.Lit {
		ms := make([]z.Lit, 0, n)
		for j := range x {
			ms = append(ms, e.c.And(x[j], y[j]))
		}
		return e.ors(ms)
	}
	for s1 := range p.Accessed {
		for s2 := s1 + 1; s2 < len(p.Accessed); s2++ {
			e.weighted(p.LocalCost, share(segLocal[s1], segLocal[s2]))
			e.weighted(p.GlobalCost, share(segGlobal[s1], segGlobal[s2]))
		}
	}

	if len(e.costLits) > 0 {
		e.cost = logic.NewCardSort(e.costLits, e.c)
	}
}

// atMost returns a literal that holds iff the cost is at most k.
func (e *encoding) atMost(k int) z.Lit {
	if e.cost == nil {
		if k < 0 {
			return e.F()
		}
		return e.c.T
	}
	return e.leq(e.cost, len(e.costLits), k)
}
