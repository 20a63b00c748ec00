package accessbefore

import (
	"github.com/benSepanski/lockPlacementBenchmarks/utils/graph"

	"golang.org/x/tools/container/intsets"
)

// Condense derives the topological accessed-before relation from rel.
// Components are walked in reverse topological order while accumulating
// every location seen so far. Members of a component with more than one
// location are related to everything accumulated up to and including their
// own component. Singleton components are related to nothing.
func Condense(rel Relation) Relation {
	n := len(rel)
	scc := rel.Graph().SCC(graph.Range(n))

	tab := NewRelation(n)
	descendants := &intsets.Sparse{}
	for c, members := range scc.Components {
		for _, v := range members {
			descendants.Insert(v)
		}
		if scc.IsTrivial(c) {
			continue
		}
		for _, v := range members {
			tab[v].Copy(descendants)
		}
	}
	return tab
}
