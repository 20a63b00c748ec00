package graph

// A DAG decomposition of a graph based on strongly connected components.
// The nodes in component i are guaranteed to only have edges to nodes in
// components with index j <= i, i. e. components are listed in reverse
// topological order.
type SCCDecomposition[T any] struct {
	Components [][]T
	comp       Mapper[T]
	Original   Graph[T]
}

// An alias for component type (in case representation changes)
type SCC = int

// Returns the index of the component the node is a part of, or -1 if the
// node was not reachable from the start nodes of the decomposition.
func (scc SCCDecomposition[T]) ComponentOf(node T) SCC {
	if comp, hasComp := scc.comp.Get(node); hasComp {
		return comp.(int)
	}

	return -1
}

// IsTrivial reports whether component c is a single node.
func (scc SCCDecomposition[T]) IsTrivial(c SCC) bool {
	return len(scc.Components[c]) == 1
}

// sccFrame is the state of one pending visit in the explicit DFS stack.
type sccFrame[T any] struct {
	node   T
	low    int
	stackH int
	edges  []T
	next   int
}

// Compute the strongly connected components of the subgraph reachable from the
// provided start nodes.
//
// This is Tarjan's algorithm in the formulation of
// https://github.com/kth-competitive-programming/kactl/blob/main/content/graph/SCC.h
// with the recursion replaced by an explicit stack of frames, so the depth
// of the graph does not bound the depth of the goroutine stack.
func (G Graph[T]) SCC(startNodes []T) SCCDecomposition[T] {
	val, comp := G.mapFactory(), G.mapFactory()
	time := 0
	var z []T
	var components [][]T
	var calls []*sccFrame[T]

	visit := func(node T) {
		time++
		val.Set(node, time)
		calls = append(calls, &sccFrame[T]{
			node:   node,
			low:    time,
			stackH: len(z),
			edges:  G.Edges(node),
		})
		z = append(z, node)
	}

	for _, start := range startNodes {
		if _, visited := val.Get(start); visited {
			continue
		}

		visit(start)
		for len(calls) > 0 {
			f := calls[len(calls)-1]

			if f.next < len(f.edges) {
				e := f.edges[f.next]
				f.next++

				if _, hasComp := comp.Get(e); hasComp {
					continue
				}
				eVal, visited := val.Get(e)
				if !visited {
					visit(e)
					continue
				}
				if eVal.(int) < f.low {
					f.low = eVal.(int)
				}
				continue
			}

			// All successors are done.
			calls = calls[:len(calls)-1]

			if disc, _ := val.Get(f.node); f.low == disc.(int) {
				var cont []T
				for len(z) > f.stackH {
					x := z[len(z)-1]
					z = z[:len(z)-1]
					comp.Set(x, len(components))
					cont = append(cont, x)
				}

				components = append(components, cont)
			}

			val.Set(f.node, f.low)

			// Propagate the low-link to the caller, as the recursive
			// formulation does after returning from the call.
			if len(calls) > 0 {
				if parent := calls[len(calls)-1]; f.low < parent.low {
					parent.low = f.low
				}
			}
		}
	}

	return SCCDecomposition[T]{
		Components: components,
		comp:       comp,
		Original:   G,
	}
}

// Returns a graph based on the SCC decomposition.
// Nodes are component indices (int).
func (scc SCCDecomposition[T]) ToGraph() Graph[SCC] {
	return OfDense(len(scc.Components), func(compIdx SCC) (ret []SCC) {
		seen := map[int]bool{}
		for _, node := range scc.Components[compIdx] {
			for _, edge := range scc.Original.Edges(node) {
				ncomp := scc.ComponentOf(edge)
				if compIdx != ncomp && !seen[ncomp] {
					seen[ncomp] = true
					ret = append(ret, ncomp)
				}
			}
		}
		return
	})
}
