package graph

import "fmt"

// Dominators is the dominator tree of the nodes reachable from a root.
type Dominators[T any] struct {
	postorderTime Mapper[T]
	order         []T
	doms          []int
}

// Source: https://www.cs.rice.edu/~keith/EMBED/dom.pdf
func (G Graph[T]) DominatorTree(root T) Dominators[T] {
	postorderTime := G.mapFactory()
	pred := G.mapFactory()

	// Compute DFS post-order ordering with an explicit stack.
	order := []T{}
	type frame struct {
		node  T
		edges []T
		next  int
	}

	postorderTime.Set(root, -1)
	stack := []*frame{{node: root, edges: G.Edges(root)}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next < len(f.edges) {
			e := f.edges[f.next]
			f.next++

			var preds []T
			if predsItf, found := pred.Get(e); found {
				preds = predsItf.([]T)
			}
			pred.Set(e, append(preds, f.node))

			if _, seen := postorderTime.Get(e); !seen {
				postorderTime.Set(e, -1)
				stack = append(stack, &frame{node: e, edges: G.Edges(e)})
			}
			continue
		}

		stack = stack[:len(stack)-1]
		postorderTime.Set(f.node, len(order))
		order = append(order, f.node)
	}

	time := len(order)

	// Initialize doms to "Undefined"
	doms := make([]int, time)
	for i := 0; i < time; i++ {
		doms[i] = -1
	}
	doms[time-1] = time - 1

	intersect := func(a, b int) int {
		for a != b {
			if a < b {
				a = doms[a]
			} else {
				b = doms[b]
			}
		}
		return a
	}

	for {
		changed := false

		// Process nodes in reverse post-order (except for root)
		for i := time - 2; i >= 0; i-- {
			node := order[i]

			newIdom := -1
			predsItf, _ := pred.Get(node)

			for _, predecessor := range predsItf.([]T) {
				jItf, _ := postorderTime.Get(predecessor)
				j := jItf.(int)

				if doms[j] != -1 {
					if newIdom == -1 {
						newIdom = j
					} else {
						newIdom = intersect(j, newIdom)
					}
				}
			}

			if newIdom != doms[i] {
				doms[i] = newIdom
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return Dominators[T]{postorderTime, order, doms}
}

// Reachable reports whether node is reachable from the root.
func (d Dominators[T]) Reachable(node T) bool {
	_, found := d.postorderTime.Get(node)
	return found
}

func (d Dominators[T]) intersect(a, b int) int {
	for a != b {
		if a < b {
			a = d.doms[a]
		} else {
			b = d.doms[b]
		}
	}
	return a
}

// Common returns the closest common dominator of the provided nodes.
// All nodes must be reachable from the root.
func (d Dominators[T]) Common(nodes ...T) T {
	if len(nodes) == 0 {
		panic("Empty list of nodes for dominator computation")
	}

	dom := -1
	for _, node := range nodes {
		iItf, found := d.postorderTime.Get(node)
		if !found {
			panic(fmt.Errorf("%v was not reachable when computing the dominator tree", node))
		}

		i := iItf.(int)
		if dom == -1 {
			dom = i
		} else {
			dom = d.intersect(i, dom)
		}
	}

	return d.order[dom]
}

// Dominates reports whether every path from the root to b passes through a.
// Unreachable nodes are dominated by nothing.
func (d Dominators[T]) Dominates(a, b T) bool {
	ai, found := d.postorderTime.Get(a)
	if !found {
		return false
	}
	bi, found := d.postorderTime.Get(b)
	if !found {
		return false
	}
	return d.intersect(ai.(int), bi.(int)) == ai.(int)
}
