// Package lockorder numbers locations so that locks acquired in ascending
// order never form a circular wait.
package lockorder

import (
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/accessbefore"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockopt"

	"github.com/google/btree"
)

// Order maps every location id to its order number in 1..n.
type Order []int

type dfsFrame struct {
	node  int
	succs []int
	next  int
}

// Build numbers the locations in reverse postorder of a depth-first
// traversal of tab. Roots are visited in id order and successors in
// ascending id order. Whenever w is a successor of v and v is not a
// successor of w, v is numbered before w.
func Build(tab accessbefore.Relation) Order {
	n := len(tab)
	order := make(Order, n)
	visited := make([]bool, n)
	next := n

	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack := []*dfsFrame{{node: root, succs: tab.Successors(root)}}

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.next < len(top.succs) {
				w := top.succs[top.next]
				top.next++
				if !visited[w] {
					visited[w] = true
					stack = append(stack, &dfsFrame{node: w, succs: tab.Successors(w)})
				}
				continue
			}

			order[top.node] = next
			next--
			stack = stack[:len(stack)-1]
		}
	}

	return order
}

// Less orders locks by the order number of their target, placing the
// global lock of a target before its local lock.
func (o Order) Less(a, b lockopt.Lock) bool {
	if oa, ob := o[a.Target], o[b.Target]; oa != ob {
		return oa < ob
	}
	return a.Kind == lockopt.Global && b.Kind == lockopt.Local
}

// Plan returns the locks protecting ids, without duplicates, in acquisition
// order.
func (o Order) Plan(a lockopt.Assignment, ids []int) []lockopt.Lock {
	locks := btree.NewG[lockopt.Lock](2, o.Less)
	for _, i := range ids {
		locks.ReplaceOrInsert(a[i])
	}

	plan := make([]lockopt.Lock, 0, locks.Len())
	locks.Ascend(func(l lockopt.Lock) bool {
		plan = append(plan, l)
		return true
	})
	return plan
}

// Plans computes the acquisition plan of every segment.
func Plans(order Order, a lockopt.Assignment, accessed [][]int) [][]lockopt.Lock {
	plans := make([][]lockopt.Lock, len(accessed))
	for s, ids := range accessed {
		plans[s] = order.Plan(a, ids)
	}
	return plans
}
