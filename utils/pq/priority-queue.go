// Package pq provides the priority worklist of the dataflow engines:
// a min-queue over the dense indices 0..n-1 of a method body, processing
// instructions in index order.
package pq

import (
	"container/heap"
	"sort"
)

// indexHeap orders queued indices ascending.
type indexHeap struct{ sort.IntSlice }

func (h *indexHeap) Push(x any) {
	h.IntSlice = append(h.IntSlice, x.(int))
}

func (h *indexHeap) Pop() any {
	n := len(h.IntSlice)
	x := h.IntSlice[n-1]
	h.IntSlice = h.IntSlice[:n-1]
	return x
}

var _ heap.Interface = (*indexHeap)(nil)

// IndexQueue holds a set of pending indices below a fixed bound. An index
// is queued at most once at a time.
type IndexQueue struct {
	heap   indexHeap
	queued []bool
}

// NewIndexQueue creates an empty queue for the indices 0..n-1.
func NewIndexQueue(n int) *IndexQueue {
	return &IndexQueue{queued: make([]bool, n)}
}

// Full creates a queue holding every index 0..n-1.
func Full(n int) *IndexQueue {
	q := NewIndexQueue(n)
	q.heap.IntSlice = make(sort.IntSlice, n)
	for i := range q.queued {
		q.heap.IntSlice[i] = i
		q.queued[i] = true
	}
	// Ascending order already satisfies the heap invariant.
	return q
}

func (q *IndexQueue) IsEmpty() bool {
	return q.heap.Len() == 0
}

func (q *IndexQueue) Len() int {
	return q.heap.Len()
}

// GetNext removes and returns the smallest queued index.
func (q *IndexQueue) GetNext() int {
	i := heap.Pop(&q.heap).(int)
	q.queued[i] = false
	return i
}

// Add queues i unless it is already pending. It panics if i is out of
// bounds.
func (q *IndexQueue) Add(i int) {
	if q.queued[i] {
		return
	}
	q.queued[i] = true
	heap.Push(&q.heap, i)
}
