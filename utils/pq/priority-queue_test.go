package pq

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func drain(q *IndexQueue) (order []int) {
	for !q.IsEmpty() {
		order = append(order, q.GetNext())
	}
	return
}

func TestIndexQueueOrder(t *testing.T) {
	q := NewIndexQueue(8)
	for _, i := range []int{5, 2, 7, 2, 0, 5} {
		q.Add(i)
	}
	if q.Len() != 4 {
		t.Errorf("Expected 4 queued indices, got %d", q.Len())
	}
	if diff := cmp.Diff([]int{0, 2, 5, 7}, drain(q)); diff != "" {
		t.Errorf("Unexpected order (-want +got):\n%s", diff)
	}
}

func TestIndexQueueRequeue(t *testing.T) {
	q := Full(4)
	var order []int
	for !q.IsEmpty() {
		i := q.GetNext()
		order = append(order, i)
		// A back edge from 2 to 1 is followed once.
		if i == 2 && len(order) == 3 {
			q.Add(1)
			q.Add(3)
		}
	}
	if diff := cmp.Diff([]int{0, 1, 2, 1, 3}, order); diff != "" {
		t.Errorf("Unexpected order (-want +got):\n%s", diff)
	}
}
