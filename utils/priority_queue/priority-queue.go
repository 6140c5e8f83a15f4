package priority_queue

import (
	"container/heap"

	"github.com/named-data/ndn-cxx-sub014/utils/comparison"
	"golang.org/x/exp/constraints"
)

// Item is a handle to a value stored in a Queue. It stays valid until the value is popped or removed.
type Item[V any, P constraints.Ordered] struct {
	object   V
	priority P
	tie      uint64
	index    int
}

// Value returns the value held by the item.
func (it *Item[V, P]) Value() V {
	return it.object
}

// Priority returns the priority of the item.
func (it *Item[V, P]) Priority() P {
	return it.priority
}

type wrapper[V any, P constraints.Ordered] []*Item[V, P]

// Queue represents a priority queue with MINIMUM priority.
// Items with equal priority are ordered by their tie-break value, so the order is total.
type Queue[V any, P constraints.Ordered] struct {
	pq wrapper[V, P]
}

func (pq wrapper[V, P]) Len() int {
	return len(pq)
}

func (pq wrapper[V, P]) Less(i, j int) bool {
	if c := comparison.Compare(pq[i].priority, pq[j].priority); c != 0 {
		return c < 0
	}
	return pq[i].tie < pq[j].tie
}

func (pq wrapper[V, P]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *wrapper[V, P]) Push(x interface{}) {
	item := x.(*Item[V, P])
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *wrapper[V, P]) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.index = -1 // for safety
	*pq = old[0 : n-1]
	return item
}

// New creates a new priority queue. Not required to call.
func New[V any, P constraints.Ordered]() Queue[V, P] {
	return Queue[V, P]{wrapper[V, P]{}}
}

// Len returns the length of the priority queue.
func (q *Queue[V, P]) Len() int {
	return len(q.pq)
}

// Push pushes the 'value' onto the priority queue and returns its handle.
// 'tie' orders values of equal priority, smaller first.
func (q *Queue[V, P]) Push(value V, priority P, tie uint64) *Item[V, P] {
	it := &Item[V, P]{
		object:   value,
		priority: priority,
		tie:      tie,
	}
	heap.Push(&q.pq, it)
	return it
}

// Peek returns the minimum element of the priority queue without removing it.
func (q *Queue[V, P]) Peek() V {
	return q.pq[0].object
}

// PeekPriority returns the minimum element's priority.
func (q *Queue[V, P]) PeekPriority() P {
	return q.pq[0].priority
}

// Pop removes and returns the minimum element of the priority queue.
func (q *Queue[V, P]) Pop() V {
	return heap.Pop(&q.pq).(*Item[V, P]).object
}

// Update modifies the priority of the item, keeping its tie-break value.
// Returns false if the item is not in this queue.
func (q *Queue[V, P]) Update(it *Item[V, P], priority P) bool {
	if !q.contains(it) {
		return false
	}
	it.priority = priority
	heap.Fix(&q.pq, it.index)
	return true
}

// Remove removes the item from the queue. Returns false if the item is not in this queue.
func (q *Queue[V, P]) Remove(it *Item[V, P]) bool {
	if !q.contains(it) {
		return false
	}
	heap.Remove(&q.pq, it.index)
	return true
}

// Clear removes every item.
func (q *Queue[V, P]) Clear() {
	for _, it := range q.pq {
		it.index = -1
	}
	q.pq = wrapper[V, P]{}
}

func (q *Queue[V, P]) contains(it *Item[V, P]) bool {
	return it != nil && it.index >= 0 && it.index < len(q.pq) && q.pq[it.index] == it
}
