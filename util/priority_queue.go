package util

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

//*******************************************
// priority queue
//*******************************************

type _PQItem[T any, P constraints.Ordered] struct {
	value    T
	priority P
	seq      int
}

type _PQHeap[T any, P constraints.Ordered] []_PQItem[T, P]

func (self _PQHeap[T, P]) Len() int { return len(self) }
func (self _PQHeap[T, P]) Less(i, j int) bool {
	if self[i].priority == self[j].priority {
		// insertion order breaks ties so equal costs pop deterministically
		return self[i].seq < self[j].seq
	}
	return self[i].priority < self[j].priority
}
func (self _PQHeap[T, P]) Swap(i, j int) { self[i], self[j] = self[j], self[i] }
func (self *_PQHeap[T, P]) Push(x any) {
	*self = append(*self, x.(_PQItem[T, P]))
}
func (self *_PQHeap[T, P]) Pop() any {
	old := *self
	n := len(old)
	item := old[n-1]
	*self = old[:n-1]
	return item
}

// Min-priority queue, items with equal priority are dequeued in insertion order.
type PriorityQueue[T any, P constraints.Ordered] struct {
	heap    _PQHeap[T, P]
	counter int
}

func NewPriorityQueue[T any, P constraints.Ordered](cap int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		heap: make([]_PQItem[T, P], 0, cap),
	}
}

func (self *PriorityQueue[T, P]) Enqueue(value T, priority P) {
	heap.Push(&self.heap, _PQItem[T, P]{value: value, priority: priority, seq: self.counter})
	self.counter += 1
}
func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	if len(self.heap) == 0 {
		var zero T
		return zero, false
	}
	item := heap.Pop(&self.heap).(_PQItem[T, P])
	return item.value, true
}
func (self *PriorityQueue[T, P]) Peek() (T, P, bool) {
	if len(self.heap) == 0 {
		var value T
		var prio P
		return value, prio, false
	}
	item := self.heap[0]
	return item.value, item.priority, true
}
func (self *PriorityQueue[T, P]) Length() int {
	return len(self.heap)
}
func (self *PriorityQueue[T, P]) Clear() {
	self.heap = self.heap[:0]
}
