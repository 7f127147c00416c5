package queue

import "sync/atomic"

// Queue is an unbounded lock-free MPSC queue (Vyukov intrusive list).
// Thread-Safety:
//   - Push: wait-free, one atomic swap, any number of producers
//   - Pop: single consumer only
//
// A producer that has swapped the head but not yet linked its node is
// invisible to Pop until the link lands; the value shows up on a later Pop.
type Queue[T any] struct {
	head atomic.Pointer[node[T]] // last pushed node (producers)
	tail *node[T]                // consumed sentinel (consumer only)
	size atomic.Int64
}

type node[T any] struct {
	next  atomic.Pointer[node[T]]
	value T
}

func New[T any]() *Queue[T] {
	stub := &node[T]{}
	q := &Queue[T]{tail: stub}
	q.head.Store(stub)
	return q
}

// Push appends v. Never blocks.
func (q *Queue[T]) Push(v T) {
	n := &node[T]{value: v}
	prev := q.head.Swap(n)
	q.size.Add(1)
	prev.next.Store(n) // link after swap; Pop treats nil next as empty
}

// Pop removes the oldest linked value. Single consumer.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	next := q.tail.next.Load()
	if next == nil {
		return zero, false
	}
	v := next.value
	next.value = zero // next becomes the new sentinel; drop its reference
	q.tail = next
	q.size.Add(-1)
	return v, true
}

// Len returns the approximate number of pending values.
func (q *Queue[T]) Len() int {
	n := q.size.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}
