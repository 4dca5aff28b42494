// Package queue provides Q, the collection type bound to parameters of queue kind.
package queue

import (
	"github.com/ef-ds/deque"
)

// Q is a generic stack/queue backed by a deque. Both ends are O(1): Push/Pop work on the
// back, Enqueue appends to the back and Dequeue removes from the front.
// The zero value is ready to use.
type Q[T any] struct {
	items *deque.Deque
}

// New creates a new Q
func New[T any]() *Q[T] {
	return &Q[T]{items: deque.New()}
}

// Of creates a Q holding items in order
func Of[T any](items ...T) *Q[T] {
	q := New[T]()
	for _, item := range items {
		q.Enqueue(item)
	}

	return q
}

func (q *Q[T]) store() *deque.Deque {
	if q.items == nil {
		q.items = deque.New()
	}

	return q.items
}

// Push adds an item to the top of the stack
func (q *Q[T]) Push(item T) {
	q.store().PushBack(item)
}

// Pop removes and returns the top item of the stack
func (q *Q[T]) Pop() (T, bool) {
	return unbox[T](q.store().PopBack())
}

// Peek returns the top item of the stack without removing it
func (q *Q[T]) Peek() (T, bool) {
	return unbox[T](q.store().Back())
}

// Enqueue adds an item to the end of the queue
func (q *Q[T]) Enqueue(item T) {
	q.store().PushBack(item)
}

// Dequeue removes and returns the first item of the queue
func (q *Q[T]) Dequeue() (T, bool) {
	return unbox[T](q.store().PopFront())
}

// Front returns the first item of the queue without removing it
func (q *Q[T]) Front() (T, bool) {
	return unbox[T](q.store().Front())
}

// Len returns the number of items in the Q
func (q *Q[T]) Len() int {
	if q.items == nil {
		return 0
	}

	return q.items.Len()
}

// Clear removes all items
func (q *Q[T]) Clear() {
	q.items = deque.New()
}

// Slice returns the items from front to back
func (q *Q[T]) Slice() []T {
	out := make([]T, 0, q.Len())
	q.ForEach(func(item T, _ int) bool {
		out = append(out, item)
		return true
	})

	return out
}

type IterationCallback[T any] func(item T, index int) (keepGoing bool)

// ForEach iterates over the items from front to back. Returning false from the callback
// stops the iteration early; the order of the items is preserved either way.
func (q *Q[T]) ForEach(callback IterationCallback[T]) {
	d := q.store()
	n := d.Len()
	keepGoing := true
	for i := 0; i < n; i++ {
		v, _ := d.PopFront()
		d.PushBack(v)
		if keepGoing {
			item, _ := v.(T)
			keepGoing = callback(item, i)
		}
	}
}

func unbox[T any](v interface{}, ok bool) (T, bool) {
	if !ok {
		var zero T
		return zero, false
	}
	item, _ := v.(T)

	return item, true
}
