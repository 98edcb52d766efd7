package queue

import "sync"

// DefaultBufferSize is the queue capacity used when callers have no better
// number.
const DefaultBufferSize = 1024

// InMemoryQueue implements Queue on a buffered channel. Items enqueued
// before Close remain readable afterward; only new sends are refused.
type InMemoryQueue[T any] struct {
	ch     chan T
	lock   sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a queue holding at most capacity items.
func NewInMemoryQueue[T any](capacity int) *InMemoryQueue[T] {
	return &InMemoryQueue[T]{
		ch: make(chan T, capacity),
	}
}

// Enqueue adds an item to the end of the queue without blocking.
func (q *InMemoryQueue[T]) Enqueue(item T) error {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.ch <- item:
		return nil
	default:
		return ErrFull
	}
}

// Dequeue removes and returns the item at the front of the queue. The
// second return value is false when the queue is empty.
func (q *InMemoryQueue[T]) Dequeue() (T, bool) {
	select {
	case item := <-q.ch:
		return item, true
	default:
		var zero T
		return zero, false
	}
}

// Size returns the number of items currently queued.
func (q *InMemoryQueue[T]) Size() int {
	return len(q.ch)
}

// ReadAll drains every pending item in order.
func (q *InMemoryQueue[T]) ReadAll() []T {
	var items []T
	for {
		item, ok := q.Dequeue()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

// Close marks the consumer side gone. Subsequent Enqueue calls return
// ErrClosed.
func (q *InMemoryQueue[T]) Close() {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.closed = true
}
