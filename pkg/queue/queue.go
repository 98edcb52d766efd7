package queue

import "errors"

var (
	// ErrClosed is returned by Enqueue once the consumer side has closed
	// the queue.
	ErrClosed = errors.New("queue is closed")
	// ErrFull is returned by Enqueue when the queue buffer is exhausted.
	ErrFull = errors.New("queue is full")
)

// Queue is a bounded FIFO conduit between a producer and a consumer.
// Enqueue and the read operations never block; a producer outliving the
// consumer sees ErrClosed and decides for itself whether that is fatal.
type Queue[T any] interface {
	Enqueue(item T) error
	Dequeue() (T, bool)
	Size() int
	ReadAll() []T
	Close()
}
