package scheduler

import (
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Push once Close has been called.
var ErrQueueClosed = errors.New("queue is closed")

// minQueueCapacity is the initial size of the ring buffer backing a TaskQueue.
const minQueueCapacity = 16

// TaskQueue is an unbounded FIFO queue shared by every worker of a pool.
//
// Push never blocks and never reports the queue as full; the ring buffer grows
// as needed. Pop blocks while the queue is empty and reports ok=false only once
// the queue has been closed and every queued item has been handed out.
//
// All state is guarded by a single mutex, and idle consumers park on a
// condition variable instead of spinning.
type TaskQueue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []T
	head   int
	count  int
	closed bool
}

// NewTaskQueue creates an empty, open queue.
func NewTaskQueue[T any]() *TaskQueue[T] {
	q := &TaskQueue[T]{
		buf: make([]T, minQueueCapacity),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends v to the tail of the queue and wakes one waiting consumer.
// It returns ErrQueueClosed if Close has already been called.
func (q *TaskQueue[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	if q.count == len(q.buf) {
		q.grow()
	}

	q.buf[(q.head+q.count)%len(q.buf)] = v
	q.count++
	q.cond.Signal()
	return nil
}

// Pop removes and returns the item at the head of the queue, blocking while the
// queue is empty. It returns ok=false when the queue is closed and drained.
func (q *TaskQueue[T]) Pop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Wakeups can be spurious; always re-check the predicate.
	for q.count == 0 && !q.closed {
		q.cond.Wait()
	}

	if q.count == 0 {
		return v, false
	}

	v = q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return v, true
}

// Close stops the queue from accepting new items and wakes every consumer so
// that they can drain what is left. It returns true only for the call that
// actually closed the queue.
func (q *TaskQueue[T]) Close() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.closed = true
	q.cond.Broadcast()
	return true
}

// Len returns the number of queued items.
func (q *TaskQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Closed reports whether Close has been called.
func (q *TaskQueue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// grow doubles the ring buffer, unrolling it so that head starts at index 0.
// Must be called with q.mu held.
func (q *TaskQueue[T]) grow() {
	next := make([]T, max(len(q.buf)*2, minQueueCapacity))
	for i := range q.count {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}
