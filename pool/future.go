package pool

import (
	"context"
	"sync/atomic"
	"time"
)

// State is the outcome recorded in a Future.
type State int32

const (
	// Pending means the task has not finished yet.
	Pending State = iota
	// Completed means the task returned a value.
	Completed
	// Failed means the task returned an error or panicked.
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Future is the handle returned by Submit. It is written once by the worker
// that runs the task and read by the submitter.
//
// Wait, Done, IsReady and State only observe the outcome. Get hands the
// outcome out exactly once; any later Get returns ErrFutureConsumed.
type Future[R any] struct {
	id       int64
	done     chan struct{}
	written  atomic.Bool
	state    atomic.Int32
	consumed atomic.Bool
	value    R
	err      error
}

func newFuture[R any](id int64) *Future[R] {
	return &Future[R]{
		id:   id,
		done: make(chan struct{}),
	}
}

// resolve stores the outcome and releases every waiter. Only the first call
// has an effect; it reports whether this call was the one that wrote.
func (f *Future[R]) resolve(value R, err error) bool {
	if !f.written.CompareAndSwap(false, true) {
		return false
	}

	f.value, f.err = value, err
	if err != nil {
		f.state.Store(int32(Failed))
	} else {
		f.state.Store(int32(Completed))
	}
	close(f.done)
	return true
}

// ID returns the pool-wide sequence number of the task, starting at 1.
func (f *Future[R]) ID() int64 {
	return f.id
}

// Done returns a channel that is closed once the task has finished.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// IsReady reports, without blocking, whether the task has finished.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// State returns the current outcome without consuming it.
func (f *Future[R]) State() State {
	return State(f.state.Load())
}

// Wait blocks until the task has finished. It does not consume the result.
func (f *Future[R]) Wait() {
	<-f.done
}

// WaitContext blocks until the task has finished or ctx is done.
// The task keeps running if ctx expires first.
func (f *Future[R]) WaitContext(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitTimeout is WaitContext with a relative deadline.
func (f *Future[R]) WaitTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return f.WaitContext(ctx)
}

// Get blocks until the task has finished and returns its value or error.
// Get is single use: the second and later calls return ErrFutureConsumed.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.consume()
}

// GetWithContext is Get bounded by ctx. If ctx is done first, the context's
// error is returned and the result stays available for a later Get.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	if err := f.WaitContext(ctx); err != nil {
		var zero R
		return zero, err
	}
	return f.consume()
}

// GetWithTimeout is GetWithContext with a relative deadline.
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return f.GetWithContext(ctx)
}

func (f *Future[R]) consume() (R, error) {
	if !f.consumed.CompareAndSwap(false, true) {
		var zero R
		return zero, ErrFutureConsumed
	}
	return f.value, f.err
}
