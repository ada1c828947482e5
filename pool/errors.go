package pool

import (
	"errors"

	"github.com/utkarsh5026/threadpool/internal/scheduler"
)

var (
	// ErrInvalidWorkerCount is returned by New when WithWorkerCount is given a
	// value below 1.
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

	// ErrPoolClosed is returned by Submit once Close or Shutdown has started.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrNilTask is returned when a nil function is submitted.
	ErrNilTask = errors.New("task function is nil")

	// ErrFutureConsumed is returned by every Get after the first one.
	ErrFutureConsumed = errors.New("future result already consumed")

	// ErrShutdownTimeout is returned by Shutdown when workers are still busy
	// after the timeout.
	ErrShutdownTimeout = errors.New("error in shutting down: timeout reached")

	// ErrTaskPanicked is wrapped into the error of a task whose body panicked.
	ErrTaskPanicked = scheduler.ErrTaskPanicked

	// ErrPoolAbandoned is the error of tasks that had not started when Shutdown
	// gave up waiting for them.
	ErrPoolAbandoned = scheduler.ErrAbandoned
)
