package scheduler

import (
	"context"

	"github.com/utkarsh5026/threadpool/internal/algorithms"
	"golang.org/x/time/rate"
)

// Task is a deferred, single-execution unit of work sitting in a TaskQueue.
//
// Run owns everything the task needs: the bound callable, its arguments and
// the result slot it writes to. Workers only ever call Run once per Task.
type Task struct {
	ID  int64
	Run func(ctx context.Context)
}

// Config holds the execution settings shared by every worker of a pool.
type Config struct {
	// Number of worker goroutines.
	WorkerCount int

	// Maximum number of attempts per task; values below 1 mean a single attempt.
	MaxAttempts int

	// Builds the backoff used between attempts of one task. May be nil, in which
	// case retries happen back to back.
	NewBackoff func() algorithms.BackoffStrategy

	// Optional token bucket applied before each task starts.
	RateLimiter *rate.Limiter

	// Hook called on the worker right before a task body runs.
	BeforeTaskStart func(taskID int64)

	// Hook called on the worker after a task body has returned or panicked.
	OnTaskEnd func(taskID int64, err error)

	// Hook called after a failed attempt that will be retried.
	OnRetry func(taskID int64, attempt int, err error)

	// Wire each worker to its own OS thread for its whole lifetime.
	LockOSThread bool

	// Pin each locked worker thread to a CPU (implies LockOSThread).
	PinCPU bool
}

// WorkerState is the position of a single worker in its lifecycle.
type WorkerState int32

const (
	// WorkerIdle means the worker is parked waiting for a task or for shutdown.
	WorkerIdle WorkerState = iota
	// WorkerRunning means the worker is executing exactly one task.
	WorkerRunning
	// WorkerTerminating means the worker saw a closed, empty queue and exited.
	WorkerTerminating
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerRunning:
		return "running"
	case WorkerTerminating:
		return "terminating"
	default:
		return "unknown"
	}
}
