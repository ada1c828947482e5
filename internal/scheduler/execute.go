package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/utkarsh5026/threadpool/internal/algorithms"
)

var (
	// ErrTaskPanicked wraps the value recovered from a panicking task body or hook.
	ErrTaskPanicked = errors.New("task panicked")

	// ErrAbandoned is reported for tasks that had not started when the pool
	// stopped waiting for them.
	ErrAbandoned = errors.New("task abandoned before it started")
)

// Execute runs fn on the calling worker with the pool's execution policy:
// rate limiting, the start/end hooks, panic recovery and retries.
//
// If ctx is already done the task body is not run at all and ErrAbandoned is
// returned, wrapped together with the context's error.
//
// A panic in fn or in either hook is reported as an error wrapping
// ErrTaskPanicked; it never unwinds into the worker.
func Execute[R any](ctx context.Context, conf *Config, taskID int64, fn func() (R, error)) (R, error) {
	var zero R

	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrAbandoned, err)
	}

	if conf.RateLimiter != nil {
		if err := conf.RateLimiter.Wait(ctx); err != nil {
			// The limiter does not wrap context errors, so check explicitly.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, fmt.Errorf("%w: %w", ErrAbandoned, ctxErr)
			}
			return zero, err
		}
	}

	result, err := processWithRecovery(ctx, conf, taskID, fn)

	if conf.OnTaskEnd != nil {
		if hookErr := runEndHook(conf.OnTaskEnd, taskID, err); hookErr != nil && err == nil {
			return zero, hookErr
		}
	}

	return result, err
}

// processWithRecovery runs the start hook and the task with retries, turning
// a panic in either into an error so that it never takes the worker down.
func processWithRecovery[R any](
	ctx context.Context,
	conf *Config,
	taskID int64,
	fn func() (R, error),
) (result R, err error) {
	defer recoverPanic(&err)

	if conf.BeforeTaskStart != nil {
		conf.BeforeTaskStart(taskID)
	}

	return processWithRetry(ctx, conf, taskID, fn)
}

// runEndHook calls the end hook and reports a panic in it as an error.
func runEndHook(hook func(int64, error), taskID int64, taskErr error) (err error) {
	defer recoverPanic(&err)
	hook(taskID, taskErr)
	return nil
}

// recoverPanic must be deferred directly. It stores a recovered panic, with
// the stack of the panicking goroutine, in *err.
func recoverPanic(err *error) {
	if r := recover(); r != nil {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		*err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrTaskPanicked, r, buf[:n])
	}
}

// processWithRetry calls fn up to conf.MaxAttempts times, sleeping according to
// the configured backoff between attempts. The last attempt's error is returned
// untouched so callers can match it with errors.Is.
func processWithRetry[R any](
	ctx context.Context,
	conf *Config,
	taskID int64,
	fn func() (R, error),
) (R, error) {
	maxAttempts := max(conf.MaxAttempts, 1)

	var backoff algorithms.BackoffStrategy
	if maxAttempts > 1 && conf.NewBackoff != nil {
		backoff = conf.NewBackoff()
	}

	var (
		result R
		err    error
	)
	for attempt := range maxAttempts {
		if attempt > 0 && backoff != nil {
			select {
			case <-time.After(backoff.NextDelay(attempt-1, err)):
			case <-ctx.Done():
				return result, err
			}
		}

		result, err = fn()
		if err == nil {
			return result, nil
		}

		if conf.OnRetry != nil && attempt < maxAttempts-1 {
			conf.OnRetry(taskID, attempt+1, err)
		}
	}

	return result, err
}
