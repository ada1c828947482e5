// Package pool provides a fixed-size worker pool that runs arbitrary
// functions and hands their results back through single-use futures.
//
// The primary type is ThreadPool. It owns N long-lived workers, fixed at
// construction, and one unbounded FIFO queue. Submitting never blocks and is
// never refused because the workers are busy; tasks simply wait their turn.
//
// # Basic Usage
//
//	p, err := pool.New(pool.WithWorkerCount(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	f, err := pool.Submit(p, pool.BindValue(computeSquare, 7))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := f.Get() // 49, nil
//
// # Submitting Work
//
// Any function can be submitted once its arguments are bound:
//
//   - Submit: a func() (R, error)
//   - Bind, Bind2, Bind3: bind one to three arguments of a func(...) (R, error)
//   - BindValue: bind the argument of a func(A) R that cannot fail
//   - ThreadPool.Go: a func() error run for its side effects
//   - Map: one task per slice element, results in input order
//
// # Futures
//
// A Future is written exactly once by the worker that ran the task. Wait,
// WaitContext, Done, IsReady and State observe it without consuming anything;
// Get returns the value or the task's own error, once. A second Get returns
// ErrFutureConsumed. Task errors never affect the pool or other tasks, and a
// panicking task is reported as an error wrapping ErrTaskPanicked.
//
// There is no cancellation of submitted tasks. To bound how long you wait,
// use GetWithTimeout or WaitContext; the task itself keeps running.
//
// # Shutdown
//
// Close stops accepting tasks (Submit then returns ErrPoolClosed), runs
// everything already queued and joins every worker before returning. It is
// safe to call more than once. Shutdown does the same with a time limit.
//
// # Configuration Options
//
//   - WithWorkerCount(n): number of workers (default: number of CPUs); n < 1 is an error
//   - WithRetryPolicy(maxAttempts, initialDelay): retry failing tasks
//   - WithBackoff(type, initialDelay, maxDelay), WithJitterFactor(f): retry delay curve
//   - WithRateLimit(tasksPerSecond, burst): throttle task starts
//   - WithBeforeTaskStart, WithOnTaskEnd, WithOnRetry: execution hooks
//   - WithLockOSThread(), WithCPUAffinity(): bind workers to OS threads / CPUs
//
// The same settings can be loaded from YAML with LoadConfig.
package pool
