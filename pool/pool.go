package pool

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/threadpool/internal/scheduler"
)

// ThreadPool runs submitted functions on a fixed set of long-lived workers.
//
// Tasks wait in an unbounded FIFO queue; Submit never blocks and never refuses
// work because every worker is busy. Workers take tasks in submission order,
// but tasks finish in whatever order they happen to complete.
//
// A pool must be released with Close (or Shutdown), usually deferred right
// after New. Close lets the queue drain and joins every worker.
type ThreadPool struct {
	conf    *scheduler.Config
	queue   *scheduler.TaskQueue[*scheduler.Task]
	workers *scheduler.Group

	// Cancels the context handed to task executions. Called once the workers
	// are gone, or early when Shutdown gives up waiting.
	cancel context.CancelFunc

	taskIDCounter atomic.Int64
	counters      counters
}

// New creates a pool and starts its workers.
//
// Default configuration:
//   - workers: one per logical CPU (DefaultWorkerCount if unknown)
//   - attempts: 1 (no retries)
//   - no rate limit, no hooks, workers not locked to OS threads
//
// Example:
//
//	p, err := pool.New(pool.WithWorkerCount(4))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
func New(opts ...Option) (*ThreadPool, error) {
	conf, err := createConfig(opts...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &ThreadPool{
		conf:   conf,
		queue:  scheduler.NewTaskQueue[*scheduler.Task](),
		cancel: cancel,
	}
	p.workers = scheduler.Start(ctx, p.queue, conf)

	// Workers only reference the queue, so a pool dropped without Close still
	// lets its workers drain and exit once it is collected.
	runtime.AddCleanup(p, func(q *scheduler.TaskQueue[*scheduler.Task]) {
		q.Close()
	}, p.queue)

	debugLog("pool started with %d workers", conf.WorkerCount)
	return p, nil
}

// Workers returns the number of workers, fixed at construction.
func (p *ThreadPool) Workers() int {
	return p.workers.Size()
}

// Close stops accepting tasks, waits until every queued task has run and joins
// all workers. Submissions that lose the race with Close fail with
// ErrPoolClosed; nothing that was accepted is dropped.
//
// Close may be called any number of times and from several goroutines; every
// call returns only after the workers are gone. It must not be called from
// inside a task running on the same pool, since that task's worker could then
// never be joined.
func (p *ThreadPool) Close() error {
	p.beginShutdown()
	<-p.workers.Done()
	p.cancel()
	return nil
}

// Shutdown is Close with a bound on how long to wait for the queue to drain.
// A timeout of zero or less waits forever.
//
// On timeout it returns ErrShutdownTimeout. Tasks already running are left to
// finish in the background; tasks that have not started yet are not run and
// their futures fail with ErrPoolAbandoned.
//
// Example:
//
//	if err := p.Shutdown(5 * time.Second); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
func (p *ThreadPool) Shutdown(timeout time.Duration) error {
	p.beginShutdown()

	if err := waitUntil(p.workers.Done(), timeout); err != nil {
		debugLog("shutdown timed out after %v, abandoning %d queued tasks", timeout, p.queue.Len())
		p.cancel()
		return err
	}

	p.cancel()
	return nil
}

// beginShutdown closes the queue. Only the first call has an effect.
func (p *ThreadPool) beginShutdown() {
	if p.queue.Close() {
		debugLog("pool closing, %d tasks left to drain", p.queue.Len())
	}
}

// Closed reports whether Close or Shutdown has been called.
func (p *ThreadPool) Closed() bool {
	return p.queue.Closed()
}

// enqueue wraps a single execution of fn into a queued task resolving f.
func enqueue[R any](p *ThreadPool, fn func() (R, error)) (*Future[R], error) {
	id := p.taskIDCounter.Add(1)
	f := newFuture[R](id)

	task := &scheduler.Task{
		ID: id,
		Run: func(ctx context.Context) {
			p.counters.start()
			value, err := scheduler.Execute(ctx, p.conf, id, fn)
			p.counters.finish(err)
			f.resolve(value, err)
		},
	}

	p.counters.accept()
	if err := p.queue.Push(task); err != nil {
		p.counters.reject()
		return nil, ErrPoolClosed
	}

	return f, nil
}

// waitUntil blocks until either the done channel is closed or the timeout is reached.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-d:
		return nil
	case <-timer.C:
		return ErrShutdownTimeout
	}
}
