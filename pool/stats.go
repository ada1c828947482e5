package pool

import (
	"sync/atomic"

	"github.com/utkarsh5026/threadpool/internal/scheduler"
)

// WorkerState is the lifecycle position of one worker.
type WorkerState = scheduler.WorkerState

const (
	// WorkerIdle means the worker is waiting for a task or for shutdown.
	WorkerIdle = scheduler.WorkerIdle
	// WorkerRunning means the worker is executing a task.
	WorkerRunning = scheduler.WorkerRunning
	// WorkerTerminating means the worker found the queue closed and empty and exited.
	WorkerTerminating = scheduler.WorkerTerminating
)

// Stats is a point-in-time view of a pool's task bookkeeping.
//
// Once the pool is quiescent, Submitted == Completed + Failed. While tasks are
// moving between states the fields are read one after another and may be off
// by the tasks in flight.
type Stats struct {
	Workers   int   // fixed number of workers
	Busy      int   // workers currently running a task
	Submitted int64 // tasks accepted by Submit
	Pending   int64 // accepted tasks not yet started
	Running   int64 // tasks currently executing
	Completed int64 // tasks that returned a value
	Failed    int64 // tasks that returned an error, panicked or were abandoned
}

type counters struct {
	submitted atomic.Int64
	pending   atomic.Int64
	running   atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

func (c *counters) accept() {
	c.submitted.Add(1)
	c.pending.Add(1)
}

func (c *counters) reject() {
	c.submitted.Add(-1)
	c.pending.Add(-1)
}

func (c *counters) start() {
	c.pending.Add(-1)
	c.running.Add(1)
}

func (c *counters) finish(err error) {
	if err != nil {
		c.failed.Add(1)
	} else {
		c.completed.Add(1)
	}
	c.running.Add(-1)
}

// Stats returns the current task counters.
func (p *ThreadPool) Stats() Stats {
	return Stats{
		Workers:   p.workers.Size(),
		Busy:      p.workers.Busy(),
		Submitted: p.counters.submitted.Load(),
		Pending:   p.counters.pending.Load(),
		Running:   p.counters.running.Load(),
		Completed: p.counters.completed.Load(),
		Failed:    p.counters.failed.Load(),
	}
}

// WorkerStates returns the state of every worker, indexed by worker number.
func (p *ThreadPool) WorkerStates() []WorkerState {
	states := make([]WorkerState, p.workers.Size())
	for i := range states {
		states[i] = p.workers.State(i)
	}
	return states
}
