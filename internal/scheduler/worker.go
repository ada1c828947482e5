package scheduler

import (
	"context"
	"sync/atomic"

	"github.com/utkarsh5026/threadpool/internal/cpu"
	"golang.org/x/sync/errgroup"
)

// Group is a fixed set of workers draining one TaskQueue.
//
// The number of workers never changes after Start. Each worker loops
// Idle -> Running -> Idle until it observes a closed, empty queue, at which
// point it moves to Terminating and returns. Done is closed once every worker
// has returned.
type Group struct {
	queue  *TaskQueue[*Task]
	conf   *Config
	states []atomic.Int32
	g      errgroup.Group
	done   chan struct{}
}

// Start launches conf.WorkerCount workers that pull tasks from q.
// ctx is handed to every task; cancelling it does not stop the workers.
func Start(ctx context.Context, q *TaskQueue[*Task], conf *Config) *Group {
	n := max(conf.WorkerCount, 1)
	wg := &Group{
		queue:  q,
		conf:   conf,
		states: make([]atomic.Int32, n),
		done:   make(chan struct{}),
	}

	for i := range n {
		wg.g.Go(func() error {
			return wg.work(ctx, i)
		})
	}

	go func() {
		_ = wg.g.Wait()
		debugLog("all %d workers joined", n)
		close(wg.done)
	}()

	return wg
}

// work is the loop run by a single worker.
func (wg *Group) work(ctx context.Context, workerID int) error {
	if wg.conf.LockOSThread || wg.conf.PinCPU {
		release := cpu.SetupWorkerAffinity(workerID, wg.conf.PinCPU)
		defer release()
	}

	debugLog("worker %d started", workerID)
	for {
		wg.setState(workerID, WorkerIdle)

		t, ok := wg.queue.Pop()
		if !ok {
			wg.setState(workerID, WorkerTerminating)
			debugLog("worker %d terminating", workerID)
			return nil
		}

		wg.setState(workerID, WorkerRunning)
		t.Run(ctx)
	}
}

func (wg *Group) setState(workerID int, s WorkerState) {
	wg.states[workerID].Store(int32(s))
}

// Size returns the number of workers in the group.
func (wg *Group) Size() int {
	return len(wg.states)
}

// State returns the current state of the given worker.
func (wg *Group) State(workerID int) WorkerState {
	return WorkerState(wg.states[workerID].Load())
}

// Busy returns how many workers are currently running a task.
func (wg *Group) Busy() int {
	busy := 0
	for i := range wg.states {
		if wg.State(i) == WorkerRunning {
			busy++
		}
	}
	return busy
}

// Done is closed after every worker has terminated.
func (wg *Group) Done() <-chan struct{} {
	return wg.done
}
