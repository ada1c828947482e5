//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = ((cpuID % numCPU) + numCPU) % numCPU
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	return unix.SchedSetaffinity(0, &mask) // 0 = current thread
}

// SetupWorkerAffinity locks the calling goroutine to an OS thread and, when pin
// is set, restricts that thread to CPU workerID mod NumCPU. The returned
// function undoes the lock and must be deferred by the worker.
//
// Pinning failures are ignored: the worker still runs, just unpinned.
// A pinned thread is never unlocked, so it exits together with its worker
// instead of going back to the scheduler with a narrowed CPU mask.
func SetupWorkerAffinity(workerID int, pin bool) func() {
	release := lockOnly()
	if pin && pinToCore(workerID) == nil {
		return func() {}
	}
	return release
}
