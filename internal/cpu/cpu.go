// Package cpu probes hardware parallelism and wires pool workers to OS threads.
package cpu

import "runtime"

// NumCPU returns the number of logical CPUs usable by the process.
func NumCPU() int {
	return runtime.NumCPU()
}

// lockOnly wires the calling goroutine to its current OS thread without
// touching the thread's affinity.
func lockOnly() func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
