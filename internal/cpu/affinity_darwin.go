//go:build darwin

package cpu

// SetupWorkerAffinity locks the goroutine to an OS thread.
// CPU pinning is not available on macOS, so pin is ignored.
func SetupWorkerAffinity(workerID int, pin bool) func() {
	return lockOnly()
}
