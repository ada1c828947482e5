//go:build !linux && !darwin && !windows

package cpu

// SetupWorkerAffinity locks the goroutine to an OS thread; pinning is not
// supported on this platform.
func SetupWorkerAffinity(workerID int, pin bool) func() {
	return lockOnly()
}
