//go:build darwin

package cpu

import "runtime"

// Available returns runtime.NumCPU; macOS has no affinity masks.
func Available() int { return runtime.NumCPU() }

// SetupWorkerAffinity only locks the goroutine to an OS thread. CPU
// pinning is not available on macOS.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
