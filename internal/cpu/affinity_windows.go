//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// Available returns runtime.NumCPU.
func Available() int { return runtime.NumCPU() }

// pinToCore sets the affinity mask of the current thread to a single CPU.
// Must be called after runtime.LockOSThread().
func pinToCore(workerID int) error {
	cpuID := workerID % min(runtime.NumCPU(), 64)
	handle, _, _ := getCurrentThread.Call()
	prev, _, err := setThreadAffinityMask.Call(handle, uintptr(1)<<cpuID)
	if prev == 0 {
		return err
	}
	return nil
}

// SetupWorkerAffinity locks the goroutine to an OS thread and pins it to
// one CPU.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()
	if err := pinToCore(workerID); err != nil {
		return runtime.UnlockOSThread
	}
	return func() {}
}
