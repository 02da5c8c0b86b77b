//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Available returns the number of CPUs the process may run on. It honours
// the scheduler affinity mask, so it is smaller than runtime.NumCPU inside
// cgroups or under taskset.
func Available() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	if n := set.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// allowed lists the CPU ids in the current affinity mask.
func allowed() []int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil
	}
	ids := make([]int, 0, set.Count())
	for id := 0; id < len(set)*64; id++ {
		if set.IsSet(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// pinToCore pins the current OS thread to the worker's CPU, chosen round
// robin from the allowed set. Must be called after runtime.LockOSThread().
func pinToCore(workerID int) (int, error) {
	ids := allowed()
	if len(ids) == 0 {
		return -1, unix.EINVAL
	}
	cpuID := ids[workerID%len(ids)]

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return -1, err
	}
	return cpuID, nil
}

// SetupWorkerAffinity locks the goroutine to an OS thread and pins that
// thread to one CPU. The returned function undoes the lock; the thread
// keeps its mask, so it is not handed back to the scheduler pool.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()
	if _, err := pinToCore(workerID); err != nil {
		return runtime.UnlockOSThread
	}
	// A pinned thread exits with the goroutine instead of being reused.
	return func() {}
}
