package proc

import "sync/atomic"

// Foreground records the pid of the child that currently owns the terminal
// from the shell's point of view. Zero means none. All methods are safe to
// call from the signal goroutine.
type Foreground struct {
	pid atomic.Int64
}

func (f *Foreground) Set(pid int) {
	f.pid.Store(int64(pid))
}

func (f *Foreground) Get() int {
	return int(f.pid.Load())
}

// Take reads and clears the pid in one step.
func (f *Foreground) Take() int {
	return int(f.pid.Swap(0))
}

// Release clears the state only if it still holds pid.
func (f *Foreground) Release(pid int) {
	f.pid.CompareAndSwap(int64(pid), 0)
}
