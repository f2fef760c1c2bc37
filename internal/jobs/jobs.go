// Package jobs tracks background child processes for the shell session.
//
// Every observing or mutating operation except Get and Remove first reaps
// finished entries, so callers act on a table consistent with the OS.
package jobs

import (
	"sync"
	"syscall"
)

// Process is the part of a running child the registry needs.
type Process interface {
	Pid() int
	// Done is closed once the child has exited and been waited for.
	Done() <-chan struct{}
	Signal(sig syscall.Signal) error
}

// Job is a snapshot of one registry entry.
type Job struct {
	ID      int
	PID     int
	Stopped bool
	Cmd     string

	proc Process
}

// Done is closed when the job's process has exited.
func (j Job) Done() <-chan struct{} {
	return j.proc.Done()
}

// Signal delivers sig to the job's process.
func (j Job) Signal(sig syscall.Signal) error {
	return j.proc.Signal(sig)
}

func (j Job) finished() bool {
	select {
	case <-j.proc.Done():
		return true
	default:
		return false
	}
}

// KillResult is the outcome of signalling one job in KillAll.
type KillResult struct {
	Job Job
	Err error
}

// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	jobs  []*Job
	maxID int
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Reap removes every entry whose process has exited and returns them.
func (r *Registry) Reap() []Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reapLocked()
}

func (r *Registry) reapLocked() []Job {
	var reaped []Job
	kept := r.jobs[:0]
	for _, job := range r.jobs {
		if job.finished() {
			reaped = append(reaped, *job)
			continue
		}
		kept = append(kept, job)
	}
	clear(r.jobs[len(kept):])
	r.jobs = kept
	return reaped
}

// Add registers p under a new job id. Ids increase for the registry's whole
// life and freed ids are never handed out again.
func (r *Registry) Add(p Process, cmd string, stopped bool) Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reapLocked()
	r.maxID++
	job := &Job{
		ID:      r.maxID,
		PID:     p.Pid(),
		Stopped: stopped,
		Cmd:     cmd,
		proc:    p,
	}
	r.jobs = append(r.jobs, job)
	return *job
}

// List returns the live jobs in ascending id order.
func (r *Registry) List() []Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reapLocked()
	return r.snapshotLocked()
}

// Count returns the number of live jobs.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reapLocked()
	return len(r.jobs)
}

// Get looks up id without reaping.
func (r *Registry) Get(id int) (Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job := r.findLocked(id); job != nil {
		return *job, true
	}
	return Job{}, false
}

// Last returns the most recently added live job.
func (r *Registry) Last() (Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reapLocked()
	if len(r.jobs) == 0 {
		return Job{}, false
	}
	return *r.jobs[len(r.jobs)-1], true
}

// LastStopped returns the most recently added live job flagged as stopped.
func (r *Registry) LastStopped() (Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reapLocked()
	for i := len(r.jobs) - 1; i >= 0; i-- {
		if r.jobs[i].Stopped {
			return *r.jobs[i], true
		}
	}
	return Job{}, false
}

// SetStopped updates the stored stopped flag of id.
func (r *Registry) SetStopped(id int, stopped bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	job := r.findLocked(id)
	if job == nil {
		return false
	}
	job.Stopped = stopped
	return true
}

// KillAll sends sig to every live job. A failed delivery is recorded in the
// job's result and does not stop the loop.
func (r *Registry) KillAll(sig syscall.Signal) []KillResult {
	r.mu.Lock()
	r.reapLocked()
	live := r.snapshotLocked()
	r.mu.Unlock()

	results := make([]KillResult, 0, len(live))
	for _, job := range live {
		results = append(results, KillResult{Job: job, Err: job.Signal(sig)})
	}
	return results
}

// Remove deletes id without reaping. Unknown ids are ignored.
func (r *Registry) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, job := range r.jobs {
		if job.ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return
		}
	}
}

func (r *Registry) findLocked(id int) *Job {
	for _, job := range r.jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func (r *Registry) snapshotLocked() []Job {
	out := make([]Job, len(r.jobs))
	for i, job := range r.jobs {
		out[i] = *job
	}
	return out
}
