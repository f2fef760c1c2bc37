package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"smash/internal/jobs"
	"smash/internal/logger"
	"smash/internal/logger/tag"
)

func (s *Shell) listJobs() {
	for _, job := range s.jobs.List() {
		fmt.Fprintf(s.stdout, "[%d] %s", job.ID, job.Cmd)
		if job.Stopped {
			fmt.Fprint(s.stdout, " (stopped)")
		}
		fmt.Fprintln(s.stdout)
	}
}

// foreground brings a job to the foreground and waits for it. Without an
// argument it picks the job with the highest id.
func (s *Shell) foreground(ctx context.Context, args []string) error {
	var job jobs.Job
	switch len(args) {
	case 0:
		var ok bool
		if job, ok = s.jobs.Last(); !ok {
			return errors.New("jobs list is empty")
		}
	case 1:
		id, err := parseJobID(args[0])
		if err != nil {
			return err
		}
		if job, err = s.lookupJob(ctx, id); err != nil {
			return err
		}
	default:
		return ErrInvalidArguments
	}

	fmt.Fprintf(s.stdout, "%s %d\n", job.Cmd, job.PID)

	if job.Stopped {
		if err := job.Signal(syscall.SIGCONT); err != nil {
			return fmt.Errorf("kill failed: %w", err)
		}
		s.jobs.SetStopped(job.ID, false)
	}

	logger.Info(ctx, "Job moved to foreground", tag.JobID(job.ID), tag.PID(job.PID))

	s.fg.Set(job.PID)
	defer s.fg.Release(job.PID)
	<-job.Done()
	s.jobs.Remove(job.ID)
	return nil
}

// signalJob handles kill -<signum> <job-id>.
func (s *Shell) signalJob(ctx context.Context, args []string) error {
	if len(args) != 2 || !strings.HasPrefix(args[0], "-") {
		return ErrInvalidArguments
	}
	signum, err := strconv.Atoi(args[0][1:])
	if err != nil || signum <= 0 {
		return ErrInvalidArguments
	}
	id, err := parseJobID(args[1])
	if err != nil {
		return err
	}

	job, err := s.lookupJob(ctx, id)
	if err != nil {
		return err
	}

	sig := syscall.Signal(signum)
	if err := job.Signal(sig); err != nil {
		return fmt.Errorf("kill failed: %w", err)
	}
	fmt.Fprintf(s.stdout, "signal number %d was sent to pid %d\n", signum, job.PID)
	logger.Info(ctx, "Signal sent", tag.JobID(job.ID), tag.PID(job.PID), tag.Signal(sig))

	switch sig {
	case syscall.SIGSTOP, syscall.SIGTSTP, syscall.SIGTTIN, syscall.SIGTTOU:
		s.jobs.SetStopped(job.ID, true)
	case syscall.SIGCONT:
		s.jobs.SetStopped(job.ID, false)
	}
	return nil
}

// quit ends the session. With kill it first sends SIGKILL to every job.
func (s *Shell) quit(ctx context.Context, kill bool) error {
	if kill {
		results := s.jobs.KillAll(syscall.SIGKILL)
		fmt.Fprintf(s.stdout, "smash: sending SIGKILL signal to %d jobs\n", len(results))
		for _, res := range results {
			if res.Err != nil {
				logger.Warn(ctx, "Failed to kill job", tag.JobID(res.Job.ID), tag.PID(res.Job.PID), tag.Error(res.Err))
				s.report(&CommandError{Cmd: "quit", Err: fmt.Errorf("kill failed: %w", res.Err)})
				continue
			}
			fmt.Fprintf(s.stdout, "%d: %s\n", res.Job.PID, res.Job.Cmd)
		}
	}
	return ErrExit
}

// lookupJob reaps finished jobs before resolving id.
func (s *Shell) lookupJob(ctx context.Context, id int) (jobs.Job, error) {
	for _, done := range s.jobs.Reap() {
		logger.Info(ctx, "Job finished", tag.JobID(done.ID), tag.PID(done.PID), tag.Cmd(done.Cmd))
	}
	job, ok := s.jobs.Get(id)
	if !ok {
		return jobs.Job{}, fmt.Errorf("jobs-id %d %w", id, ErrNotFound)
	}
	return job, nil
}

func parseJobID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, ErrInvalidArguments
	}
	return id, nil
}
