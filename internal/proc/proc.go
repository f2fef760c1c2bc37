// Package proc launches external programs for the shell.
//
// Every child leads its own process group, so a terminal interrupt reaches the
// shell and not the child; the shell then decides whom to kill. Each started
// child gets exactly one waiter goroutine, and nothing else waits on its pid.
package proc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// Stdio is the set of streams handed to a child. A nil Stdin reads from
// /dev/null.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ExecError reports that the program could not be found or executed. It stands
// in for the failure a forked child would report before exiting non-zero.
type ExecError struct {
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execvp failed: %v", e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// IsExecError reports whether err came from a failed program lookup or exec.
func IsExecError(err error) bool {
	var execErr *ExecError
	return errors.As(err, &execErr)
}

type Process struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

// Start launches argv in a new process group.
func Start(argv []string, stdio Stdio) (*Process, error) {
	if len(argv) == 0 {
		return nil, &ExecError{Err: errors.New("empty command")}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	if err := cmd.Start(); err != nil {
		return nil, classify(err)
	}

	p := &Process{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go p.wait()
	return p, nil
}

func classify(err error) error {
	var (
		execErr *exec.Error
		pathErr *fs.PathError
	)
	if errors.As(err, &execErr) || errors.As(err, &pathErr) {
		return &ExecError{Err: err}
	}
	return fmt.Errorf("fork failed: %w", err)
}

func (p *Process) wait() {
	p.err = p.cmd.Wait()
	close(p.done)
}

func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the child exits. A non-zero exit is not an error.
func (p *Process) Wait() error {
	<-p.done
	var exitErr *exec.ExitError
	if errors.As(p.err, &exitErr) {
		return nil
	}
	return p.err
}

// ExitCode is valid once Done is closed.
func (p *Process) ExitCode() int {
	return p.cmd.ProcessState.ExitCode()
}

// WaitForeground marks the child as the foreground pid while waiting on it.
func (p *Process) WaitForeground(fg *Foreground) error {
	fg.Set(p.Pid())
	defer fg.Release(p.Pid())
	return p.Wait()
}

func (p *Process) Signal(sig syscall.Signal) error {
	return unix.Kill(p.Pid(), sig)
}

// Pipe runs left | right. Both sides are started before the parent drops its
// copies of the channel, and both are always waited for, left first. A side
// whose program cannot be executed behaves like a child that exited at once;
// its ExecError is part of the returned error.
func Pipe(left, right []string, stdio Stdio, fg *Foreground) error {
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("pipe failed: %w", err)
	}
	stdio.Stderr = Synchronized(stdio.Stderr)

	leftIO := stdio
	leftIO.Stdout = w
	lp, lerr := Start(left, leftIO)
	if lerr != nil && !IsExecError(lerr) {
		r.Close()
		w.Close()
		return lerr
	}

	rightIO := stdio
	rightIO.Stdin = r
	rp, rerr := Start(right, rightIO)
	r.Close()
	w.Close()

	var errs []error
	if lerr != nil {
		errs = append(errs, lerr)
	}
	if rerr != nil {
		errs = append(errs, rerr)
	}
	if lp != nil {
		if err := lp.WaitForeground(fg); err != nil {
			errs = append(errs, err)
		}
	}
	if rp != nil {
		if err := rp.WaitForeground(fg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
