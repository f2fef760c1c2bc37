package shell

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"smash/internal/logger"
	"smash/internal/logger/tag"
)

// setupSignalHandling installs the SIGINT handler and returns a function that
// removes it. Children run in their own process groups, so terminal
// interrupts arrive here and are forwarded as SIGKILL to the foreground child.
func (s *Shell) setupSignalHandling(ctx context.Context) func() {
	signal.Notify(s.signalChan, syscall.SIGINT)
	done := make(chan struct{})
	go s.handleSignals(ctx, done)
	return func() {
		signal.Stop(s.signalChan)
		close(done)
	}
}

func (s *Shell) handleSignals(ctx context.Context, done <-chan struct{}) {
	for {
		select {
		case <-s.signalChan:
			s.interrupt(ctx)
		case <-done:
			return
		}
	}
}

// interrupt kills the foreground child, if there is one. The pid is claimed
// atomically so a child that has just been waited for is never signalled.
func (s *Shell) interrupt(ctx context.Context) {
	pid := s.fg.Take()
	if pid == 0 {
		return
	}

	fmt.Fprintln(s.console, "smash: got ctrl-C")
	if err := s.kill(pid, syscall.SIGKILL); err != nil {
		logger.Warn(ctx, "Failed to kill foreground process", tag.PID(pid), tag.Error(err))
		return
	}
	fmt.Fprintf(s.console, "smash: process %d was killed\n", pid)
	logger.Info(ctx, "Foreground process killed", tag.PID(pid), tag.Signal(syscall.SIGKILL))
}
