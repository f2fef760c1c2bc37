package shell

import (
	"context"
	"fmt"
	"os"

	"smash/internal/logger"
	"smash/internal/logger/tag"
	"smash/internal/parser"
	"smash/internal/proc"
)

func (s *Shell) stdio() proc.Stdio {
	return proc.Stdio{Stdin: s.stdin, Stdout: s.stdout, Stderr: s.stderr}
}

// argv tokenizes line, or hands it to the glob shell when it holds wildcards.
func (s *Shell) argv(line string) []string {
	if parser.HasGlob(line) {
		return []string{s.config.GlobShell, "-c", line}
	}
	return parser.Split(line)
}

// runExternal starts the program and either waits for it as the foreground
// child or registers it as a job. Background children read from /dev/null.
func (s *Shell) runExternal(ctx context.Context, c *External) error {
	background := parser.IsBackground(c.line)
	line := parser.StripBackground(c.line)
	if line == "" {
		return nil
	}

	stdio := s.stdio()
	if background {
		stdio.Stdin = nil
	}

	p, err := proc.Start(s.argv(line), stdio)
	if err != nil {
		return err
	}
	c.pid = p.Pid()
	logger.Debug(ctx, "Started child", tag.PID(c.pid), tag.Cmd(c.line), tag.Background(background))

	if !background {
		if err := p.WaitForeground(s.fg); err != nil {
			return err
		}
		logger.Debug(ctx, "Child exited", tag.PID(c.pid), tag.ExitCode(p.ExitCode()))
		return nil
	}

	job := s.jobs.Add(p, c.line, false)
	logger.Info(ctx, "Job added", tag.JobID(job.ID), tag.PID(job.PID), tag.Cmd(job.Cmd))
	return nil
}

// runPipe runs both sides in the foreground. A trailing & is ignored.
func (s *Shell) runPipe(ctx context.Context, c *Pipe) error {
	logger.Debug(ctx, "Running pipeline", tag.Cmd(c.line))
	return proc.Pipe(s.argv(c.Left), s.argv(c.Right), s.stdio(), s.fg)
}

// runRedirect opens the target and runs the inner command with it as
// standard output. The previous output is restored once the inner command
// returns, however it returns.
func (s *Shell) runRedirect(ctx context.Context, c *Redirect) error {
	if !c.Valid {
		return nil
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if c.Append {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(c.Path, flags, 0666)
	if err != nil {
		return fmt.Errorf("open failed: %w", err)
	}

	saved := s.stdout
	s.stdout = f
	defer func() {
		s.stdout = saved
		if err := f.Close(); err != nil {
			logger.Warn(ctx, "Failed to close redirect target", tag.File(c.Path), tag.Error(err))
		}
	}()

	logger.Debug(ctx, "Redirecting output", tag.File(c.Path), tag.Cmd(c.Inner))

	inner := s.Parse(c.Inner)
	if inner == nil {
		return nil
	}
	return s.run(ctx, inner)
}
