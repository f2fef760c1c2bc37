package shell

import (
	"bufio"
	"context"
	"io"

	"github.com/chzyer/readline"

	"smash/internal/logger"
	"smash/internal/logger/tag"
)

type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// scanReader reads lines from a non-terminal input without prompting.
type scanReader struct {
	scanner *bufio.Scanner
}

func (r *scanReader) Readline() (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scanReader) SetPrompt(string) {}

func (r *scanReader) Close() error {
	return nil
}

// newReader returns a line editor seeded with the stored history when the
// session runs on a terminal, and a plain scanner otherwise.
func (s *Shell) newReader(ctx context.Context) lineReader {
	if !s.interactive {
		return &scanReader{scanner: bufio.NewScanner(s.stdin)}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 s.Prompt(),
		HistoryLimit:           s.config.HistoryLimit,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "quit",
	})
	if err != nil {
		logger.Warn(ctx, "Line editor unavailable, reading plain input", tag.Error(err))
		return &scanReader{scanner: bufio.NewScanner(s.stdin)}
	}
	for _, line := range s.history.GetAll() {
		_ = rl.SaveHistory(line)
	}
	return rl
}

// remember records line in the session history and in the line editor.
func (s *Shell) remember(reader lineReader, line string) {
	s.history.Add(line)
	if rl, ok := reader.(*readline.Instance); ok {
		_ = rl.SaveHistory(line)
	}
}
