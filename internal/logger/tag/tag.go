// Package tag provides standardized attribute constructors for structured
// logging. Keys use kebab-case.
package tag

import (
	"log/slog"
	"syscall"
)

// Error creates a tag for error objects.
func Error(err any) slog.Attr {
	return slog.Any("err", err)
}

// SessionID identifies one shell process lifetime.
func SessionID(id string) slog.Attr {
	return slog.String("session-id", id)
}

// PID creates a tag for OS process ids.
func PID(pid int) slog.Attr {
	return slog.Int("pid", pid)
}

// JobID creates a tag for job registry ids.
func JobID(id int) slog.Attr {
	return slog.Int("job-id", id)
}

// Cmd creates a tag for raw command lines.
func Cmd(line string) slog.Attr {
	return slog.String("cmd", line)
}

// Kind creates a tag for the dispatched command variant.
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

// Signal creates a tag holding the signal number and its name.
func Signal(sig syscall.Signal) slog.Attr {
	return slog.Group("signal", slog.Int("num", int(sig)), slog.String("name", sig.String()))
}

// File creates a tag for file paths.
func File(path string) slog.Attr {
	return slog.String("file", path)
}

// Background marks whether a child runs in the background.
func Background(bg bool) slog.Attr {
	return slog.Bool("background", bg)
}

// ExitCode creates a tag for a child's exit status.
func ExitCode(code int) slog.Attr {
	return slog.Int("exit-code", code)
}
