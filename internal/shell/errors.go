package shell

import "errors"

var (
	// ErrInvalidArguments marks a wrong argument count or an unparsable argument.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrNotFound marks a job id, alias or environment variable that does not exist.
	ErrNotFound = errors.New("does not exist")
	// ErrExit is returned by quit. The session stops reading input when it sees it.
	ErrExit = errors.New("exit requested")
)

// usageError is an ErrInvalidArguments with its own wording.
type usageError string

func (e usageError) Error() string {
	return string(e)
}

func (e usageError) Is(target error) bool {
	return target == ErrInvalidArguments
}

const (
	errTooManyArguments   usageError = "too many arguments"
	errNotEnoughArguments usageError = "not enough arguments"
	errInvalidAliasFormat usageError = "invalid alias format"
)

// CommandError attaches the built-in's name to an error.
type CommandError struct {
	Cmd string
	Err error
}

func (e *CommandError) Error() string {
	if e.Cmd == "" {
		return e.Err.Error()
	}
	return e.Cmd + ": " + e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
