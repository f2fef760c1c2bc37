package shell

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"

	"smash/internal/parser"
)

var aliasName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func (s *Shell) changePrompt(c *Chprompt) {
	if c.Prompt == "" {
		s.prompt = s.config.Prompt
		return
	}
	s.prompt = c.Prompt
}

func (s *Shell) printWorkingDirectory() error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getcwd failed: %w", err)
	}
	fmt.Fprintln(s.stdout, dir)
	return nil
}

func (s *Shell) showPid(c *ShowPid) {
	c.pid = os.Getpid()
	fmt.Fprintf(s.stdout, "smash pid is %d\n", c.pid)
}

// changeDirectory handles cd. "-" goes back to the directory cd last left.
func (s *Shell) changeDirectory(args []string) error {
	switch {
	case len(args) == 0:
		return nil
	case len(args) > 1:
		return errTooManyArguments
	}

	dir := args[0]
	if dir == "-" {
		if s.lastDir == "" {
			return errors.New("OLDPWD not set")
		}
		dir = s.lastDir
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getcwd failed: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir failed: %w", err)
	}
	s.lastDir = cwd
	return nil
}

// defineAlias lists the aliases when def is empty, otherwise adds name=command.
func (s *Shell) defineAlias(def string) error {
	if def == "" {
		for _, entry := range s.aliases.List() {
			fmt.Fprintf(s.stdout, "%s='%s'\n", entry.Name, entry.Command)
		}
		return nil
	}

	name, command, ok := strings.Cut(def, "=")
	if !ok || !aliasName.MatchString(name) {
		return errInvalidAliasFormat
	}
	if isBuiltin(name) || s.plugins[name] != nil || !s.aliases.Add(name, unquote(command)) {
		return fmt.Errorf("%s already exists or is a reserved command", name)
	}
	return nil
}

// unquote strips one level of shell quoting when command is a single quoted
// word, as in ll='ls -la'.
func unquote(command string) string {
	words, err := shellquote.Split(command)
	if err == nil && len(words) == 1 {
		return words[0]
	}
	return parser.Trim(command)
}

func (s *Shell) removeAliases(names []string) error {
	if len(names) == 0 {
		return errNotEnoughArguments
	}
	for _, name := range names {
		if !s.aliases.Remove(name) {
			return fmt.Errorf("%s alias %w", name, ErrNotFound)
		}
	}
	return nil
}

func (s *Shell) unsetEnv(names []string) error {
	if len(names) == 0 {
		return errNotEnoughArguments
	}
	for _, name := range names {
		if _, ok := os.LookupEnv(name); !ok {
			return fmt.Errorf("%s %w", name, ErrNotFound)
		}
		if err := os.Unsetenv(name); err != nil {
			return fmt.Errorf("unsetenv failed: %w", err)
		}
	}
	return nil
}
