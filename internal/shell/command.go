package shell

import (
	"strings"

	"smash/internal/parser"
	"smash/internal/plugin"
)

// Command is one parsed command line. The set of variants is closed; run
// dispatches on the concrete type.
type Command interface {
	// Name is the built-in keyword, or the kind for non built-in variants.
	Name() string
	// Line is the command line after alias substitution.
	Line() string
	// PID is the pid of the launched child, or of the shell for commands that
	// report it. It is zero otherwise.
	PID() int

	command()
}

type base struct {
	name string
	line string
	pid  int
}

func (b *base) Name() string { return b.name }
func (b *base) Line() string { return b.line }
func (b *base) PID() int     { return b.pid }
func (b *base) command()     {}

type (
	// Chprompt sets the prompt. An empty Prompt restores the configured one.
	Chprompt struct {
		base
		Prompt string
	}
	Pwd struct {
		base
	}
	ShowPid struct {
		base
	}
	Cd struct {
		base
		Args []string
	}
	Jobs struct {
		base
	}
	Fg struct {
		base
		Args []string
	}
	Quit struct {
		base
		Kill bool
	}
	Kill struct {
		base
		Args []string
	}
	// Alias holds everything after the keyword, untokenized.
	Alias struct {
		base
		Definition string
	}
	Unalias struct {
		base
		Names []string
	}
	Unsetenv struct {
		base
		Names []string
	}
	Sysinfo struct {
		base
	}
	Du struct {
		base
		Args []string
	}
	Whoami struct {
		base
	}
	USBInfo struct {
		base
	}
	// PluginCall runs a loaded plugin. Args includes the command name.
	PluginCall struct {
		base
		Plugin plugin.Plugin
		Args   []string
	}
	// External runs a program found on PATH, or the glob shell when the line
	// holds wildcards.
	External struct {
		base
	}
	// Pipe connects the standard output of Left to the standard input of Right.
	Pipe struct {
		base
		Left  string
		Right string
	}
	// Redirect sends the standard output of Inner to Path. A line that does
	// not end in "> path" or ">> path" is not Valid and does nothing.
	Redirect struct {
		base
		Inner  string
		Path   string
		Append bool
		Valid  bool
	}
)

var builtinKeywords = []string{
	"chprompt", "pwd", "showpid", "cd", "jobs", "fg", "quit", "kill",
	"alias", "unalias", "unsetenv", "sysinfo", "du", "whoami", "usbinfo",
}

// Parse expands a leading alias and classifies the line. Pipes are recognised
// before redirections, and built-ins and plugins by their first word. Parse
// has no side effects; it returns nil for a blank line.
func (s *Shell) Parse(line string) Command {
	line = s.aliases.Rewrite(line)
	if line == "" {
		return nil
	}

	if strings.Contains(line, "|") {
		left, right, _ := parser.Cut(parser.StripBackground(line), "|")
		return &Pipe{base: base{name: "pipe", line: line}, Left: left, Right: right}
	}
	if strings.Contains(line, ">") {
		return parseRedirect(line)
	}

	first := parser.FirstWord(line)
	words := parser.Split(parser.StripBackground(line))
	var args []string
	if len(words) > 1 {
		args = words[1:]
	}
	b := base{name: first, line: line}

	switch first {
	case "chprompt":
		cmd := &Chprompt{base: b}
		if len(args) > 0 {
			cmd.Prompt = args[0]
		}
		return cmd
	case "pwd":
		return &Pwd{base: b}
	case "showpid":
		return &ShowPid{base: b}
	case "cd":
		return &Cd{base: b, Args: args}
	case "jobs":
		return &Jobs{base: b}
	case "fg":
		return &Fg{base: b, Args: args}
	case "quit":
		return &Quit{base: b, Kill: len(args) > 0 && args[0] == "kill"}
	case "kill":
		return &Kill{base: b, Args: args}
	case "alias":
		return &Alias{base: b, Definition: parser.Trim(line[len(first):])}
	case "unalias":
		return &Unalias{base: b, Names: args}
	case "unsetenv":
		return &Unsetenv{base: b, Names: args}
	case "sysinfo":
		return &Sysinfo{base: b}
	case "du":
		return &Du{base: b, Args: args}
	case "whoami":
		return &Whoami{base: b}
	case "usbinfo":
		return &USBInfo{base: b}
	}

	if p, ok := s.plugins[first]; ok {
		return &PluginCall{base: b, Plugin: p, Args: words}
	}

	b.name = "external"
	return &External{base: b}
}

func parseRedirect(line string) *Redirect {
	cmd := &Redirect{base: base{name: "redirect", line: line}}

	stripped := parser.StripBackground(line)
	words := parser.Split(stripped)
	n := len(words)
	if n < 3 {
		return cmd
	}
	switch words[n-2] {
	case ">":
	case ">>":
		cmd.Append = true
	default:
		return cmd
	}

	cmd.Valid = true
	cmd.Path = words[n-1]
	cmd.Inner, _, _ = parser.Cut(stripped, ">")
	return cmd
}
