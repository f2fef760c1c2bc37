package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"

	"smash/internal/alias"
	"smash/internal/config"
	"smash/internal/history"
	"smash/internal/jobs"
	"smash/internal/logger"
	"smash/internal/logger/tag"
	"smash/internal/parser"
	"smash/internal/plugin"
	"smash/internal/proc"
)

const errorPrefix = "smash error:"

type Shell struct {
	config     *config.Config
	history    *history.History
	plugins    map[string]plugin.Plugin
	jobs       *jobs.Registry
	aliases    *alias.Table
	fg         *proc.Foreground
	fs         afero.Fs
	signalChan chan os.Signal
	kill       func(pid int, sig syscall.Signal) error

	prompt  string
	lastDir string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// console is stdout as it was before any redirection.
	console     io.Writer
	interactive bool
	errPrefix   string
}

type Option func(*Shell)

// WithStdio replaces the process streams. A shell built with a reader other
// than os.Stdin never prompts. Writers that are not files are locked, since
// background children keep writing while the shell runs; stdout and stderr
// are locked separately.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(s *Shell) {
		s.stdin = stdin
		s.stdout = stdout
		s.stderr = stderr
		s.interactive = false
	}
}

// WithFs sets the filesystem read by du and usbinfo.
func WithFs(fs afero.Fs) Option {
	return func(s *Shell) {
		s.fs = fs
	}
}

// WithPlugin registers p in addition to the plugins named in the config.
func WithPlugin(p plugin.Plugin) Option {
	return func(s *Shell) {
		s.plugins[p.Name()] = p
	}
}

func New(cfg *config.Config, opts ...Option) (*Shell, error) {
	hist, err := history.New(cfg.HistoryFile, cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("error initializing history: %w", err)
	}

	s := &Shell{
		config:      cfg,
		history:     hist,
		plugins:     make(map[string]plugin.Plugin),
		jobs:        jobs.NewRegistry(),
		aliases:     alias.New(),
		fg:          &proc.Foreground{},
		fs:          afero.NewOsFs(),
		signalChan:  make(chan os.Signal, 1),
		kill:        unix.Kill,
		prompt:      cfg.Prompt,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: readline.DefaultIsTerminal(),
		errPrefix:   errorPrefix,
	}

	loaded, err := plugin.LoadAll(cfg.Plugins)
	if err != nil {
		return nil, fmt.Errorf("error loading plugins: %w", err)
	}
	for _, p := range loaded {
		s.plugins[p.Name()] = p
	}

	for _, opt := range opts {
		opt(s)
	}
	s.stdout = proc.Synchronized(s.stdout)
	s.stderr = proc.Synchronized(s.stderr)
	s.console = s.stdout

	for name := range s.plugins {
		if isBuiltin(name) {
			return nil, fmt.Errorf("plugin %q shadows a built-in command", name)
		}
	}

	if cfg.Color {
		s.errPrefix = color.New(color.FgRed, color.Bold).Sprint(errorPrefix)
	}

	return s, nil
}

// Prompt is the text shown before each line of input.
func (s *Shell) Prompt() string {
	return s.prompt + "> "
}

// Run reads and executes lines until end of input or quit.
func (s *Shell) Run(ctx context.Context) error {
	stop := s.setupSignalHandling(ctx)
	defer stop()

	reader := s.newReader(ctx)
	defer reader.Close()
	defer s.saveHistory(ctx)

	for {
		reader.SetPrompt(s.Prompt())
		line, err := reader.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("error reading input: %w", err)
		}

		line = parser.Trim(line)
		if line == "" {
			continue
		}
		s.remember(reader, line)

		if err := s.Execute(ctx, line); errors.Is(err, ErrExit) {
			return nil
		}
	}
}

// RunLine executes one line with the interrupt handler installed, so Ctrl-C
// kills the foreground child rather than the shell. quit is not an error here.
func (s *Shell) RunLine(ctx context.Context, line string) error {
	stop := s.setupSignalHandling(ctx)
	defer stop()

	if err := s.Execute(ctx, line); err != nil && !errors.Is(err, ErrExit) {
		return err
	}
	return nil
}

// Execute runs a single line and writes any failure to stderr. The only error
// it returns is ErrExit.
func (s *Shell) Execute(ctx context.Context, line string) error {
	cmd := s.Parse(line)
	if cmd == nil {
		return nil
	}

	logger.Debug(ctx, "Dispatching command", tag.Cmd(cmd.Line()), tag.Kind(cmd.Name()))

	err := s.run(ctx, cmd)
	if errors.Is(err, ErrExit) {
		return ErrExit
	}
	if err != nil {
		logger.Debug(ctx, "Command failed", tag.Cmd(cmd.Line()), tag.Error(err))
		s.report(err)
	}
	return nil
}

func (s *Shell) run(ctx context.Context, cmd Command) error {
	var err error
	switch c := cmd.(type) {
	case *External:
		return s.runExternal(ctx, c)
	case *Pipe:
		return s.runPipe(ctx, c)
	case *Redirect:
		return s.runRedirect(ctx, c)
	case *Chprompt:
		s.changePrompt(c)
	case *Pwd:
		err = s.printWorkingDirectory()
	case *ShowPid:
		s.showPid(c)
	case *Cd:
		err = s.changeDirectory(c.Args)
	case *Jobs:
		s.listJobs()
	case *Fg:
		err = s.foreground(ctx, c.Args)
	case *Quit:
		err = s.quit(ctx, c.Kill)
	case *Kill:
		err = s.signalJob(ctx, c.Args)
	case *Alias:
		err = s.defineAlias(c.Definition)
	case *Unalias:
		err = s.removeAliases(c.Names)
	case *Unsetenv:
		err = s.unsetEnv(c.Names)
	case *Sysinfo:
		err = s.sysinfo(ctx)
	case *Du:
		err = s.diskUsage(c.Args)
	case *Whoami:
		err = s.whoami()
	case *USBInfo:
		err = s.usbinfo()
	case *PluginCall:
		err = c.Plugin.Execute(s.stdout, c.Args)
	}

	if err != nil && !errors.Is(err, ErrExit) {
		return &CommandError{Cmd: cmd.Name(), Err: err}
	}
	return err
}

// report prints one line per error; joined errors are split up.
func (s *Shell) report(err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			s.report(e)
		}
		return
	}
	fmt.Fprintf(s.stderr, "%s %v\n", s.errPrefix, err)
}

func (s *Shell) saveHistory(ctx context.Context) {
	if err := s.history.Save(); err != nil {
		logger.Warn(ctx, "Failed to save history", tag.File(s.config.HistoryFile), tag.Error(err))
	}
}

func isBuiltin(name string) bool {
	return lo.Contains(builtinKeywords, name)
}
