package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"smash/internal/config"
	"smash/internal/logger"
	"smash/internal/logger/tag"
	"smash/internal/shell"
)

var (
	cfgFile string
	debug   bool
	quiet   bool
	command string

	rootCmd = &cobra.Command{
		Use:   "smash",
		Short: "A small job-control shell",
		Long: `smash reads command lines and runs them as built-ins or external programs.

It keeps a table of background jobs, supports a single pipe and output
redirection per line, and kills the foreground child on Ctrl-C.
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "smash: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/"+config.FileName+")")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log at debug level and mirror logs to stderr")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "never mirror logs to stderr")
	rootCmd.Flags().StringVarP(&command, "command", "c", "", "run one command line and exit")
}

func run(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if debug {
		cfg.Debug = true
	}

	opts := []logger.Option{logger.WithFormat(cfg.LogFormat)}
	if cfg.Debug {
		opts = append(opts, logger.WithDebug())
	}
	if quiet {
		opts = append(opts, logger.WithQuiet())
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		defer f.Close()
		opts = append(opts, logger.WithWriter(f))
	}

	log := logger.New(opts...).With(tag.SessionID(uuid.NewString()))
	ctx := logger.WithLogger(cmd.Context(), log)

	s, err := shell.New(cfg)
	if err != nil {
		return fmt.Errorf("error initializing shell: %w", err)
	}
	logger.Info(ctx, "Session started", tag.PID(os.Getpid()), tag.File(path))

	if command != "" {
		return s.RunLine(ctx, command)
	}
	return s.Run(ctx)
}
