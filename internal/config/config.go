package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	FileName        = ".smashrc.yml"
	DefaultPrompt   = "smash"
	DefaultUSBDir   = "/sys/bus/usb/devices"
	historyFileName = ".smash_history"
)

type Config struct {
	Prompt        string   `yaml:"prompt" env:"SMASH_PROMPT" validate:"required"`
	HistoryFile   string   `yaml:"history_file" env:"SMASH_HISTORY_FILE"`
	HistoryLimit  int      `yaml:"history_limit" env:"SMASH_HISTORY_LIMIT" validate:"gte=0"`
	HomeDir       string   `yaml:"home_dir" env:"SMASH_HOME_DIR"`
	GlobShell     string   `yaml:"glob_shell" env:"SMASH_GLOB_SHELL" validate:"required"`
	USBDevicesDir string   `yaml:"usb_devices_dir" env:"SMASH_USB_DEVICES_DIR" validate:"required"`
	LogFile       string   `yaml:"log_file" env:"SMASH_LOG_FILE"`
	LogFormat     string   `yaml:"log_format" env:"SMASH_LOG_FORMAT" validate:"oneof=text json"`
	Debug         bool     `yaml:"debug" env:"SMASH_DEBUG"`
	Color         bool     `yaml:"color" env:"SMASH_COLOR"`
	Plugins       []string `yaml:"plugins" env:"SMASH_PLUGINS" envSeparator:":"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Prompt:        DefaultPrompt,
		HistoryLimit:  1000,
		GlobShell:     "bash",
		USBDevicesDir: DefaultUSBDir,
		LogFormat:     "text",
	}
}

// DefaultPath is ~/.smashrc.yml, or FileName in the working directory when
// the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load reads file on top of the defaults, then applies SMASH_* environment
// overrides. A missing file is not an error.
func Load(file string) (*Config, error) {
	cfg := Default()

	if file != "" {
		data, err := os.ReadFile(file)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("error reading config: %w", err)
		default:
			if err := yaml.UnmarshalStrict(data, cfg); err != nil {
				return nil, fmt.Errorf("error parsing config %s: %w", file, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	if cfg.HomeDir == "" {
		var err error
		cfg.HomeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, err
		}
	}

	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(cfg.HomeDir, historyFileName)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate the configuration for basic semantic errors.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
