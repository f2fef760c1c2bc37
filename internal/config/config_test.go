package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SMASH_HOME_DIR", home)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.Equal(t, 1000, cfg.HistoryLimit)
	assert.Equal(t, "bash", cfg.GlobShell)
	assert.Equal(t, DefaultUSBDir, cfg.USBDevicesDir)
	assert.Equal(t, home, cfg.HomeDir)
	assert.Equal(t, filepath.Join(home, historyFileName), cfg.HistoryFile)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
prompt: mysh
history_limit: 10
home_dir: /tmp/smash-home
log_format: json
plugins:
  - /opt/a.so
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mysh", cfg.Prompt)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"/opt/a.so"}, cfg.Plugins)
	assert.Equal(t, "/tmp/smash-home/.smash_history", cfg.HistoryFile)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "prompt: fromfile\nhome_dir: /tmp\n")
	t.Setenv("SMASH_PROMPT", "fromenv")
	t.Setenv("SMASH_PLUGINS", "/a.so:/b.so")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Prompt)
	assert.Equal(t, []string{"/a.so", "/b.so"}, cfg.Plugins)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, "promt: typo\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.LogFormat = "xml"
	assert.ErrorContains(t, cfg.Validate(), "log_format")

	cfg = Default()
	cfg.HistoryLimit = -1
	assert.ErrorContains(t, cfg.Validate(), "history_limit")

	cfg = Default()
	cfg.Prompt = ""
	assert.ErrorContains(t, cfg.Validate(), "prompt")
}
