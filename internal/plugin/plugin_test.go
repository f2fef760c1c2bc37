package plugin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.so"))
	assert.ErrorContains(t, err, "failed to open plugin")
}

func TestLoadAllNamesFailingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.so")
	_, err := LoadAll([]string{path})
	assert.ErrorContains(t, err, path)

	plugins, err := LoadAll(nil)
	assert.NoError(t, err)
	assert.Empty(t, plugins)
}
