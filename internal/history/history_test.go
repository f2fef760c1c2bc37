package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")

	h, err := New(file, 10)
	require.NoError(t, err)
	assert.Empty(t, h.GetAll())

	h.Add("ls -la")
	h.Add("sleep 1 &")
	require.NoError(t, h.Save())

	reloaded, err := New(file, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"ls -la", "sleep 1 &"}, reloaded.GetAll())
}

func TestHistoryLimit(t *testing.T) {
	h, err := New("", 2)
	require.NoError(t, err)

	h.Add("a")
	h.Add("b")
	h.Add("c")
	assert.Equal(t, []string{"b", "c"}, h.GetAll())
}

func TestHistoryLoadTrimsToLimit(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(file, []byte("a\nb\n\nc\n"), 0600))

	h, err := New(file, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, h.GetAll())
}

func TestHistoryGetAllIsACopy(t *testing.T) {
	h, err := New("", 0)
	require.NoError(t, err)
	h.Add("pwd")

	items := h.GetAll()
	items[0] = "changed"
	assert.Equal(t, []string{"pwd"}, h.GetAll())
}
