package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Empty(t, Split(" \t "))
	assert.Equal(t, []string{"ls", "-la", "/tmp"}, Split("  ls   -la\t/tmp \n"))
}

func TestFirstWord(t *testing.T) {
	for line, want := range map[string]string{
		"":             "",
		"pwd":          "pwd",
		"  cd  /tmp  ": "cd",
		"ll\t/tmp":     "ll",
	} {
		assert.Equal(t, want, FirstWord(line), "line %q", line)
	}
}

func TestBackground(t *testing.T) {
	assert.True(t, IsBackground("sleep 10 &"))
	assert.True(t, IsBackground("sleep 10&  "))
	assert.False(t, IsBackground("sleep 10"))
	assert.False(t, IsBackground(""))

	assert.Equal(t, "sleep 10", StripBackground("sleep 10 &  "))
	assert.Equal(t, "sleep 10", StripBackground("sleep 10&"))
	assert.Equal(t, "sleep 10", StripBackground("sleep 10"))
	assert.Equal(t, "", StripBackground("&"))
}

func TestHasGlob(t *testing.T) {
	assert.True(t, HasGlob("ls *.go"))
	assert.True(t, HasGlob("ls file?.txt"))
	assert.False(t, HasGlob("ls -la"))
}

func TestCut(t *testing.T) {
	before, after, found := Cut(" ls -l |  wc -l | cat ", "|")
	assert.True(t, found)
	assert.Equal(t, "ls -l", before)
	assert.Equal(t, "wc -l | cat", after)

	_, _, found = Cut("ls", "|")
	assert.False(t, found)
}
