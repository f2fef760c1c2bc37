// Package alias holds the leading-word substitutions applied to a command
// line before dispatch.
package alias

import (
	"maps"
	"slices"

	"smash/internal/parser"
)

type Entry struct {
	Name    string
	Command string
}

// Table maps alias names to replacement text. It is not safe for concurrent
// use.
type Table struct {
	commands map[string]string
}

func New() *Table {
	return &Table{commands: make(map[string]string)}
}

// Add stores name. It reports false and changes nothing if name already exists.
func (t *Table) Add(name, command string) bool {
	if t.Exists(name) {
		return false
	}
	t.commands[name] = command
	return true
}

// Remove deletes name and reports whether it was present.
func (t *Table) Remove(name string) bool {
	if !t.Exists(name) {
		return false
	}
	delete(t.commands, name)
	return true
}

func (t *Table) Exists(name string) bool {
	_, ok := t.commands[name]
	return ok
}

func (t *Table) Get(name string) (string, bool) {
	command, ok := t.commands[name]
	return command, ok
}

// List returns the aliases sorted by name.
func (t *Table) List() []Entry {
	entries := make([]Entry, 0, len(t.commands))
	for _, name := range slices.Sorted(maps.Keys(t.commands)) {
		entries = append(entries, Entry{Name: name, Command: t.commands[name]})
	}
	return entries
}

// Rewrite replaces the leading word of line with its alias text and keeps the
// rest of the line as is. Lines that do not start with an alias come back
// trimmed and otherwise unchanged.
func (t *Table) Rewrite(line string) string {
	line = parser.Trim(line)
	first := parser.FirstWord(line)
	command, ok := t.commands[first]
	if !ok {
		return line
	}
	return command + line[len(first):]
}
