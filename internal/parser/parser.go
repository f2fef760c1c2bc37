// Package parser splits command lines into words and answers questions about
// their shape: background marker, glob characters, leading word.
package parser

import "strings"

const whitespace = " \n\r\t\f\v"

// Trim removes surrounding whitespace.
func Trim(line string) string {
	return strings.Trim(line, whitespace)
}

// Split returns the whitespace-delimited words of line. Empty input yields no
// words.
func Split(line string) []string {
	return strings.Fields(line)
}

// FirstWord returns the leading word of the trimmed line.
func FirstWord(line string) string {
	line = Trim(line)
	if i := strings.IndexAny(line, whitespace); i >= 0 {
		return line[:i]
	}
	return line
}

// IsBackground reports whether the last non-space character is '&'.
func IsBackground(line string) bool {
	return strings.HasSuffix(Trim(line), "&")
}

// StripBackground removes a trailing '&' and the spaces before it.
func StripBackground(line string) string {
	line = Trim(line)
	if strings.HasSuffix(line, "&") {
		line = Trim(strings.TrimSuffix(line, "&"))
	}
	return line
}

// HasGlob reports whether line holds a wildcard that a system shell should
// expand.
func HasGlob(line string) bool {
	return strings.ContainsAny(line, "*?")
}

// Cut splits line at the first occurrence of sep and trims both sides.
func Cut(line, sep string) (before, after string, found bool) {
	before, after, found = strings.Cut(line, sep)
	return Trim(before), Trim(after), found
}
