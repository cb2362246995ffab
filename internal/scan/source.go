package scan

import (
	"strings"
	"unicode/utf8"
)

// LineSource gives the scanner read access to document lines. Line numbers are
// zero-based. The document must not change while a scan is running.
type LineSource interface {
	// LineText returns the text of line n without its line terminator.
	LineText(n int) string
	// LastColumn returns the column of the final character of line n.
	LastColumn(n int) int
	// LineCount returns the number of lines in the document.
	LineCount() int
}

// Position is a zero-based line and column.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Range is the extent of a construct. Anchor is column 0 of the declaration
// line and End is the last column of the line holding the matching brace.
type Range struct {
	Anchor Position `json:"anchor" yaml:"anchor"`
	End    Position `json:"end" yaml:"end"`
}

// Lines is an in-memory LineSource.
type Lines []string

// SplitLines splits text on \n, dropping a trailing \r from each line.
func SplitLines(text string) Lines {
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return Lines(parts)
}

func (l Lines) LineText(n int) string {
	if n < 0 || n >= len(l) {
		return ""
	}
	return l[n]
}

func (l Lines) LastColumn(n int) int {
	return LastColumnOf(l.LineText(n))
}

func (l Lines) LineCount() int {
	return len(l)
}

// LastColumnOf returns the rune index of the last character of text, or 0 when empty.
func LastColumnOf(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return n - 1
}
