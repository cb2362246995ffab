// Package buffer holds a Rust source file as editable lines. It is the
// scan.LineSource the scanner reads and the place doc comments are written to.
package buffer

import (
	"fmt"
	"os"
	"strings"

	"rustai/internal/scan"
)

// Buffer is a text document split into lines. The newline style of the
// original text is kept so saving does not rewrite line endings.
type Buffer struct {
	path    string
	lines   []string
	newline string
}

var _ scan.LineSource = (*Buffer)(nil)

// Load reads a file into a buffer.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	b := FromString(string(data))
	b.path = path
	return b, nil
}

// FromString creates a buffer that is not backed by a file.
func FromString(text string) *Buffer {
	newline := "\n"
	if strings.Contains(text, "\r\n") {
		newline = "\r\n"
	}
	return &Buffer{
		lines:   scan.SplitLines(text),
		newline: newline,
	}
}

// Path returns the file the buffer was loaded from, or "" for in-memory text.
func (b *Buffer) Path() string {
	return b.path
}

func (b *Buffer) LineText(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

func (b *Buffer) LastColumn(n int) int {
	return scan.LastColumnOf(b.LineText(n))
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Lines returns a copy of the current lines.
func (b *Buffer) Lines() scan.Lines {
	out := make(scan.Lines, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the text covered by r, including the character at r.End.
// Columns are rune indexes and are clamped to the line.
func (b *Buffer) Text(r scan.Range) string {
	if r.End.Line < r.Anchor.Line {
		return ""
	}
	var sb strings.Builder
	for n := r.Anchor.Line; n <= r.End.Line; n++ {
		if n < 0 || n >= len(b.lines) {
			continue
		}
		line := []rune(b.lines[n])
		from, to := 0, len(line)
		if n == r.Anchor.Line {
			from = clamp(r.Anchor.Column, 0, len(line))
		}
		if n == r.End.Line {
			to = clamp(r.End.Column+1, from, len(line))
		}
		sb.WriteString(string(line[from:to]))
		if n != r.End.Line {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// String returns the full document with its original newline style.
func (b *Buffer) String() string {
	return strings.Join(b.lines, b.newline)
}

// Save writes the buffer back to the file it was loaded from.
func (b *Buffer) Save() error {
	if b.path == "" {
		return fmt.Errorf("buffer has no file path")
	}
	return b.SaveAs(b.path)
}

// SaveAs writes the buffer to path atomically.
func (b *Buffer) SaveAs(path string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", tmpPath, err)
	}
	b.path = path
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
