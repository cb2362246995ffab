package buffer

import (
	"fmt"
	"strings"

	"rustai/internal/scan"
)

// InsertDocComment places comment directly above the declaration on line.
//
// Comment-only lines immediately above the declaration are removed first,
// walking upward until a blank line or a line with code. The comment is then
// inserted where the declaration now starts. comment may hold several lines;
// a trailing newline is ignored. It returns how many lines were removed, so
// the declaration moves to line - removed + the comment's line count.
func (b *Buffer) InsertDocComment(line int, comment string) (int, error) {
	if line < 0 || line >= len(b.lines) {
		return 0, fmt.Errorf("line %d out of range (0-%d)", line, len(b.lines)-1)
	}

	top := line
	for top > 0 && isCommentOnly(b.lines[top-1]) {
		top--
	}
	removed := line - top

	inserted := commentLines(comment)
	next := make([]string, 0, len(b.lines)-removed+len(inserted))
	next = append(next, b.lines[:top]...)
	next = append(next, inserted...)
	next = append(next, b.lines[line:]...)
	b.lines = next
	return removed, nil
}

// isCommentOnly reports whether text is non-blank but holds no code.
func isCommentOnly(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return strings.TrimSpace(scan.StripComments(text)) == ""
}

func commentLines(comment string) []string {
	comment = strings.TrimSuffix(strings.ReplaceAll(comment, "\r\n", "\n"), "\n")
	if comment == "" {
		return nil
	}
	return strings.Split(comment, "\n")
}
