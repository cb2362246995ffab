package scan

import "strings"

// StripComments removes a trailing // comment and the first /* ... */ span that
// opens and closes on the same line. Block comments spanning lines are not tracked.
func StripComments(line string) string {
	if i := lineCommentStart(line); i >= 0 {
		line = line[:i]
	}
	if open := strings.Index(line, "/*"); open >= 0 {
		if n := strings.Index(line[open+2:], "*/"); n >= 0 {
			line = line[:open] + line[open+2+n+2:]
		}
	}
	return line
}

// lineCommentStart returns the index of the first // not preceded by a backslash.
func lineCommentStart(line string) int {
	from := 0
	for {
		i := strings.Index(line[from:], "//")
		if i < 0 {
			return -1
		}
		i += from
		if i == 0 || line[i-1] != '\\' {
			return i
		}
		from = i + 2
	}
}

// CountChar counts occurrences of ch in line. String and char literals are not
// inspected, so braces inside them are counted as code.
func CountChar(line string, ch rune) int {
	return strings.Count(line, string(ch))
}

// braceDelta returns the open and close brace counts of line after comments are stripped.
func braceDelta(line string) (opens, closes int) {
	code := StripComments(line)
	return CountChar(code, '{'), CountChar(code, '}')
}
