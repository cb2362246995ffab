package docgen

import "strings"

// CleanComment reformats generated text as doc comment lines at indent.
//
// The text is split on "///" markers and on newlines, and every piece is
// trimmed. A bare marker becomes an empty doc line. Empty pieces at the start
// and end are dropped. The result ends in a newline, or is empty when no text
// is left.
func CleanComment(indent, text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var pieces []string
	for _, part := range strings.Split(text, "///") {
		part = strings.TrimSpace(part)
		if part == "" {
			pieces = append(pieces, "")
			continue
		}
		for _, line := range strings.Split(part, "\n") {
			pieces = append(pieces, strings.TrimSpace(line))
		}
	}
	for len(pieces) > 0 && pieces[0] == "" {
		pieces = pieces[1:]
	}
	for len(pieces) > 0 && pieces[len(pieces)-1] == "" {
		pieces = pieces[:len(pieces)-1]
	}
	if len(pieces) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, p := range pieces {
		sb.WriteString(indent)
		if p == "" {
			sb.WriteString("///\n")
			continue
		}
		sb.WriteString("/// ")
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	return sb.String()
}
