package scan

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// implPattern captures everything after the impl keyword. impl blocks always
	// open a line in Rust, which keeps `-> impl Trait` return types out.
	implPattern     = regexp.MustCompile(`^\s*(?:unsafe\s+)?impl\b(.+)`)
	forPattern      = regexp.MustCompile(`\bfor\b`)
	functionPattern = regexp.MustCompile(`(?:^|\s)fn\s+(\w+)`)
	structPattern   = regexp.MustCompile(`(?:^|\s)struct\s+(\w+)`)
	traitPattern    = regexp.MustCompile(`(?:^|\s)trait\s+(\w+)`)
	macroPattern    = regexp.MustCompile(`(?:^|\s)macro_rules!\s*(\w+)`)
)

type matcher struct {
	kind  Kind
	match func(line string) bool
}

// matchers is evaluated in order and the first match wins. A line can match
// several patterns textually, so the order is part of the contract.
var matchers = []matcher{
	{StructImpl, isStructImpl},
	{TraitImpl, isTraitImpl},
	{Function, functionPattern.MatchString},
	{Struct, structPattern.MatchString},
	{Trait, traitPattern.MatchString},
	{Macro, macroPattern.MatchString},
}

// Classify returns the kind of construct declared on line, or Unknown.
func Classify(line string) Kind {
	for _, m := range matchers {
		if m.match(line) {
			return m.kind
		}
	}
	return Unknown
}

// ExtractName returns the identifier governed by the keyword of kind on line.
// It returns "" for Unknown or when no identifier can be found.
func ExtractName(line string, kind Kind) string {
	switch kind {
	case StructImpl:
		rest, ok := implRest(line)
		if !ok || forPattern.MatchString(rest) {
			return ""
		}
		return implTypeName(rest)
	case TraitImpl:
		rest, ok := implRest(line)
		if !ok {
			return ""
		}
		loc := forPattern.FindStringIndex(rest)
		if loc == nil {
			return ""
		}
		return implTypeName(rest[:loc[0]])
	case Function:
		return submatch(functionPattern, line)
	case Struct:
		return submatch(structPattern, line)
	case Trait:
		return submatch(traitPattern, line)
	case Macro:
		return submatch(macroPattern, line)
	default:
		return ""
	}
}

// Indent returns the leading whitespace of line.
func Indent(line string) string {
	end := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) })
	if end < 0 {
		return line
	}
	return line[:end]
}

func isStructImpl(line string) bool {
	rest, ok := implRest(line)
	return ok && !forPattern.MatchString(rest)
}

func isTraitImpl(line string) bool {
	rest, ok := implRest(line)
	return ok && forPattern.MatchString(rest)
}

func implRest(line string) (string, bool) {
	m := implPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func submatch(re *regexp.Regexp, line string) string {
	m := re.FindStringSubmatch(line)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// implTypeName reads the type or trait named after `impl` and its optional
// generic parameter list. Paths resolve to their last segment.
func implTypeName(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<") {
		s = strings.TrimSpace(skipGenerics(s))
	}
	s = strings.TrimPrefix(s, "!")
	s = strings.TrimPrefix(s, "dyn ")
	s = strings.TrimSpace(s)

	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r == ':' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	if end >= 0 {
		s = s[:end]
	}

	segments := strings.Split(s, "::")
	for i := len(segments) - 1; i >= 0; i-- {
		if isIdent(segments[i]) {
			return segments[i]
		}
		if segments[i] != "" {
			return ""
		}
	}
	return ""
}

// skipGenerics drops a leading balanced <...> list. The '>' of "->" does not close.
func skipGenerics(s string) string {
	depth := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			if i > 0 && s[i-1] == '-' {
				continue
			}
			depth--
			if depth == 0 {
				return s[i+1:]
			}
		}
	}
	return ""
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
