package scan

import "fmt"

// Owner is the impl block a function is declared in.
type Owner struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Name string `json:"name" yaml:"name"`
}

// FindOwner returns the StructImpl or TraitImpl block directly enclosing the
// function whose extent is given. It returns nil, nil when no owner can be
// determined: a free function, a function nested in another function, or an
// anchor line that is not a function declaration.
func (s *Scanner) FindOwner(extent Range) (*Owner, error) {
	anchor := extent.Anchor.Line
	if !s.inRange(anchor) || Classify(s.code(anchor)) != Function {
		return nil, nil
	}

	// The function's own opening brace is already counted.
	depth := 1
	line := anchor
	for depth > 0 {
		line--
		if line < 0 {
			return nil, nil
		}
		if s.exceeded(anchor - line) {
			s.logger.Debug("owner scan hit limit", "anchor", anchor, "limit", s.maxLines)
			return nil, fmt.Errorf("find owner of line %d: %w", anchor, ErrScanLimitExceeded)
		}
		opens, closes := braceDelta(s.src.LineText(line))
		depth += closes - opens
	}

	code := s.code(line)
	kind := Classify(code)
	if !kind.IsImpl() {
		s.logger.Debug("no owner", "anchor", anchor, "enclosing", kind, "line", line)
		return nil, nil
	}
	name := ExtractName(code, kind)
	if name == "" {
		return nil, nil
	}
	return &Owner{Kind: kind, Name: name}, nil
}
