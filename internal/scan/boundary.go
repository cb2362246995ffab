package scan

import "fmt"

// FindStart walks upward from the cursor line to the declaration of kind.
// Blank, comment and other non-declaration lines are skipped; a declaration of
// any other kind stops the search with ErrNotFound.
func (s *Scanner) FindStart(cursor Position, kind Kind) (Position, error) {
	if kind == Unknown {
		return Position{}, ErrNotFound
	}

	for line, examined := cursor.Line, 1; ; line, examined = line-1, examined+1 {
		if !s.inRange(line) {
			return Position{}, ErrNotFound
		}
		if s.exceeded(examined) {
			s.logger.Debug("start scan hit limit", "kind", kind, "cursor", cursor.Line, "limit", s.maxLines)
			return Position{}, fmt.Errorf("find %s start from line %d: %w", kind, cursor.Line, ErrScanLimitExceeded)
		}

		switch found := Classify(s.code(line)); found {
		case kind:
			return Position{Line: line}, nil
		case Unknown:
			continue
		default:
			s.logger.Debug("start scan blocked", "kind", kind, "blockedBy", found, "line", line)
			return Position{}, ErrNotFound
		}
	}
}

// FindEnd walks downward from a declaration of kind to the line whose closing
// brace balances it. Lines before the first opening brace are part of the
// declaration. The returned position is the last column of that line.
func (s *Scanner) FindEnd(start Position, kind Kind) (Position, error) {
	if !s.inRange(start.Line) || Classify(s.code(start.Line)) != kind {
		return Position{}, ErrNotFound
	}

	depth := 0
	started := false
	for line, examined := start.Line, 1; ; line, examined = line+1, examined+1 {
		if !s.inRange(line) {
			s.logger.Debug("end scan ran off document", "kind", kind, "start", start.Line, "started", started)
			return Position{}, ErrNotFound
		}
		if s.exceeded(examined) {
			s.logger.Debug("end scan hit limit", "kind", kind, "start", start.Line, "limit", s.maxLines)
			return Position{}, fmt.Errorf("find %s end from line %d: %w", kind, start.Line, ErrScanLimitExceeded)
		}

		opens, closes := braceDelta(s.src.LineText(line))
		depth += opens - closes
		if opens > 0 {
			started = true
		}
		if started && depth <= 0 {
			return Position{Line: line, Column: s.src.LastColumn(line)}, nil
		}
	}
}

// FindExtent finds the declaration of kind enclosing the cursor and its closing line.
func (s *Scanner) FindExtent(cursor Position, kind Kind) (Range, error) {
	start, err := s.FindStart(cursor, kind)
	if err != nil {
		return Range{}, err
	}
	end, err := s.FindEnd(start, kind)
	if err != nil {
		return Range{}, err
	}
	return Range{Anchor: start, End: end}, nil
}

// CurrentScope returns the kind of the first declaration at or above the cursor line.
func (s *Scanner) CurrentScope(cursor Position) Kind {
	for line, examined := cursor.Line, 1; s.inRange(line) && !s.exceeded(examined); line, examined = line-1, examined+1 {
		if kind := Classify(s.code(line)); kind != Unknown {
			return kind
		}
	}
	return Unknown
}
