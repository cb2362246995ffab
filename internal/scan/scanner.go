package scan

import (
	"errors"
	"log/slog"
)

var (
	// ErrNotFound means a search ran off the document or hit a declaration of
	// another kind before matching the target.
	ErrNotFound = errors.New("construct not found")

	// ErrUnresolvable means the construct was found but carries no usable name.
	ErrUnresolvable = errors.New("construct name unresolvable")

	// ErrScanLimitExceeded means a scan examined more lines than the scanner allows.
	ErrScanLimitExceeded = errors.New("scan limit exceeded")
)

// DefaultMaxLines bounds a single scan. Unbalanced input would otherwise walk
// the whole document.
const DefaultMaxLines = 10000

// Scanner runs boundary, ownership and hierarchy scans over a LineSource.
// It holds no state between calls.
type Scanner struct {
	src      LineSource
	maxLines int
	logger   *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxLines sets how many lines one scan may examine. Zero or less disables the limit.
func WithMaxLines(n int) Option {
	return func(s *Scanner) {
		s.maxLines = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner creates a scanner over src.
func NewScanner(src LineSource, opts ...Option) *Scanner {
	s := &Scanner{
		src:      src,
		maxLines: DefaultMaxLines,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// exceeded reports whether examining n lines breaks the scan limit.
func (s *Scanner) exceeded(n int) bool {
	return s.maxLines > 0 && n > s.maxLines
}

func (s *Scanner) inRange(line int) bool {
	return line >= 0 && line < s.src.LineCount()
}

// code returns line n with comments stripped.
func (s *Scanner) code(n int) string {
	return StripComments(s.src.LineText(n))
}
