//go:build !cgo

package symbols

import "context"

// Extractor extracts Rust items using tree-sitter.
// This is a stub implementation when CGO is not available.
type Extractor struct{}

// NewExtractor creates a new Rust item extractor.
// Returns nil when CGO is not available.
func NewExtractor() *Extractor {
	return nil
}

// ExtractFile returns ErrNoCGO when CGO is not available.
func (e *Extractor) ExtractFile(ctx context.Context, path string) ([]Item, error) {
	return nil, ErrNoCGO
}

// ExtractSource returns ErrNoCGO when CGO is not available.
func (e *Extractor) ExtractSource(ctx context.Context, source []byte) ([]Item, error) {
	return nil, ErrNoCGO
}

// IsAvailable returns whether symbol extraction is available.
func IsAvailable() bool {
	return false
}
