// Package symbols extracts Rust items with tree-sitter and compares them with
// what the line scanner finds. Extraction needs CGO; without it the extractor
// is unavailable and ExtractSource returns ErrNoCGO.
package symbols

import (
	"errors"

	"rustai/internal/scan"
)

// ErrNoCGO is returned when tree-sitter extraction is unavailable.
var ErrNoCGO = errors.New("symbol extraction requires CGO (tree-sitter)")

// Item is a Rust item found by tree-sitter. Lines are zero-based to match scan.Position.
type Item struct {
	Kind    scan.Kind `json:"kind" yaml:"kind"`
	Name    string    `json:"name" yaml:"name"`
	Line    int       `json:"line" yaml:"line"`
	EndLine int       `json:"endLine" yaml:"endLine"`
	// HasBody is false for trait method signatures ending in ';'.
	HasBody bool `json:"hasBody" yaml:"hasBody"`
	// Container is the name of the directly enclosing impl block, trait or function.
	Container     string    `json:"container,omitempty" yaml:"container,omitempty"`
	ContainerKind scan.Kind `json:"containerKind,omitempty" yaml:"containerKind,omitempty"`
}

// Owner returns the impl block the line scanner should report for this item,
// or nil when the item is not directly inside a named impl block.
func (i Item) Owner() *scan.Owner {
	if !i.ContainerKind.IsImpl() || i.Container == "" {
		return nil
	}
	return &scan.Owner{Kind: i.ContainerKind, Name: i.Container}
}
