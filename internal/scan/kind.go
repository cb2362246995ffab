// Package scan locates Rust constructs (functions, structs, traits and their impl
// blocks) in a source file from line text alone, using brace counting instead of a parser.
package scan

import (
	"fmt"
	"strings"
)

// Kind identifies the construct declared on a line.
type Kind int

const (
	Unknown Kind = iota
	Macro
	Trait
	Struct
	Function
	TraitImpl
	StructImpl
)

var kindNames = map[Kind]string{
	Unknown:    "Unknown",
	Macro:      "Macro",
	Trait:      "Trait",
	Struct:     "Struct",
	Function:   "Function",
	TraitImpl:  "TraitImpl",
	StructImpl: "StructImpl",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by name so JSON and YAML output stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses a kind name. Matching is case-insensitive and accepts the
// Rust keyword for each construct ("fn", "struct", "trait", "impl").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unknown":
		return Unknown, nil
	case "macro", "macro_rules":
		return Macro, nil
	case "trait":
		return Trait, nil
	case "struct":
		return Struct, nil
	case "function", "fn":
		return Function, nil
	case "traitimpl", "trait-impl":
		return TraitImpl, nil
	case "structimpl", "struct-impl", "impl":
		return StructImpl, nil
	default:
		return Unknown, fmt.Errorf("unknown construct kind: %q", s)
	}
}

// IsImpl reports whether the kind is an implementation block.
func (k Kind) IsImpl() bool {
	return k == StructImpl || k == TraitImpl
}
