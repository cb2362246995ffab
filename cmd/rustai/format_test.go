package main

import (
	"errors"
	"strings"
	"testing"

	rerrors "rustai/internal/errors"
	"rustai/internal/scan"
	"rustai/internal/symbols"
)

func TestFormatResponse_JSON(t *testing.T) {
	resp := &ScopeResponse{File: "src/lib.rs", Cursor: scan.Position{Line: 3}, Kind: scan.TraitImpl}

	result, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{`"file": "src/lib.rs"`, `"kind": "TraitImpl"`, `"line": 3`} {
		if !strings.Contains(result, want) {
			t.Errorf("JSON output missing %s:\n%s", want, result)
		}
	}
}

func TestFormatResponse_YAML(t *testing.T) {
	resp := &OwnerResponse{
		File:     "src/binary.rs",
		Function: "new",
		Owner:    &scan.Owner{Kind: scan.StructImpl, Name: "Binary"},
	}

	result, err := FormatResponse(resp, FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"function: new", "kind: StructImpl", "name: Binary", "anchor:"} {
		if !strings.Contains(result, want) {
			t.Errorf("YAML output missing %q:\n%s", want, result)
		}
	}
	if strings.HasSuffix(result, "\n") {
		t.Error("YAML output should not end with a newline")
	}
}

func TestFormatResponse_UnsupportedFormat(t *testing.T) {
	_, err := FormatResponse(map[string]string{"key": "value"}, "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("err = %v, want unsupported format", err)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "JSON", "human", "yaml"} {
		if _, err := parseFormat(s); err != nil {
			t.Errorf("parseFormat(%q) error = %v", s, err)
		}
	}
	if _, err := parseFormat("toml"); err == nil {
		t.Error("parseFormat(toml) should fail")
	}
}

func TestFormatHuman_UnknownType(t *testing.T) {
	resp := struct {
		Foo string `json:"foo"`
	}{Foo: "bar"}

	result, err := formatHuman(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, "Human format not available") || !strings.Contains(result, `"foo": "bar"`) {
		t.Errorf("fallback output = %s", result)
	}
}

func TestFormatHierarchyHuman(t *testing.T) {
	resp := &HierarchyResponse{
		File:   "src/binary.rs",
		Cursor: scan.Position{Line: 30},
		Nodes: []scan.Node{
			{Kind: scan.Function, Name: "into_bytes", Depth: 0, OwnerIndex: 1, Position: scan.Position{Line: 29}},
			{Kind: scan.TraitImpl, Name: "IntoBytes", Depth: -1, OwnerIndex: scan.NoOwner, Position: scan.Position{Line: 28}},
		},
	}
	resp.Ancestors = scan.Ancestors(resp.Nodes)

	result, err := formatHierarchyHuman(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"src/binary.rs:31:1", "into_bytes", "owner #1", "owner -", "  TraitImpl IntoBytes (line 29)"} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %q in:\n%s", want, result)
		}
	}

	empty, _ := formatHierarchyHuman(&HierarchyResponse{File: "a.rs"})
	if !strings.Contains(empty, "No named constructs") {
		t.Errorf("empty output = %s", empty)
	}
}

func TestFormatCheckHuman(t *testing.T) {
	resp := &CheckResponse{Files: []CheckFile{
		{File: "a.rs", Items: 3},
		{File: "b.rs", Items: 2, Mismatches: []symbols.Mismatch{
			{Line: 4, Name: "run", Field: symbols.FieldOwner, Scanner: "none", Parser: "StructImpl Task"},
		}},
	}}

	result, err := formatCheckHuman(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"ok    a.rs (3 items)", "FAIL  b.rs (2 items, 1 mismatches)", "b.rs:5 run owner: scanner none, tree-sitter StructImpl Task"} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %q in:\n%s", want, result)
		}
	}
}

func TestFormatErrorHuman(t *testing.T) {
	coded := rerrors.FromError(scan.ErrNotFound)

	result, err := FormatResponse(coded, FormatHuman)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(result, "Error [CONSTRUCT_NOT_FOUND]") || !strings.Contains(result, "construct not found") {
		t.Errorf("output = %s", result)
	}

	plain := rerrors.NewRustaiError(rerrors.InternalError, "boom", errors.New("cause"), []rerrors.FixAction{})
	result, _ = formatErrorHuman(plain)
	if strings.Contains(result, "Suggested fixes") {
		t.Errorf("no fixes expected: %s", result)
	}
}
