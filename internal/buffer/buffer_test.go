package buffer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rustai/internal/scan"
	"rustai/internal/testutil"
)

func TestLoad(t *testing.T) {
	path := testutil.CopyFixture(t, "binary.rs")

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.Path() != path {
		t.Errorf("Path = %q, want %q", b.Path(), path)
	}
	if got := b.LineText(4); got != "pub struct Binary {" {
		t.Errorf("LineText(4) = %q", got)
	}
	if got := b.LastColumn(21); got != 4 {
		t.Errorf("LastColumn(21) = %d, want 4", got)
	}
	if got := b.LineText(-1); got != "" {
		t.Errorf("LineText(-1) = %q, want empty", got)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.rs")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

func TestFromString_NewlineStyle(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unix", "fn a() {\n}\n"},
		{"windows", "fn a() {\r\n}\r\n"},
		{"no trailing newline", "fn a() {\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromString(tt.text)
			if got := b.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
			if got := b.LineText(0); got != "fn a() {" {
				t.Errorf("LineText(0) = %q", got)
			}
		})
	}
}

func TestLastColumn_Runes(t *testing.T) {
	b := FromString("let s = \"héllo\";\n\n")
	if got := b.LastColumn(0); got != 15 {
		t.Errorf("LastColumn(0) = %d, want 15", got)
	}
	if got := b.LastColumn(1); got != 0 {
		t.Errorf("LastColumn(empty) = %d, want 0", got)
	}
}

func TestText(t *testing.T) {
	b := FromString("impl A {\n    fn f() {\n        x\n    }\n}\n")

	tests := []struct {
		name string
		r    scan.Range
		want string
	}{
		{
			"function extent",
			scan.Range{Anchor: scan.Position{Line: 1}, End: scan.Position{Line: 3, Column: 4}},
			"    fn f() {\n        x\n    }",
		},
		{
			"single line",
			scan.Range{Anchor: scan.Position{Line: 0, Column: 5}, End: scan.Position{Line: 0, Column: 5}},
			"A",
		},
		{
			"column past end",
			scan.Range{Anchor: scan.Position{Line: 4}, End: scan.Position{Line: 4, Column: 99}},
			"}",
		},
		{
			"reversed",
			scan.Range{Anchor: scan.Position{Line: 3}, End: scan.Position{Line: 1}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Text(tt.r); got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuffer_IsLineSource(t *testing.T) {
	fixture := testutil.LoadFixture(t, "binary.rs")
	b := FromString(string(fixture.Source))
	s := scan.NewScanner(b)

	extent, err := s.FindExtent(scan.Position{Line: 20, Column: 10}, scan.Function)
	if err != nil {
		t.Fatalf("FindExtent failed: %v", err)
	}
	if !strings.HasPrefix(b.Text(extent), "    pub fn new(") {
		t.Errorf("Text(extent) = %q", b.Text(extent))
	}
}

func TestSave(t *testing.T) {
	path := testutil.CopyFixture(t, "bytes.rs")
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := b.InsertDocComment(0, "/// Decoding from raw bytes.\n"); err != nil {
		t.Fatalf("InsertDocComment failed: %v", err)
	}
	if err := b.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "/// Decoding from raw bytes.\npub trait FromBytes {\n") {
		t.Errorf("saved file starts with %q", string(data[:60]))
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	if err := FromString("x").Save(); err == nil {
		t.Error("Save of in-memory buffer succeeded")
	}
}
