package scan_test

import (
	"errors"
	"testing"

	"rustai/internal/scan"
	"rustai/internal/testutil"
)

func TestFindOwner(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		anchor  int
		want    *scan.Owner
	}{
		{"constructor in struct impl", "binary.rs", 17, &scan.Owner{Kind: scan.StructImpl, Name: "Binary"}},
		{"second method after balanced body", "binary.rs", 23, &scan.Owner{Kind: scan.StructImpl, Name: "Binary"}},
		{"trait impl method", "binary.rs", 29, &scan.Owner{Kind: scan.TraitImpl, Name: "IntoBytes"}},
		{"blanket impl method", "binary.rs", 35, &scan.Owner{Kind: scan.TraitImpl, Name: "Convert"}},
		{"path trait impl", "binary.rs", 48, &scan.Owner{Kind: scan.TraitImpl, Name: "Display"}},
		{"multi-line signature", "bytes.rs", 5, &scan.Owner{Kind: scan.TraitImpl, Name: "FromBytes"}},
		{"nested in function", "binary.rs", 41, nil},
		{"free function", "binary.rs", 40, nil},
		{"anchor is not a function", "binary.rs", 14, nil},
		{"anchor out of range", "binary.rs", 900, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := testutil.LoadFixture(t, tt.fixture)
			s := scan.NewScanner(fixture.Lines)

			got, err := s.FindOwner(scan.Range{Anchor: pos(tt.anchor, 0)})
			if err != nil {
				t.Fatalf("FindOwner failed: %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Errorf("FindOwner = %+v, want nil", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("FindOwner = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindOwner_TopLevelFunction(t *testing.T) {
	lines := scan.Lines{"", "", "fn main() {", "    run();", "}"}
	s := scan.NewScanner(lines)

	extent, err := s.FindExtent(pos(3, 4), scan.Function)
	if err != nil {
		t.Fatalf("FindExtent failed: %v", err)
	}
	owner, err := s.FindOwner(extent)
	if err != nil {
		t.Fatalf("FindOwner failed: %v", err)
	}
	if owner != nil {
		t.Errorf("FindOwner = %+v, want nil", owner)
	}
}

func TestFindOwner_UnnamedImpl(t *testing.T) {
	lines := scan.Lines{
		"impl<'a> &'a str {",
		"    fn first(self) -> char {",
		"        self.chars().next().unwrap()",
		"    }",
		"}",
	}
	s := scan.NewScanner(lines)

	owner, err := s.FindOwner(scan.Range{Anchor: pos(1, 0)})
	if err != nil {
		t.Fatalf("FindOwner failed: %v", err)
	}
	if owner != nil {
		t.Errorf("FindOwner = %+v, want nil for impl without a nameable type", owner)
	}
}

func TestFindOwner_ScanLimit(t *testing.T) {
	lines := scan.Lines{"impl Far {", "", "", "", "    fn f() {", "    }", "}"}
	s := scan.NewScanner(lines, scan.WithMaxLines(2))

	_, err := s.FindOwner(scan.Range{Anchor: pos(4, 0)})
	if !errors.Is(err, scan.ErrScanLimitExceeded) {
		t.Errorf("err = %v, want ErrScanLimitExceeded", err)
	}
}

func TestFindOwner_TraitDefaultMethod(t *testing.T) {
	lines := scan.Lines{
		"pub trait Shape {",
		"    fn sides(&self) -> u32;",
		"    fn area(&self) -> f64 {",
		"        0.0",
		"    }",
		"}",
	}
	s := scan.NewScanner(lines)

	extent, err := s.FindExtent(pos(3, 8), scan.Function)
	if err != nil {
		t.Fatalf("FindExtent failed: %v", err)
	}
	want := scan.Range{Anchor: pos(2, 0), End: pos(4, 4)}
	if extent != want {
		t.Errorf("FindExtent = %+v, want %+v", extent, want)
	}

	owner, err := s.FindOwner(extent)
	if err != nil {
		t.Fatalf("FindOwner failed: %v", err)
	}
	if owner != nil {
		t.Errorf("FindOwner = %+v, want nil for a method declared in a trait", owner)
	}
}

func TestFindOwner_InsideStructDeclaration(t *testing.T) {
	lines := scan.Lines{
		"struct Odd {",
		"    fn stray() {",
		"    }",
		"}",
	}
	s := scan.NewScanner(lines)

	owner, err := s.FindOwner(scan.Range{Anchor: pos(1, 0)})
	if err != nil {
		t.Fatalf("FindOwner failed: %v", err)
	}
	if owner != nil {
		t.Errorf("FindOwner = %+v, want nil inside a struct declaration", owner)
	}
}
