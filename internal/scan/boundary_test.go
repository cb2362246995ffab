package scan_test

import (
	"errors"
	"testing"

	"rustai/internal/scan"
	"rustai/internal/testutil"
)

func pos(line, col int) scan.Position {
	return scan.Position{Line: line, Column: col}
}

func TestFindStart(t *testing.T) {
	fixture := testutil.LoadFixture(t, "binary.rs")
	s := scan.NewScanner(fixture.Lines)

	tests := []struct {
		name    string
		cursor  scan.Position
		kind    scan.Kind
		want    int
		wantErr error
	}{
		{"inside method body", pos(20, 10), scan.Function, 17, nil},
		{"on declaration line", pos(17, 4), scan.Function, 17, nil},
		{"second method", pos(24, 0), scan.Function, 23, nil},
		{"struct field", pos(5, 0), scan.Struct, 4, nil},
		{"trait declaration", pos(9, 3), scan.Trait, 9, nil},
		{"blocked by function", pos(20, 0), scan.Struct, 0, scan.ErrNotFound},
		{"blocked by impl", pos(15, 0), scan.Function, 0, scan.ErrNotFound},
		{"runs off top", pos(1, 0), scan.Function, 0, scan.ErrNotFound},
		{"cursor past end", pos(500, 0), scan.Function, 0, scan.ErrNotFound},
		{"unknown target", pos(20, 0), scan.Unknown, 0, scan.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindStart(tt.cursor, tt.kind)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FindStart error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindStart failed: %v", err)
			}
			if got.Line != tt.want || got.Column != 0 {
				t.Errorf("FindStart = %+v, want line %d col 0", got, tt.want)
			}
		})
	}
}

func TestFindStart_SkipsCommentedDeclaration(t *testing.T) {
	lines := scan.Lines{
		"fn real() {",
		"    // fn fake() {}",
		"    work();",
		"}",
	}
	s := scan.NewScanner(lines)

	got, err := s.FindStart(pos(2, 4), scan.Function)
	if err != nil {
		t.Fatalf("FindStart failed: %v", err)
	}
	if got.Line != 0 {
		t.Errorf("FindStart line = %d, want 0", got.Line)
	}
}

func TestFindEnd(t *testing.T) {
	fixture := testutil.LoadFixture(t, "binary.rs")
	s := scan.NewScanner(fixture.Lines)

	tests := []struct {
		name  string
		start int
		kind  scan.Kind
		want  scan.Position
	}{
		{"method with braces in body", 17, scan.Function, pos(21, 4)},
		{"struct", 4, scan.Struct, pos(7, 0)},
		{"trait", 9, scan.Trait, pos(11, 0)},
		{"format braces in string", 48, scan.Function, pos(50, 4)},
		{"outer free function", 40, scan.Function, pos(45, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindEnd(pos(tt.start, 0), tt.kind)
			if err != nil {
				t.Fatalf("FindEnd failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("FindEnd = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindEnd_MultiLineSignature(t *testing.T) {
	fixture := testutil.LoadFixture(t, "bytes.rs")
	s := scan.NewScanner(fixture.Lines)

	got, err := s.FindEnd(pos(5, 0), scan.Function)
	if err != nil {
		t.Fatalf("FindEnd failed: %v", err)
	}
	if got != pos(12, 4) {
		t.Errorf("FindEnd = %+v, want line 12 col 4", got)
	}
}

func TestFindEnd_WrongKind(t *testing.T) {
	fixture := testutil.LoadFixture(t, "binary.rs")
	s := scan.NewScanner(fixture.Lines)

	if _, err := s.FindEnd(pos(4, 0), scan.Function); !errors.Is(err, scan.ErrNotFound) {
		t.Errorf("FindEnd on struct line as Function: err = %v, want ErrNotFound", err)
	}
	if _, err := s.FindEnd(pos(18, 0), scan.Function); !errors.Is(err, scan.ErrNotFound) {
		t.Errorf("FindEnd on body line: err = %v, want ErrNotFound", err)
	}
}

func TestFindEnd_NoOpeningBrace(t *testing.T) {
	lines := scan.Lines{
		"struct Unit;",
		"",
		"const X: u8 = 1;",
	}
	s := scan.NewScanner(lines)

	if _, err := s.FindEnd(pos(0, 0), scan.Struct); !errors.Is(err, scan.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFindEnd_ScanLimit(t *testing.T) {
	lines := scan.Lines{"fn open() {"}
	for i := 0; i < 20; i++ {
		lines = append(lines, "    step();")
	}
	s := scan.NewScanner(lines, scan.WithMaxLines(5))

	_, err := s.FindEnd(pos(0, 0), scan.Function)
	if !errors.Is(err, scan.ErrScanLimitExceeded) {
		t.Errorf("err = %v, want ErrScanLimitExceeded", err)
	}
}

func TestFindStart_ScanLimit(t *testing.T) {
	lines := scan.Lines{"fn far() {"}
	for i := 0; i < 5; i++ {
		lines = append(lines, "    step();")
	}
	s := scan.NewScanner(lines, scan.WithMaxLines(3))

	_, err := s.FindStart(pos(5, 0), scan.Function)
	if !errors.Is(err, scan.ErrScanLimitExceeded) {
		t.Errorf("err = %v, want ErrScanLimitExceeded", err)
	}

	unlimited := scan.NewScanner(lines, scan.WithMaxLines(0))
	got, err := unlimited.FindStart(pos(5, 0), scan.Function)
	if err != nil {
		t.Fatalf("unlimited FindStart failed: %v", err)
	}
	if got.Line != 0 {
		t.Errorf("FindStart line = %d, want 0", got.Line)
	}
}

func TestFindExtent_StructImplMethod(t *testing.T) {
	lines := make(scan.Lines, 22)
	lines[17] = "impl Binary {"
	lines[18] = "    fn size(&self) -> usize {"
	lines[19] = "        self.size"
	lines[20] = "    }"
	lines[21] = "}"
	s := scan.NewScanner(lines)

	extent, err := s.FindExtent(pos(19, 10), scan.Function)
	if err != nil {
		t.Fatalf("FindExtent failed: %v", err)
	}
	want := scan.Range{Anchor: pos(18, 0), End: pos(20, 4)}
	if extent != want {
		t.Errorf("FindExtent = %+v, want %+v", extent, want)
	}

	owner, err := s.FindOwner(extent)
	if err != nil {
		t.Fatalf("FindOwner failed: %v", err)
	}
	if owner == nil || owner.Kind != scan.StructImpl || owner.Name != "Binary" {
		t.Errorf("FindOwner = %+v, want StructImpl Binary", owner)
	}
}

func TestFindExtent_Idempotent(t *testing.T) {
	fixture := testutil.LoadFixture(t, "binary.rs")
	s := scan.NewScanner(fixture.Lines)

	for _, cursor := range []scan.Position{pos(20, 10), pos(30, 0), pos(42, 3), pos(49, 8)} {
		first, err1 := s.FindExtent(cursor, scan.Function)
		second, err2 := s.FindExtent(cursor, scan.Function)
		if err1 != nil || err2 != nil {
			t.Fatalf("FindExtent(%+v) errors: %v, %v", cursor, err1, err2)
		}
		if first != second {
			t.Errorf("FindExtent(%+v) not idempotent: %+v vs %+v", cursor, first, second)
		}
	}
}

func TestFindExtent_BalancedFunctions(t *testing.T) {
	fixture := testutil.LoadFixture(t, "binary.rs")
	s := scan.NewScanner(fixture.Lines)

	for line := range fixture.Lines {
		extent, err := s.FindExtent(pos(line, 0), scan.Function)
		if err != nil {
			continue
		}
		anchorText := scan.StripComments(fixture.Lines[extent.Anchor.Line])
		if scan.Classify(anchorText) != scan.Function {
			t.Errorf("cursor %d: anchor line %d is not a function", line, extent.Anchor.Line)
		}
		if extent.End.Line < extent.Anchor.Line {
			t.Errorf("cursor %d: end %d before anchor %d", line, extent.End.Line, extent.Anchor.Line)
		}
		balance := 0
		for i := extent.Anchor.Line; i <= extent.End.Line; i++ {
			code := scan.StripComments(fixture.Lines[i])
			balance += scan.CountChar(code, '{') - scan.CountChar(code, '}')
		}
		if balance != 0 {
			t.Errorf("cursor %d: extent %+v has brace balance %d", line, extent, balance)
		}
	}
}

func TestCurrentScope(t *testing.T) {
	fixture := testutil.LoadFixture(t, "binary.rs")
	s := scan.NewScanner(fixture.Lines)

	tests := []struct {
		cursor int
		want   scan.Kind
	}{
		{6, scan.Struct},
		{10, scan.Function},
		{9, scan.Trait},
		{13, scan.Function},
		{16, scan.StructImpl},
		{20, scan.Function},
		{0, scan.Unknown},
	}

	for _, tt := range tests {
		if got := s.CurrentScope(pos(tt.cursor, 0)); got != tt.want {
			t.Errorf("CurrentScope(%d) = %v, want %v", tt.cursor, got, tt.want)
		}
	}
}
