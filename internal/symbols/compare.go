package symbols

import (
	"errors"
	"fmt"
	"sort"

	"rustai/internal/scan"
)

// Mismatch is one disagreement between the line scanner and tree-sitter.
type Mismatch struct {
	Line  int    `json:"line" yaml:"line"`
	Name  string `json:"name" yaml:"name"`
	Field string `json:"field" yaml:"field"`
	// Scanner and Parser describe what each side reported.
	Scanner string `json:"scanner" yaml:"scanner"`
	Parser  string `json:"parser" yaml:"parser"`
}

const (
	FieldName      = "name"
	FieldStart     = "start"
	FieldEnd       = "end"
	FieldOwner     = "owner"
	FieldExtent    = "extent"
	FieldUnmatched = "unmatched"
)

// Compare checks every function with a body against the line scanner: the
// extent found from its declaration line, its name and its owner. Lines the
// scanner classifies as functions with no matching tree-sitter item are
// reported as unmatched. Results are ordered by line.
func Compare(src scan.LineSource, items []Item, opts ...scan.Option) []Mismatch {
	s := scan.NewScanner(src, opts...)
	var out []Mismatch

	declared := make(map[int]bool)
	for _, item := range items {
		if item.Kind != scan.Function {
			continue
		}
		declared[item.Line] = true
		if !item.HasBody {
			continue
		}
		out = append(out, compareFunction(s, src, item)...)
	}

	for n := 0; n < src.LineCount(); n++ {
		code := scan.StripComments(src.LineText(n))
		if scan.Classify(code) != scan.Function || declared[n] {
			continue
		}
		out = append(out, Mismatch{
			Line:    n,
			Name:    scan.ExtractName(code, scan.Function),
			Field:   FieldUnmatched,
			Scanner: "function declaration",
			Parser:  "no function item",
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})
	return out
}

func compareFunction(s *scan.Scanner, src scan.LineSource, item Item) []Mismatch {
	var out []Mismatch
	add := func(field, scanner, parser string) {
		out = append(out, Mismatch{Line: item.Line, Name: item.Name, Field: field, Scanner: scanner, Parser: parser})
	}

	extent, err := s.FindExtent(scan.Position{Line: item.Line}, scan.Function)
	if err != nil {
		add(FieldExtent, describeError(err), fmt.Sprintf("lines %d-%d", item.Line, item.EndLine))
		return out
	}

	if extent.Anchor.Line != item.Line {
		add(FieldStart, fmt.Sprintf("line %d", extent.Anchor.Line), fmt.Sprintf("line %d", item.Line))
	}
	if extent.End.Line != item.EndLine {
		add(FieldEnd, fmt.Sprintf("line %d", extent.End.Line), fmt.Sprintf("line %d", item.EndLine))
	}
	name := scan.ExtractName(scan.StripComments(src.LineText(extent.Anchor.Line)), scan.Function)
	if name != item.Name {
		add(FieldName, name, item.Name)
	}

	owner, err := s.FindOwner(extent)
	if err != nil {
		add(FieldOwner, describeError(err), describeOwner(item.Owner()))
		return out
	}
	want := item.Owner()
	if !sameOwner(owner, want) {
		add(FieldOwner, describeOwner(owner), describeOwner(want))
	}
	return out
}

func sameOwner(a, b *scan.Owner) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func describeOwner(o *scan.Owner) string {
	if o == nil {
		return "none"
	}
	return fmt.Sprintf("%s %s", o.Kind, o.Name)
}

func describeError(err error) string {
	switch {
	case errors.Is(err, scan.ErrNotFound):
		return "not found"
	case errors.Is(err, scan.ErrScanLimitExceeded):
		return "scan limit exceeded"
	default:
		return err.Error()
	}
}
