package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rustai/internal/symbols"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Compare the line scanner with tree-sitter",
	Long: `Parse each file with tree-sitter and compare every function it finds with
what the line scanner reports: name, start and end lines, and owning impl
block. Functions the scanner sees that tree-sitter does not are reported too.

Exits 1 when any mismatch is found. Requires a build with CGO enabled.

Example:
  rustai check src/*.rs`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// CheckFile is the comparison result for one file.
type CheckFile struct {
	File       string             `json:"file" yaml:"file"`
	Items      int                `json:"items" yaml:"items"`
	Mismatches []symbols.Mismatch `json:"mismatches" yaml:"mismatches"`
}

// CheckResponse is the output of check.
type CheckResponse struct {
	Files      []CheckFile `json:"files" yaml:"files"`
	Mismatches int         `json:"mismatches" yaml:"mismatches"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if !symbols.IsAvailable() {
		return symbols.ErrNoCGO
	}
	extractor := symbols.NewExtractor()

	resp := &CheckResponse{Files: make([]CheckFile, 0, len(args))}
	for _, path := range args {
		buf, err := loadBuffer(path)
		if err != nil {
			return err
		}
		items, err := extractor.ExtractFile(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		mismatches := symbols.Compare(buf, items, scanOptions()...)
		if mismatches == nil {
			mismatches = []symbols.Mismatch{}
		}
		appLogger.Info("Checked file", "path", path, "items", len(items), "mismatches", len(mismatches))
		resp.Files = append(resp.Files, CheckFile{File: displayPath(path), Items: len(items), Mismatches: mismatches})
		resp.Mismatches += len(mismatches)
	}

	if err := writeResponse(cmd.OutOrStdout(), resp); err != nil {
		return err
	}
	if resp.Mismatches > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func formatCheckHuman(resp *CheckResponse) (string, error) {
	var b strings.Builder
	for _, f := range resp.Files {
		if len(f.Mismatches) == 0 {
			b.WriteString(fmt.Sprintf("ok    %s (%d items)\n", f.File, f.Items))
			continue
		}
		b.WriteString(fmt.Sprintf("FAIL  %s (%d items, %d mismatches)\n", f.File, f.Items, len(f.Mismatches)))
		for _, m := range f.Mismatches {
			b.WriteString(fmt.Sprintf("  %s:%d %s %s: scanner %s, tree-sitter %s\n",
				f.File, m.Line+1, m.Name, m.Field, m.Scanner, m.Parser))
		}
	}
	return b.String(), nil
}
