package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rustai/internal/scan"
)

var (
	locateKind string
	locateBody bool
)

var locateCmd = &cobra.Command{
	Use:   "locate <file:line[:column]>",
	Short: "Find the extent of the construct around a position",
	Long: `Find where the function, struct, trait or impl block around a position
starts and ends. With --kind auto the kind is the nearest declaration at or
above the position.

Examples:
  rustai locate src/binary.rs:21
  rustai locate src/binary.rs:21:11 --kind struct
  rustai locate src/binary.rs:21 --body --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().StringVar(&locateKind, "kind", "auto", "Construct kind (auto, function, struct, trait, traitimpl, structimpl, macro)")
	locateCmd.Flags().BoolVar(&locateBody, "body", false, "Include the construct's source text")
	rootCmd.AddCommand(locateCmd)
}

// LocateResponse is the construct found around a cursor.
type LocateResponse struct {
	File   string        `json:"file" yaml:"file"`
	Cursor scan.Position `json:"cursor" yaml:"cursor"`
	Kind   scan.Kind     `json:"kind" yaml:"kind"`
	Name   string        `json:"name,omitempty" yaml:"name,omitempty"`
	Indent string        `json:"indent" yaml:"indent"`
	Extent scan.Range    `json:"extent" yaml:"extent"`
	Body   string        `json:"body,omitempty" yaml:"body,omitempty"`
}

func runLocate(cmd *cobra.Command, args []string) error {
	loc, err := parseLocation(args[0])
	if err != nil {
		return err
	}
	buf, err := loadBuffer(loc.Path)
	if err != nil {
		return err
	}
	s := newScanner(buf)

	kind := s.CurrentScope(loc.Cursor)
	if locateKind != "auto" {
		if kind, err = scan.ParseKind(locateKind); err != nil {
			return invalidArgument(err)
		}
	}

	extent, err := s.FindExtent(loc.Cursor, kind)
	if err != nil {
		return fmt.Errorf("%s at %s: %w", kind, loc, err)
	}
	anchor := buf.LineText(extent.Anchor.Line)
	resp := &LocateResponse{
		File:   displayPath(loc.Path),
		Cursor: loc.Cursor,
		Kind:   kind,
		Name:   scan.ExtractName(scan.StripComments(anchor), kind),
		Indent: scan.Indent(anchor),
		Extent: extent,
	}
	if locateBody {
		resp.Body = buf.Text(extent)
	}
	appLogger.Info("Located construct", "kind", kind, "name", resp.Name, "start", extent.Anchor.Line, "end", extent.End.Line)
	return writeResponse(cmd.OutOrStdout(), resp)
}

func formatLocateHuman(resp *LocateResponse) (string, error) {
	var b strings.Builder
	name := resp.Name
	if name == "" {
		name = "(unnamed)"
	}
	b.WriteString(fmt.Sprintf("%s %s\n", resp.Kind, name))
	b.WriteString(fmt.Sprintf("  %s:%s - %s\n", resp.File, humanPos(resp.Extent.Anchor), humanPos(resp.Extent.End)))
	if resp.Body != "" {
		b.WriteString("\n" + resp.Body + "\n")
	}
	return b.String(), nil
}
