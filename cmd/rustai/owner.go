package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rustai/internal/scan"
)

var ownerCmd = &cobra.Command{
	Use:   "owner <file:line[:column]>",
	Short: "Show the impl block that owns the function at a position",
	Long: `Find the function around a position and the impl block it belongs to.
A function outside any impl block has no owner.

Example:
  rustai owner src/binary.rs:21`,
	Args: cobra.ExactArgs(1),
	RunE: runOwner,
}

func init() {
	rootCmd.AddCommand(ownerCmd)
}

// OwnerResponse is a function and its owning impl block.
type OwnerResponse struct {
	File     string      `json:"file" yaml:"file"`
	Function string      `json:"function" yaml:"function"`
	Extent   scan.Range  `json:"extent" yaml:"extent"`
	Owner    *scan.Owner `json:"owner" yaml:"owner"`
}

func runOwner(cmd *cobra.Command, args []string) error {
	loc, err := parseLocation(args[0])
	if err != nil {
		return err
	}
	buf, err := loadBuffer(loc.Path)
	if err != nil {
		return err
	}

	fn, err := newScanner(buf).CurrentFunction(loc.Cursor)
	if err != nil {
		return fmt.Errorf("function at %s: %w", loc, err)
	}
	return writeResponse(cmd.OutOrStdout(), &OwnerResponse{
		File:     displayPath(loc.Path),
		Function: fn.Name,
		Extent:   fn.Extent,
		Owner:    fn.Owner,
	})
}

func formatOwnerHuman(resp *OwnerResponse) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("fn %s  %s:%s\n", resp.Function, resp.File, humanPos(resp.Extent.Anchor)))
	if resp.Owner == nil {
		b.WriteString("  owner: none\n")
	} else {
		b.WriteString(fmt.Sprintf("  owner: %s %s\n", resp.Owner.Kind, resp.Owner.Name))
	}
	return b.String(), nil
}
