package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rustai/internal/scan"
)

var scopeCmd = &cobra.Command{
	Use:   "scope <file:line[:column]>",
	Short: "Show the kind of the nearest declaration at or above a position",
	Args:  cobra.ExactArgs(1),
	RunE:  runScope,
}

func init() {
	rootCmd.AddCommand(scopeCmd)
}

// ScopeResponse is the scope kind at a cursor; Unknown when nothing is above it.
type ScopeResponse struct {
	File   string        `json:"file" yaml:"file"`
	Cursor scan.Position `json:"cursor" yaml:"cursor"`
	Kind   scan.Kind     `json:"kind" yaml:"kind"`
}

func runScope(cmd *cobra.Command, args []string) error {
	loc, err := parseLocation(args[0])
	if err != nil {
		return err
	}
	buf, err := loadBuffer(loc.Path)
	if err != nil {
		return err
	}
	return writeResponse(cmd.OutOrStdout(), &ScopeResponse{
		File:   displayPath(loc.Path),
		Cursor: loc.Cursor,
		Kind:   newScanner(buf).CurrentScope(loc.Cursor),
	})
}

func formatScopeHuman(resp *ScopeResponse) (string, error) {
	return fmt.Sprintf("%s:%s %s\n", resp.File, humanPos(resp.Cursor), resp.Kind), nil
}
