package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rustai/internal/scan"
)

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy <file:line[:column]>",
	Short: "List the named constructs above a position",
	Long: `Walk upward from a position and list every named construct, nearest
first, with its brace depth relative to the position and the construct that
encloses it. The chain of enclosing constructs is printed as ancestors.

Example:
  rustai hierarchy src/binary.rs:31`,
	Args: cobra.ExactArgs(1),
	RunE: runHierarchy,
}

func init() {
	rootCmd.AddCommand(hierarchyCmd)
}

// HierarchyResponse holds the nodes found above a cursor.
type HierarchyResponse struct {
	File      string        `json:"file" yaml:"file"`
	Cursor    scan.Position `json:"cursor" yaml:"cursor"`
	Nodes     []scan.Node   `json:"nodes" yaml:"nodes"`
	Ancestors []scan.Node   `json:"ancestors" yaml:"ancestors"`
}

func runHierarchy(cmd *cobra.Command, args []string) error {
	loc, err := parseLocation(args[0])
	if err != nil {
		return err
	}
	buf, err := loadBuffer(loc.Path)
	if err != nil {
		return err
	}

	nodes, err := newScanner(buf).Hierarchy(loc.Cursor)
	if err != nil {
		return fmt.Errorf("hierarchy at %s: %w", loc, err)
	}
	if nodes == nil {
		nodes = []scan.Node{}
	}
	ancestors := scan.Ancestors(nodes)
	if ancestors == nil {
		ancestors = []scan.Node{}
	}
	return writeResponse(cmd.OutOrStdout(), &HierarchyResponse{
		File:      displayPath(loc.Path),
		Cursor:    loc.Cursor,
		Nodes:     nodes,
		Ancestors: ancestors,
	})
}

func formatHierarchyHuman(resp *HierarchyResponse) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s:%s\n", resp.File, humanPos(resp.Cursor)))
	if len(resp.Nodes) == 0 {
		b.WriteString("No named constructs above this position.\n")
		return b.String(), nil
	}

	b.WriteString("\nNodes (nearest first):\n")
	for i, n := range resp.Nodes {
		owner := "-"
		if n.OwnerIndex != scan.NoOwner {
			owner = fmt.Sprintf("#%d", n.OwnerIndex)
		}
		b.WriteString(fmt.Sprintf("  #%-3d %5d  %-10s %-20s depth %-3d owner %s\n",
			i, n.Position.Line+1, n.Kind, n.Name, n.Depth, owner))
	}

	b.WriteString("\nAncestors:\n")
	for i, n := range resp.Ancestors {
		b.WriteString(fmt.Sprintf("  %s%s %s (line %d)\n", strings.Repeat("  ", i), n.Kind, n.Name, n.Position.Line+1))
	}
	return b.String(), nil
}
