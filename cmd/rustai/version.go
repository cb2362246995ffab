package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rustai/internal/symbols"
	"rustai/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// VersionResponse is the output of version.
type VersionResponse struct {
	version.BuildInfo `yaml:",inline"`
	TreeSitter        bool `json:"treeSitter" yaml:"treeSitter"`
}

func runVersion(cmd *cobra.Command, args []string) error {
	return writeResponse(cmd.OutOrStdout(), &VersionResponse{
		BuildInfo:  version.Get(),
		TreeSitter: symbols.IsAvailable(),
	})
}

func formatVersionHuman(resp *VersionResponse) (string, error) {
	parser := "unavailable (built without CGO)"
	if resp.TreeSitter {
		parser = "available"
	}
	return fmt.Sprintf("rustai version %s\nCommit: %s\nBuilt: %s\nGo: %s %s\nTree-sitter: %s\n",
		resp.Version, resp.Commit, resp.BuildDate, resp.GoVersion, resp.Platform, parser), nil
}
