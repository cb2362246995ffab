// Package version holds build-time version information for rustai.
package version

import "runtime"

// Overridden at build time:
// go build -ldflags "-X rustai/internal/version.Version=0.4.0 -X rustai/internal/version.Commit=abc123"
var (
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// BuildInfo is the version report printed by `rustai version`.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the current build information.
func Get() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info returns the version with a short commit when one is known.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns the multi-line version text.
func Full() string {
	return "rustai version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate
}
