// Package testutil provides fixture loading for tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"rustai/internal/scan"
)

// FixtureContext holds information about a loaded fixture.
type FixtureContext struct {
	// Name is the fixture file name (e.g., "binary.rs")
	Name string

	// Path is the absolute path to the fixture file
	Path string

	// Source is the raw file content
	Source []byte

	// Lines is the content split into lines
	Lines scan.Lines
}

// LoadFixture loads a Rust fixture from testdata/fixtures/rust, failing the test on error.
func LoadFixture(t *testing.T, name string) *FixtureContext {
	t.Helper()

	path := filepath.Join(getFixturesRoot(t), "rust", name)
	source, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", path, err)
	}

	return &FixtureContext{
		Name:   name,
		Path:   path,
		Source: source,
		Lines:  scan.SplitLines(string(source)),
	}
}

// CopyFixture copies a fixture into a temp directory so tests can modify it.
func CopyFixture(t *testing.T, name string) string {
	t.Helper()

	fixture := LoadFixture(t, name)
	dst := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(dst, fixture.Source, 0o644); err != nil {
		t.Fatalf("Failed to copy fixture: %v", err)
	}
	return dst
}

// getFixturesRoot returns the absolute path to testdata/fixtures/.
func getFixturesRoot(t *testing.T) string {
	t.Helper()

	// Get the directory of this source file
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get caller information")
	}

	// Navigate from internal/testutil to project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	fixturesRoot := filepath.Join(projectRoot, "testdata", "fixtures")

	if _, err := os.Stat(fixturesRoot); os.IsNotExist(err) {
		t.Fatalf("Fixtures root not found: %s", fixturesRoot)
	}

	return fixturesRoot
}

// FixturePath returns the absolute path of a file or directory under testdata/fixtures.
func FixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	return filepath.Join(append([]string{getFixturesRoot(t)}, parts...)...)
}
