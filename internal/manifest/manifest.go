// Package manifest reads the Cargo.toml that owns a Rust source file.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the Cargo manifest file name.
const FileName = "Cargo.toml"

// ErrNoManifest means no Cargo.toml with a [package] table was found.
var ErrNoManifest = errors.New("no Cargo.toml found")

// Package describes the crate a source file belongs to.
type Package struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	Edition     string   `json:"edition,omitempty" yaml:"edition,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Authors     []string `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// Fields may be a plain value or `{ workspace = true }`, so they decode as any.
type rawPackage struct {
	Name        string `toml:"name"`
	Version     any    `toml:"version"`
	Edition     any    `toml:"edition"`
	Description any    `toml:"description"`
	Authors     any    `toml:"authors"`
}

type rawWorkspace struct {
	Members []string    `toml:"members"`
	Package *rawPackage `toml:"package"`
}

type rawManifest struct {
	Package   *rawPackage   `toml:"package"`
	Workspace *rawWorkspace `toml:"workspace"`
}

// Manifest is the subset of Cargo.toml used to describe a crate.
type Manifest struct {
	// Path is the manifest file the data was read from.
	Path string
	// Package is nil for a virtual workspace manifest.
	Package *Package
	// Inherited lists package keys set with `key.workspace = true`.
	Inherited []string
	// IsWorkspace reports whether the manifest has a [workspace] table.
	IsWorkspace bool
	// WorkspaceMembers and WorkspacePackage come from the [workspace] table.
	WorkspaceMembers []string
	WorkspacePackage *Package
}

// Parse reads a Cargo.toml file.
func Parse(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var raw rawManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	m := &Manifest{Path: path}
	if raw.Package != nil {
		m.Package, m.Inherited = raw.Package.resolve()
	}
	if raw.Workspace != nil {
		m.IsWorkspace = true
		m.WorkspaceMembers = raw.Workspace.Members
		if raw.Workspace.Package != nil {
			m.WorkspacePackage, _ = raw.Workspace.Package.resolve()
		}
	}
	return m, nil
}

func (r *rawPackage) resolve() (*Package, []string) {
	var inherited []string
	str := func(key string, v any) string {
		switch val := v.(type) {
		case string:
			return val
		case map[string]any:
			if ws, ok := val["workspace"].(bool); ok && ws {
				inherited = append(inherited, key)
			}
		}
		return ""
	}

	pkg := &Package{
		Name:        r.Name,
		Version:     str("version", r.Version),
		Edition:     str("edition", r.Edition),
		Description: str("description", r.Description),
	}
	switch val := r.Authors.(type) {
	case []any:
		for _, a := range val {
			if s, ok := a.(string); ok {
				pkg.Authors = append(pkg.Authors, s)
			}
		}
	case map[string]any:
		if ws, ok := val["workspace"].(bool); ok && ws {
			inherited = append(inherited, "authors")
		}
	}
	return pkg, inherited
}

// Find walks up from dir and returns the path of the nearest Cargo.toml.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(abs, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoManifest
		}
		abs = parent
	}
}

// ForSource returns the package that owns the Rust file at path. Keys the
// package inherits from its workspace are filled from the nearest enclosing
// workspace manifest.
func ForSource(path string) (*Package, error) {
	manifestPath, err := Find(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	m, err := Parse(manifestPath)
	if err != nil {
		return nil, err
	}
	if m.Package == nil {
		return nil, fmt.Errorf("%s has no [package] table: %w", manifestPath, ErrNoManifest)
	}

	pkg := *m.Package
	if len(m.Inherited) == 0 {
		return &pkg, nil
	}

	ws := m
	if !ws.IsWorkspace {
		ws = findWorkspace(filepath.Dir(filepath.Dir(manifestPath)))
	}
	if ws == nil || ws.WorkspacePackage == nil {
		return &pkg, nil
	}
	for _, key := range m.Inherited {
		switch key {
		case "version":
			pkg.Version = ws.WorkspacePackage.Version
		case "edition":
			pkg.Edition = ws.WorkspacePackage.Edition
		case "description":
			pkg.Description = ws.WorkspacePackage.Description
		case "authors":
			pkg.Authors = ws.WorkspacePackage.Authors
		}
	}
	return &pkg, nil
}

// findWorkspace returns the nearest manifest with a [workspace] table at or above dir.
func findWorkspace(dir string) *Manifest {
	for {
		path, err := Find(dir)
		if err != nil {
			return nil
		}
		if m, err := Parse(path); err == nil && m.IsWorkspace {
			return m
		}
		root := filepath.Dir(path)
		parent := filepath.Dir(root)
		if parent == root {
			return nil
		}
		dir = parent
	}
}
