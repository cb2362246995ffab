// Package paths resolves the project-local directories rustai writes to and
// formats source paths for display.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"rustai/internal/config"
)

const (
	// LogsSubdir holds log files inside the config directory.
	LogsSubdir = "logs"
	// LogFileName is the default log file name.
	LogFileName = "rustai.log"
	// DefaultLogFile is the logging.file value that selects DefaultLogPath.
	DefaultLogFile = "default"
)

// ConfigDir returns <root>/.rustai.
func ConfigDir(root string) string {
	return filepath.Join(root, config.Dir)
}

// LogsDir returns <root>/.rustai/logs.
func LogsDir(root string) string {
	return filepath.Join(ConfigDir(root), LogsSubdir)
}

// DefaultLogPath returns <root>/.rustai/logs/rustai.log.
func DefaultLogPath(root string) string {
	return filepath.Join(LogsDir(root), LogFileName)
}

// ResolveLogPath makes a configured log path absolute. Relative paths are
// taken from the config directory so a checked-in config works from any cwd.
// DefaultLogFile selects DefaultLogPath.
func ResolveLogPath(root, path string) string {
	switch path {
	case "":
		return ""
	case DefaultLogFile:
		return DefaultLogPath(root)
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ConfigDir(root), path)
}

// EnsureParentDir creates the directory holding path.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// CanonicalizePath converts a path to a root-relative path with forward slashes.
// Symlinks are resolved when the target exists.
func CanonicalizePath(path string, root string) (string, error) {
	resolved, err := evalSymlinks(path)
	if err != nil {
		return "", err
	}
	rootResolved, err := evalSymlinks(root)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// IsWithin reports whether path lies inside root.
func IsWithin(path string, root string) bool {
	canonical, err := CanonicalizePath(path, root)
	if err != nil {
		return false
	}
	return canonical != ".." && !strings.HasPrefix(canonical, "../")
}

// DisplayPath returns path relative to root when it lies inside root, and the
// path unchanged otherwise.
func DisplayPath(path string, root string) string {
	if root == "" || !IsWithin(path, root) {
		return filepath.ToSlash(path)
	}
	canonical, err := CanonicalizePath(path, root)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return canonical
}

func evalSymlinks(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// The file may not exist yet
		if os.IsNotExist(err) {
			return abs, nil
		}
		return "", err
	}
	return resolved, nil
}
