package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"rustai/internal/buffer"
	rerrors "rustai/internal/errors"
	"rustai/internal/paths"
	"rustai/internal/scan"
)

// location is a file position given on the command line.
type location struct {
	Path   string
	Cursor scan.Position
}

// parseLocation parses file:line[:column] with 1-based numbers into a
// 0-based cursor. A missing column is 1.
func parseLocation(arg string) (location, error) {
	parts := strings.Split(arg, ":")
	var nums []int
	for len(parts) > 1 && len(nums) < 2 {
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		parts = parts[:len(parts)-1]
	}
	path := strings.Join(parts, ":")
	if path == "" || len(nums) == 0 {
		return location{}, invalidArgument(fmt.Errorf("invalid location %q: want file:line[:column]", arg))
	}

	line, col := nums[0], 1
	if len(nums) == 2 {
		col = nums[1]
	}
	if line < 1 || col < 1 {
		return location{}, invalidArgument(fmt.Errorf("invalid location %q: line and column start at 1", arg))
	}
	return location{Path: path, Cursor: scan.Position{Line: line - 1, Column: col - 1}}, nil
}

func (l location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Cursor.Line+1, l.Cursor.Column+1)
}

// invalidArgument marks err as a bad command-line value.
func invalidArgument(err error) error {
	return rerrors.NewRustaiError(rerrors.InvalidArgument, "invalid argument", err, nil)
}

// loadBuffer reads a Rust source file.
func loadBuffer(path string) (*buffer.Buffer, error) {
	buf, err := buffer.Load(path)
	if err != nil {
		return nil, err
	}
	appLogger.Debug("Loaded source", "path", path, "lines", buf.LineCount())
	return buf, nil
}

// newScanner builds a scanner over src with the configured line limit.
func newScanner(src scan.LineSource) *scan.Scanner {
	return scan.NewScanner(src, scanOptions()...)
}

func scanOptions() []scan.Option {
	opts := []scan.Option{scan.WithLogger(appLogger)}
	if appConfig != nil {
		opts = append(opts, scan.WithMaxLines(appConfig.Scan.MaxLines))
	}
	return opts
}

// displayPath shows path relative to the project root when possible.
func displayPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return paths.DisplayPath(abs, projectRoot)
}

// writeResponse formats resp with the --format flag and writes it to w.
func writeResponse(w io.Writer, resp interface{}) error {
	out, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// humanPos renders a 0-based position 1-based.
func humanPos(p scan.Position) string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}
