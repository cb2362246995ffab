package slogutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// RotatingFile is an append-only log file that is renamed to path.1 once a
// write would take it past maxSize. Older backups shift up to path.maxBackups
// and the oldest is removed.
type RotatingFile struct {
	mu         sync.Mutex
	path       string
	maxSize    int64
	maxBackups int
	file       *os.File
	size       int64
}

// OpenRotatingFile opens path for appending, creating parent directories.
// A maxSize of 0 never rotates. A maxBackups of 0 discards the old file on rotation.
func OpenRotatingFile(path string, maxSize int64, maxBackups int) (*RotatingFile, error) {
	rf := &RotatingFile{path: path, maxSize: maxSize, maxBackups: maxBackups}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (r *RotatingFile) open() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	r.file = f
	r.size = info.Size()
	return nil
}

// Write appends p, rotating first when p would not fit.
func (r *RotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, os.ErrClosed
	}
	if r.maxSize > 0 && r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, fmt.Errorf("rotate %s: %w", r.path, err)
		}
	}
	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Close closes the current file.
func (r *RotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func (r *RotatingFile) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}
	r.file = nil

	if r.maxBackups == 0 {
		if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return r.open()
	}

	_ = os.Remove(r.backupPath(r.maxBackups))
	for i := r.maxBackups - 1; i >= 1; i-- {
		if _, err := os.Stat(r.backupPath(i)); err == nil {
			if err := os.Rename(r.backupPath(i), r.backupPath(i+1)); err != nil {
				return err
			}
		}
	}
	if err := os.Rename(r.path, r.backupPath(1)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return r.open()
}

func (r *RotatingFile) backupPath(n int) string {
	return r.path + "." + strconv.Itoa(n)
}

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(B|KB|MB|GB)?$`)

var sizeUnits = map[string]float64{
	"":   1,
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
}

// ParseSize parses sizes such as "500KB", "10MB" or "1.5GB" (case-insensitive).
// An empty string is 0.
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return int64(value * sizeUnits[m[2]]), nil
}
