package slogutil

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rustai/internal/config"
)

func TestLoggerFactory_Level(t *testing.T) {
	f := NewLoggerFactory(t.TempDir(), config.LoggingConfig{Level: "error"})
	if got := f.Level(); got != slog.LevelError {
		t.Errorf("Level = %v, want error from config", got)
	}

	f.SetCLILevel(slog.LevelDebug)
	if got := f.Level(); got != slog.LevelDebug {
		t.Errorf("Level = %v, want CLI debug", got)
	}

	empty := NewLoggerFactory(t.TempDir(), config.LoggingConfig{})
	if got := empty.Level(); got != slog.LevelInfo {
		t.Errorf("Level = %v, want info default", got)
	}
}

func TestLoggerFactory_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	f := NewLoggerFactory(t.TempDir(), config.LoggingConfig{Format: "human", Level: "info"})
	defer f.Close()

	logger, err := f.Logger(&console, "")
	if err != nil {
		t.Fatalf("Logger failed: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "[info] shown") {
		t.Errorf("console = %s", console.String())
	}
}

func TestLoggerFactory_FileFromFlag(t *testing.T) {
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "logs", "run.log")

	f := NewLoggerFactory(t.TempDir(), config.LoggingConfig{Format: "json", Level: "warn"})
	f.SetCLILevel(LevelSilent)

	logger, err := f.Logger(&console, logPath)
	if err != nil {
		t.Fatalf("Logger failed: %v", err)
	}
	logger.Warn("kept in file", "run", "r1")
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if console.Len() != 0 {
		t.Errorf("quiet console should be empty, got %s", console.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "[warn] kept in file | run=r1") {
		t.Errorf("log file = %s", data)
	}
}

func TestLoggerFactory_FileFromConfig(t *testing.T) {
	root := t.TempDir()
	cfg := config.LoggingConfig{Format: "human", Level: "info", File: "logs/doc.log", MaxSize: "1MB", MaxBackups: 2}
	f := NewLoggerFactory(root, cfg)

	want := filepath.Join(root, ".rustai", "logs", "doc.log")
	if got := f.LogPath(""); got != want {
		t.Fatalf("LogPath = %s, want %s", got, want)
	}

	logger, err := f.Logger(&bytes.Buffer{}, "")
	if err != nil {
		t.Fatalf("Logger failed: %v", err)
	}
	logger.Info("to file")
	_ = f.Close()

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %s", data)
	}
}

func TestLoggerFactory_BadMaxSize(t *testing.T) {
	f := NewLoggerFactory(t.TempDir(), config.LoggingConfig{MaxSize: "lots"})

	_, err := f.Logger(&bytes.Buffer{}, filepath.Join(t.TempDir(), "x.log"))
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "logging.maxSize" {
		t.Errorf("err = %v, want ConfigError on logging.maxSize", err)
	}
}

func TestLoggerFactory_LogPath(t *testing.T) {
	root := t.TempDir()
	f := NewLoggerFactory(root, config.LoggingConfig{File: "doc.log"})

	if got, want := f.LogPath(""), filepath.Join(root, ".rustai", "doc.log"); got != want {
		t.Errorf("LogPath(\"\") = %s, want %s", got, want)
	}
	if got := f.LogPath("/tmp/x.log"); got != "/tmp/x.log" {
		t.Errorf("LogPath(flag) = %s", got)
	}
	if got, want := f.LogPath("default"), filepath.Join(root, ".rustai", "logs", "rustai.log"); got != want {
		t.Errorf("LogPath(default) = %s, want %s", got, want)
	}
}
