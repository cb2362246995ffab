package slogutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"rustai/internal/config"
	"rustai/internal/paths"
)

// LoggerFactory builds the command-line logger from the logging config and flags.
// Precedence for the level: CLI flag > config > info.
type LoggerFactory struct {
	root     string
	config   config.LoggingConfig
	cliLevel *slog.Level
	closers  []io.Closer
}

// NewLoggerFactory creates a factory. root is the directory holding .rustai.
func NewLoggerFactory(root string, cfg config.LoggingConfig) *LoggerFactory {
	return &LoggerFactory{root: root, config: cfg}
}

// SetCLILevel overrides the configured level.
func (f *LoggerFactory) SetCLILevel(level slog.Level) {
	f.cliLevel = &level
}

// Level returns the level for console output.
func (f *LoggerFactory) Level() slog.Level {
	if f.cliLevel != nil {
		return *f.cliLevel
	}
	return f.configLevel()
}

// fileLevel ignores --quiet so a log file keeps recording when the console is silenced.
func (f *LoggerFactory) fileLevel() slog.Level {
	if f.cliLevel != nil && *f.cliLevel != LevelSilent {
		return *f.cliLevel
	}
	return f.configLevel()
}

func (f *LoggerFactory) configLevel() slog.Level {
	if f.config.Level != "" {
		return LevelFromString(f.config.Level)
	}
	return slog.LevelInfo
}

// LogPath returns the file the logger writes to: the flag value, else the
// configured file, else "". Either may be "default".
func (f *LoggerFactory) LogPath(flagPath string) string {
	if flagPath == paths.DefaultLogFile {
		return paths.DefaultLogPath(f.root)
	}
	if flagPath != "" {
		return flagPath
	}
	return paths.ResolveLogPath(f.root, f.config.File)
}

// Logger builds a logger writing to console in the configured format and,
// when a log path is set, to that file in the line format.
func (f *LoggerFactory) Logger(console io.Writer, flagPath string) (*slog.Logger, error) {
	consoleHandler := NewHandler(console, f.config.Format, f.Level())

	path := f.LogPath(flagPath)
	if path == "" {
		return slog.New(consoleHandler), nil
	}

	w, err := f.openLogFile(path)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	f.closers = append(f.closers, w)
	fileHandler := NewLineHandler(w, &slog.HandlerOptions{Level: f.fileLevel()})
	return slog.New(NewTeeHandler(consoleHandler, fileHandler)), nil
}

func (f *LoggerFactory) openLogFile(path string) (io.WriteCloser, error) {
	size, err := ParseSize(f.config.MaxSize)
	if err != nil {
		return nil, &config.ConfigError{Field: "logging.maxSize", Message: err.Error()}
	}
	if err := paths.EnsureParentDir(path); err != nil {
		return nil, err
	}
	return OpenRotatingFile(path, size, f.config.MaxBackups)
}

// Close closes every log file opened by the factory.
func (f *LoggerFactory) Close() error {
	var errs []error
	for _, c := range f.closers {
		errs = append(errs, c.Close())
	}
	f.closers = nil
	return errors.Join(errs...)
}
