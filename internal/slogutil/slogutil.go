package slogutil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// LevelSilent is above every standard level; a handler at this level logs nothing.
const LevelSilent = slog.Level(100)

// Log output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
)

// NewLogger creates a logger writing the line format to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewLineHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewHandler returns a handler for the named format. Anything other than
// "json" uses the line format.
func NewHandler(w io.Writer, format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, FormatJSON) {
		return slog.NewJSONHandler(w, opts)
	}
	return NewLineHandler(w, opts)
}

// NewDiscardLogger creates a logger that drops everything.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LevelFromString converts debug, info, warn or error (case-insensitive) to a
// slog.Level. Unrecognized strings give info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromVerbosity maps CLI flags to a level:
// quiet suppresses everything, no -v is warn, -v is info, -vv and more is debug.
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	if quiet {
		return LevelSilent
	}
	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// TeeHandler writes each record to several handlers.
type TeeHandler struct {
	handlers []slog.Handler
}

// NewTeeHandler creates a handler that writes to all provided handlers.
func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

// Enabled reports whether any handler accepts the level.
func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes the record to every handler enabled for its level and joins their errors.
func (t *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs applies attrs to every handler.
func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup applies the group to every handler.
func (t *TeeHandler) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t *TeeHandler) each(fn func(slog.Handler) slog.Handler) *TeeHandler {
	out := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		out[i] = fn(h)
	}
	return &TeeHandler{handlers: out}
}
