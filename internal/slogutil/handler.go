// Package slogutil provides the slog handlers and logger constructors used by rustai.
package slogutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LineHandler writes one line per record:
// TIMESTAMP [level] Message | key=value key=value
type LineHandler struct {
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
}

// NewLineHandler creates a line handler. A nil opts logs at info and above.
func NewLineHandler(w io.Writer, opts *slog.HandlerOptions) *LineHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &LineHandler{
		w:     w,
		level: level,
		mu:    &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	buf.WriteString(r.Time.UTC().Format(time.RFC3339))
	buf.WriteString(" [")
	buf.WriteString(levelString(r.Level))
	buf.WriteString("] ")
	buf.WriteString(r.Message)

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.resolveAttr(a))
		return true
	})

	first := true
	for _, a := range attrs {
		if a.Key == "" {
			continue
		}
		if first {
			buf.WriteString(" |")
			first = false
		}
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(a.Value))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a handler that prepends attrs to every record.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(merged, h.attrs)
	for _, a := range attrs {
		merged = append(merged, h.resolveAttr(a))
	}

	clone := *h
	clone.attrs = merged
	return &clone
}

// WithGroup returns a handler that prefixes later attribute keys with name.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := make([]string, len(h.groups), len(h.groups)+1)
	copy(groups, h.groups)

	clone := *h
	clone.groups = append(groups, name)
	return &clone
}

func (h *LineHandler) resolveAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	if len(h.groups) == 0 {
		return a
	}
	return slog.Attr{Key: strings.Join(h.groups, ".") + "." + a.Key, Value: a.Value}
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "debug"
	case level < slog.LevelWarn:
		return "info"
	case level < slog.LevelError:
		return "warn"
	default:
		return "error"
	}
}

// formatValue renders a value; strings with spaces, quotes or '=' are quoted
// so a line can be split back into key=value pairs.
func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return quoteIfNeeded(v.String())
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.Key+"="+formatValue(a.Value.Resolve()))
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		if err, ok := v.Any().(error); ok {
			return quoteIfNeeded(err.Error())
		}
		return quoteIfNeeded(fmt.Sprint(v.Any()))
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
