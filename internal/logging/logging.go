// Package logging builds the structured loggers used by the command-line
// tool and the preview server. Library packages never log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options configures New.
type Options struct {
	Level      slog.Level
	NoColor    bool
	TimeFormat string // defaults to time.TimeOnly
}

// New returns a tint-backed slog logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	tf := opts.TimeFormat
	if tf == "" {
		tf = time.TimeOnly
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		NoColor:    opts.NoColor,
		TimeFormat: tf,
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel resolves "debug", "info", "warn" or "error" (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

// For returns l annotated with a component attribute.
func For(l *slog.Logger, component string) *slog.Logger {
	return l.With("component", component)
}
