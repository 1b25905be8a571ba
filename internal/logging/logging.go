// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the process-wide diagnostic logger. Level and
// format come from LOG_LEVEL (debug, info, warn, error) and LOG_FORMAT
// (text, json). Per-feature status lines are not logged here; they go to
// the status writer of the pipeline.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a logger writing to w at the named level and format. Unknown
// values fall back to info and text.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// FromEnv returns a stderr logger configured from LOG_LEVEL and LOG_FORMAT.
func FromEnv() *slog.Logger {
	return New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
