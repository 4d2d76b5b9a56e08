// Package logging provides structured diagnostics using log/slog.
//
// Diagnostics go to stderr so that stdout carries only the import report.
// Every logger built by New carries a run_id so that the records of one
// invocation can be correlated.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// New builds a logger writing to w at the given level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// WithRun returns logger enriched with a fresh run_id and the id itself.
func WithRun(logger *slog.Logger) (*slog.Logger, string) {
	id := uuid.NewString()
	return logger.With("run_id", id), id
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Adapter exposes a slog.Logger through printf-style methods, matching the
// Logger interface the converter depends on.
type Adapter struct {
	L *slog.Logger
}

func (a Adapter) Debug(msg string, args ...interface{}) {
	a.L.Debug(fmt.Sprintf(msg, args...))
}

func (a Adapter) Info(msg string, args ...interface{}) {
	a.L.Info(fmt.Sprintf(msg, args...))
}

func (a Adapter) Warn(msg string, args ...interface{}) {
	a.L.Warn(fmt.Sprintf(msg, args...))
}

func (a Adapter) Error(msg string, args ...interface{}) {
	a.L.Error(fmt.Sprintf(msg, args...))
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
