// Package logger sets up structured logging using log/slog. The interactive UI
// owns the terminal, so logs go to a file or nowhere.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Setup builds a text logger writing to w at the given level and installs it
// as the default. A nil w discards everything.
func Setup(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	lvl := parseLevel(level)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
