package common

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLogLevel maps debug|info|warn|error to a slog level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
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

// NewLogger builds the JSON logger used by the binaries and sets it as default.
func NewLogger(w io.Writer, level string) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLogLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}
