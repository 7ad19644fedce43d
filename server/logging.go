package server

import (
	"io"
	"log/slog"
	"strings"

	"github.com/erraggy/oasdocs/document"
)

// NewLogger builds the server's logger from its logging configuration.
// Unknown levels fall back to info.
func NewLogger(cfg LoggingConfig, w io.Writer) document.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return document.NewSlogAdapter(slog.New(h))
}

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
