// Package logger builds slog loggers from configuration: JSON for
// production aggregation, text for development, level from the environment.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config describes the logger.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`    // Level is one of debug, info, warn, error.
	Format string `env:"LOG_FORMAT" envDefault:"json"`   // Format is json or text.
	App    string `env:"APP_NAME" envDefault:"sessiond"` // App is attached to every record.
}

// New builds a logger writing to w (os.Stderr when nil).
func New(cfg Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	log := slog.New(handler)
	if cfg.App != "" {
		log = log.With(slog.String("app", cfg.App))
	}
	return log
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
