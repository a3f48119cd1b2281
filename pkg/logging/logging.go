// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup(cfg.LogLevel)             // level from configuration
//	logging.SetupWithLevel(slog.LevelDebug) // explicit level override
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup configures colored logging on stderr at the named level
// (debug, info, warn or error; anything else means info).
func Setup(level string) {
	SetupWithLevel(ParseLevel(level))
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level))
}

// New returns a tint-backed logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
			NoColor:    !isTerminal(w),
		}),
	)
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

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
