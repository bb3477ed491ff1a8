package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/tasks-api/internal/config"
)

type contextKey struct{}

// Setup initializes the application's logging system from configuration.
// It creates a structured JSON logger writing to stdout, sets it as the
// default slog logger and returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return New(os.Stdout, cfg.LogLevel), nil
}

// New builds a JSON logger writing to out and makes it the slog default.
func New(out io.Writer, level string) *slog.Logger {
	parsed, ok := ParseLevel(level)
	if !ok {
		// stderr text handler, the JSON one is not set up yet
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parsed}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name onto a slog level. Unknown names map to
// info and report false.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when
// there is none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return fallback
}
