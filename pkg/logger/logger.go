package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Log is usable before Init so packages can log in tests
var Log = slog.Default()

type ctxKey struct{}

func Init(level string) {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// WithRequestID stores the request id so FromContext can tag log lines with it
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// FromContext returns Log tagged with the request id carried by ctx, if any
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return Log
	}
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return Log.With("request_id", id)
	}
	return Log
}
