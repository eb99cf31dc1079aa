package observability

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyUserID    ctxKey = "user_id"
)

// basic global logger, JSON to stdout.
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// WithRequestID stores a request_id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// WithUserID stores the chat user identity in the context so every log
// line of a dialog transition carries it.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// LoggerFromContext adds request_id and user_id if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	log := logger
	if reqID, _ := ctx.Value(ctxKeyRequestID).(string); reqID != "" {
		log = log.With("request_id", reqID)
	}
	if userID, _ := ctx.Value(ctxKeyUserID).(string); userID != "" {
		log = log.With("user_id", userID)
	}
	return log
}
