package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey struct{}

// loggerKey is the context key under which the request-scoped logger lives.
var loggerKey contextKey

// WithContext returns a new context carrying the given logger.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from the context. Callers always get a
// usable logger; a context without one yields a no-op instance.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// requestLogger returns the logger stored in ctx, or nil when absent.
func requestLogger(ctx context.Context) *zap.Logger {
	l, _ := ctx.Value(loggerKey).(*zap.Logger)
	return l
}

// Enrich returns a context whose logger carries the extra fields. Later
// FromContext calls down the request path see the enriched logger.
func Enrich(ctx context.Context, fields ...zap.Field) context.Context {
	return WithContext(ctx, FromContext(ctx).With(fields...))
}
