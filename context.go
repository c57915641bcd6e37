package vizgen

import (
	"context"
	"log/slog"
)

type ctxLoggerKey struct{}

var defaultLogger = slog.New(slog.DiscardHandler)

func ctxWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// LoggerFromContext returns the logger attached by a Renderer or the CLI, or a discarding
// logger if there is none.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return defaultLogger
}

// WithLoggerContext returns a copy of ctx that carries logger.
func WithLoggerContext(ctx context.Context, logger *slog.Logger) context.Context {
	return ctxWithLogger(ctx, logger)
}
