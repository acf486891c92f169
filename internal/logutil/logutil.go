package logutil

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type (
	ctxkey byte
)

const (
	loggerKey = ctxkey(1)
)

func Acquire(ctx context.Context) zerolog.Logger {
	l := ctx.Value(loggerKey)
	if l != nil {
		return l.(zerolog.Logger)
	}
	return log.Logger
}

func WithLogger(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// Component returns the context logger tagged with the given component
// name, so lifecycle messages from distinct guards can be told apart
// on the diagnostic output.
func Component(ctx context.Context, name string) zerolog.Logger {
	return Acquire(ctx).With().Str("component", name).Logger()
}
