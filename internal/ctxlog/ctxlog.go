// Package ctxlog carries a logrus logger through context.Context.
package ctxlog

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// key is unexported to prevent collisions with context keys from other packages.
type key struct{}

// New returns a text logger writing to w. verbose selects debug level,
// otherwise only warnings and above are emitted.
func New(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	logger.SetLevel(logrus.WarnLevel)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

// WithLogger returns a new context with logger embedded.
func WithLogger(ctx context.Context, logger *logrus.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// FromContext returns the logger stored in ctx, or one that discards
// everything when none was stored.
func FromContext(ctx context.Context) *logrus.Logger {
	if logger, ok := ctx.Value(key{}).(*logrus.Logger); ok {
		return logger
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}
