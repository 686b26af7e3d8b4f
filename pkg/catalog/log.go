package catalog

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// WithLogger returns a context carrying log. Batch resolution and pagination
// emit debug entries to it.
func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// LoggerFrom returns the logger stored in ctx or one that discards everything.
func LoggerFrom(ctx context.Context) logrus.FieldLogger {
	if log, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok && log != nil {
		return log
	}
	return discard
}
