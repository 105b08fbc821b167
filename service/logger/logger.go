// Package logger wraps logrus the way gallery-so-go-gallery's service/logger
// does: a package-level default entry, retrievable (and extendable with
// fields) through a context, so call sites never reach for the global
// logger directly.
package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type loggerContextKey struct{}

var (
	defaultLogger = logrus.New()
	defaultEntry  = logrus.NewEntry(defaultLogger)
)

// Init configures the default logger's level and formatter. quiet suppresses
// debug-level output, matching the teacher's --quiet flag behavior.
func Init(quiet bool) {
	defaultLogger.SetLevel(logrus.InfoLevel)
	if !quiet {
		defaultLogger.SetLevel(logrus.DebugLevel)
	}
	defaultLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// NewContextWithFields returns a new context carrying a log entry derived
// from the default logger with the given fields attached.
func NewContextWithFields(parent context.Context, fields logrus.Fields) context.Context {
	return context.WithValue(parent, loggerContextKey{}, For(parent).WithFields(fields))
}

// For returns the log entry attached to ctx, or the default entry if none is
// attached.
func For(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return defaultEntry
	}
	if entry, ok := ctx.Value(loggerContextKey{}).(*logrus.Entry); ok {
		return entry
	}
	return defaultEntry
}
