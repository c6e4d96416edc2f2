// Package slog provides logging decorators for policydoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/policydoc"
)

// Ensure LoggingLoader implements policydoc.Loader.
var _ policydoc.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with debug logging.
type LoggingLoader struct {
	next   policydoc.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next policydoc.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the operation.
func (l *LoggingLoader) Load(ctx context.Context, location string) (doc *policydoc.Document, err error) {
	defer func(begin time.Time) {
		sections := 0
		if doc != nil {
			sections = len(doc.Sections)
		}
		l.logger.Debug("load document",
			"location", location,
			"sections", sections,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, location)
}
