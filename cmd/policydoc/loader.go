package main

import (
	"context"
	"strings"

	"github.com/fwojciec/policydoc"
)

// Ensure SourceLoader implements policydoc.Loader at compile time.
var _ policydoc.Loader = (*SourceLoader)(nil)

// SourceLoader routes http(s) URLs to URLs and everything else to Files.
type SourceLoader struct {
	Files policydoc.Loader
	URLs  policydoc.Loader
}

func (l *SourceLoader) Load(ctx context.Context, location string) (*policydoc.Document, error) {
	if isURL(location) {
		return l.URLs.Load(ctx, location)
	}
	return l.Files.Load(ctx, location)
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
