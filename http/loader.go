// Package http provides HTTP transport for policy documents: a Loader that
// retrieves documents from URLs and a Server exposing the record library.
package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/policydoc"
)

// DefaultLoadTimeout is the default timeout for HTTP requests.
const DefaultLoadTimeout = 10 * time.Second

// Ensure Loader implements policydoc.Loader at compile time.
var _ policydoc.Loader = (*Loader)(nil)

// Loader retrieves documents from URLs using HTTP GET requests.
type Loader struct {
	client   *http.Client
	timeout  time.Duration
	decoders policydoc.Decoders
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultLoadTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// NewLoader creates a new HTTP-based Loader.
func NewLoader(decoders policydoc.Decoders, opts ...Option) *Loader {
	l := &Loader{
		timeout:  DefaultLoadTimeout,
		decoders: decoders,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.client = &http.Client{
		Timeout: l.timeout,
	}

	return l
}

// Load retrieves the document at rawURL. The format is taken from the
// response Content-Type, falling back to the URL path extension.
func (l *Loader) Load(ctx context.Context, rawURL string) (*policydoc.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, policydoc.Errorf(policydoc.EINVALID, "invalid URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	format := policydoc.FormatFromContentType(resp.Header.Get("Content-Type"))
	if format == "" {
		format = policydoc.FormatFromPath(u.Path)
	}
	if format == "" {
		return nil, policydoc.Errorf(policydoc.EINVALID, "unknown document format for %s", rawURL)
	}

	return l.decoders.Decode(format, resp.Body)
}
