package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/policydoc"
	pdhttp "github.com/fwojciec/policydoc/http"
)

// ShutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const ShutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until deps.Ctx is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	var base *url.URL
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			fmt.Fprintf(deps.Stderr, "error: invalid base URL %q\n", c.BaseURL)
			return policydoc.Errorf(policydoc.EINVALID, "invalid base URL %q", c.BaseURL)
		}
		base = u
	}

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to listen on %s\n", c.Addr)
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}

	srv := &http.Server{
		Handler:           pdhttp.NewServer(deps.Records, deps.Logger, base),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
