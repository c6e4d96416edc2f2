package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/policydoc"
	main "github.com/fwojciec/policydoc/cmd/policydoc"
	"github.com/fwojciec/policydoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shuts down when context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		deps := &main.Dependencies{
			Ctx:     ctx,
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			Records: &mock.RecordService{},
		}

		done := make(chan error, 1)
		go func() {
			done <- (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps)
		}()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(main.ShutdownTimeout + time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			Records: &mock.RecordService{},
		}

		err := (&main.ServeCmd{Addr: "127.0.0.1:0", BaseURL: "not a url"}).Run(deps)

		assert.Equal(t, policydoc.EINVALID, policydoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "invalid base URL")
	})
}
