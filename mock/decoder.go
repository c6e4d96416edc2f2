package mock

import (
	"context"
	"io"

	"github.com/fwojciec/policydoc"
)

var _ policydoc.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of policydoc.Decoder.
type Decoder struct {
	DecodeFn func(r io.Reader) (*policydoc.Document, error)
}

func (d *Decoder) Decode(r io.Reader) (*policydoc.Document, error) {
	return d.DecodeFn(r)
}

var _ policydoc.Loader = (*Loader)(nil)

// Loader is a mock implementation of policydoc.Loader.
type Loader struct {
	LoadFn func(ctx context.Context, location string) (*policydoc.Document, error)
}

func (l *Loader) Load(ctx context.Context, location string) (*policydoc.Document, error) {
	return l.LoadFn(ctx, location)
}
