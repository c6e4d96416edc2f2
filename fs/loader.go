// Package fs provides filesystem access for policy documents.
package fs

import (
	"context"
	"errors"
	"os"

	"github.com/fwojciec/policydoc"
)

// Ensure Loader implements policydoc.Loader at compile time.
var _ policydoc.Loader = (*Loader)(nil)

// Loader reads documents from local files, choosing the decoder by file
// extension.
type Loader struct {
	decoders policydoc.Decoders
}

// NewLoader creates a new Loader that decodes with the given decoders.
func NewLoader(decoders policydoc.Decoders) *Loader {
	return &Loader{decoders: decoders}
}

// Load reads and decodes the file at path.
// Returns ENOTFOUND if the file does not exist.
func (l *Loader) Load(ctx context.Context, path string) (*policydoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := policydoc.FormatFromPath(path)
	if format == "" {
		return nil, policydoc.Errorf(policydoc.EINVALID, "unknown document format for %s", path)
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, policydoc.Errorf(policydoc.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.decoders.Decode(format, f)
}
