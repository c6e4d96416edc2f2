// Package yaml provides YAML decoding of policy documents.
package yaml

import (
	"errors"
	"io"

	"github.com/fwojciec/policydoc"
	"gopkg.in/yaml.v3"
)

// Ensure Decoder implements policydoc.Decoder at compile time.
var _ policydoc.Decoder = (*Decoder)(nil)

// Decoder parses YAML documents using the same field names as JSON.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads the first YAML document from r.
// Syntax errors and shape mismatches return EINVALID.
func (d *Decoder) Decode(r io.Reader) (*policydoc.Document, error) {
	var doc policydoc.Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, policydoc.Errorf(policydoc.EINVALID, "empty YAML input")
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
			return nil, policydoc.Errorf(policydoc.EINVALID, "invalid document: %s", typeErr.Errors[0])
		}
		return nil, policydoc.Errorf(policydoc.EINVALID, "invalid YAML: %v", err)
	}
	return &doc, nil
}
