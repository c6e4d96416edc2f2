// Package json provides JSON decoding of policy documents and the built-in
// platform document.
package json

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/policydoc"
)

// Ensure Decoder implements policydoc.Decoder at compile time.
var _ policydoc.Decoder = (*Decoder)(nil)

// Decoder parses JSON documents of the form
// {"title": "...", "sections": [{"id", "index", "title", "subtitle", "items": [{"title", "text"}]}]}.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads a single JSON document from r.
// Syntax errors and shape mismatches return EINVALID.
func (d *Decoder) Decode(r io.Reader) (*policydoc.Document, error) {
	var doc policydoc.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, policydoc.Errorf(policydoc.EINVALID, "invalid document: %s must be %s, got %s", fieldName(typeErr), typeErr.Type, typeErr.Value)
		}
		if errors.Is(err, io.EOF) {
			return nil, policydoc.Errorf(policydoc.EINVALID, "empty JSON input")
		}
		return nil, policydoc.Errorf(policydoc.EINVALID, "invalid JSON: %v", err)
	}
	return &doc, nil
}

// fieldName returns the JSON path of a type error, or "document" for the root.
func fieldName(err *json.UnmarshalTypeError) string {
	if err.Field == "" {
		return "document"
	}
	return err.Field
}

//go:embed platform.json
var platformJSON string

// Platform returns a fresh copy of the built-in platform document.
// It panics if the embedded data is not a valid document.
func Platform() *policydoc.Document {
	doc, err := policydoc.Decoders{policydoc.FormatJSON: NewDecoder()}.Decode(policydoc.FormatJSON, strings.NewReader(platformJSON))
	if err != nil {
		panic("json: built-in platform document: " + policydoc.ErrorMessage(err))
	}
	return doc
}
