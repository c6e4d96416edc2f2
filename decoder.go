package policydoc

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// Format identifies a serialization of a document.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// FormatFromPath returns the format implied by a file extension, or ""
// when the extension is not recognized.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return ""
	}
}

// FormatFromContentType returns the format implied by a MIME type, or ""
// when the type is not recognized.
func FormatFromContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "application/json", "text/json":
		return FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	case "text/markdown", "text/x-markdown":
		return FormatMarkdown
	case "text/html", "application/xhtml+xml":
		return FormatHTML
	default:
		return ""
	}
}

// Decoder parses a serialized document.
type Decoder interface {
	// Decode reads a document from r. Shape mismatches return EINVALID.
	Decode(r io.Reader) (*Document, error)
}

// Decoders dispatches decoding by format.
type Decoders map[Format]Decoder

// Decode decodes r with the decoder registered for format and validates the
// result. Returns EINVALID for unknown formats and invalid documents.
func (d Decoders) Decode(format Format, r io.Reader) (*Document, error) {
	dec, ok := d[format]
	if !ok {
		if format == "" {
			return nil, Errorf(EINVALID, "unknown document format")
		}
		return nil, Errorf(EINVALID, "no decoder for format %q", format)
	}

	doc, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Loader retrieves a validated document from a location such as a file
// path or URL.
type Loader interface {
	Load(ctx context.Context, location string) (*Document, error)
}

// Merge combines documents in order: the title comes from the first, and
// sections are appended. The result is validated, so duplicate section ids
// across documents return EINVALID.
func Merge(docs ...*Document) (*Document, error) {
	if len(docs) == 0 {
		return nil, Errorf(EINVALID, "no documents to merge")
	}

	merged := &Document{Title: docs[0].Title}
	for _, doc := range docs {
		merged.Sections = append(merged.Sections, doc.Sections...)
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
