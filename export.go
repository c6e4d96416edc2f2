package policydoc

import (
	"strconv"
	"strings"
)

// Tagline is the one-line vision summary displayed above the sections.
const Tagline = "Vision: restore faith in government, empower people through democracy, defend individual freedoms, and build a just economy and sustainable future."

// VisionStatement is the closing paragraph appended after the sections.
const VisionStatement = "This platform rejects corruption and concentrated power, embracing transparency, accountability, and fairness as guiding principles."

// VisionHeading titles the closing block of every rendering and export.
const VisionHeading = "Vision Statement"

// Export content types and default filenames.
const (
	MarkdownContentType = "text/markdown;charset=utf-8"
	HTMLContentType     = "text/html;charset=utf-8"

	MarkdownFilename = "platform.md"
	HTMLFilename     = "platform.html"
)

// Exported is a serialized document ready to be saved by a collaborator.
type Exported struct {
	Filename    string
	ContentType string
	Body        string
}

// ExportWriter saves exported documents.
type ExportWriter interface {
	// WriteExport persists exp and returns where it was written.
	WriteExport(exp *Exported) (string, error)
}

// Export serializes the full document in the given format.
// Only FormatMarkdown and FormatHTML are supported; anything else returns EINVALID.
func Export(doc *Document, format Format) (*Exported, error) {
	switch format {
	case FormatMarkdown:
		return &Exported{
			Filename:    MarkdownFilename,
			ContentType: MarkdownContentType,
			Body:        ToMarkdown(doc),
		}, nil
	case FormatHTML:
		return &Exported{
			Filename:    HTMLFilename,
			ContentType: HTMLContentType,
			Body:        ToHTML(doc),
		}, nil
	default:
		return nil, Errorf(EINVALID, "unsupported export format %q", format)
	}
}

// ToMarkdown serializes the document as Markdown followed by the fixed
// vision block. The output is deterministic for a given document.
func ToMarkdown(doc *Document) string {
	lines := []string{"# " + doc.Title, ""}
	for _, sec := range doc.Sections {
		lines = append(lines, "## "+strconv.Itoa(sec.Index)+". "+sec.Title)
		if sec.Subtitle != "" {
			lines = append(lines, sec.Subtitle)
		}
		for _, it := range sec.Items {
			if it.Title != "" {
				lines = append(lines, "- **"+it.Title+"**: "+it.Text)
			} else {
				lines = append(lines, "- "+it.Text)
			}
		}
		lines = append(lines, "")
	}
	lines = append(lines, "\n## "+VisionHeading+"\n"+VisionStatement)
	return strings.Join(lines, "\n")
}

// htmlEscaper escapes exactly the characters that are unsafe in element
// content and double-quoted attributes. Single quotes pass through.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// ToHTML wraps the escaped Markdown export in a minimal HTML page.
// The Markdown is not rendered into tags; it is shown preformatted.
func ToHTML(doc *Document) string {
	var b strings.Builder
	b.WriteString(`<!doctype html><html><head><meta charset="utf-8"><title>`)
	b.WriteString(htmlEscaper.Replace(doc.Title))
	b.WriteString(`</title></head><body><pre>`)
	b.WriteString(htmlEscaper.Replace(ToMarkdown(doc)))
	b.WriteString(`</pre></body></html>`)
	return b.String()
}
