// Package goldmark provides Markdown decoding of policy documents using
// goldmark. It reads the layout produced by policydoc.ToMarkdown.
package goldmark

import (
	"io"
	"regexp"
	"strings"

	"github.com/fwojciec/policydoc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Ensure Decoder implements policydoc.Decoder at compile time.
var _ policydoc.Decoder = (*Decoder)(nil)

// Decoder parses Markdown documents. The first H1 is the title, every H2 of
// the form "N. Title" opens a section, the first paragraph under it is the
// subtitle, and bullet items become items ("**T**: text" for titled ones).
// The vision block and anything after it are ignored.
type Decoder struct {
	md goldmark.Markdown
}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{md: goldmark.New()}
}

// titledItemRe matches a "**Title**: text" list item.
var titledItemRe = regexp.MustCompile(`^\*\*(.+?)\*\*:\s*(.*)$`)

// Decode reads a Markdown document from r.
func (d *Decoder) Decode(r io.Reader) (*policydoc.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(src)) == "" {
		return nil, policydoc.Errorf(policydoc.EINVALID, "empty Markdown input")
	}

	root := d.md.Parser().Parse(text.NewReader(src))

	doc := &policydoc.Document{}
	var anchors policydoc.Anchors
	var current *policydoc.Section
	titled := false

	flush := func() {
		if current != nil {
			doc.Sections = append(doc.Sections, *current)
			current = nil
		}
	}

walk:
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := rawText(node, src)
			switch {
			case node.Level == 1 && !titled:
				doc.Title = heading
				titled = true
			case node.Level == 2:
				flush()
				index, title, ok := policydoc.SplitHeading(heading)
				if !ok && title == policydoc.VisionHeading {
					break walk
				}
				if !ok {
					index = len(doc.Sections) + 1
				}
				current = &policydoc.Section{
					ID:    anchors.Next(title),
					Index: index,
					Title: title,
				}
			}

		case *ast.Paragraph:
			if current != nil && current.Subtitle == "" && len(current.Items) == 0 {
				current.Subtitle = rawText(node, src)
			}

		case *ast.List:
			if current == nil {
				continue
			}
			for li := node.FirstChild(); li != nil; li = li.NextSibling() {
				current.Items = append(current.Items, parseItem(li, src))
			}
		}
	}
	flush()

	return doc, nil
}

// parseItem converts a list item into an Item, splitting off a bold lead-in.
func parseItem(li ast.Node, src []byte) policydoc.Item {
	raw := itemSource(li, src)
	if m := titledItemRe.FindStringSubmatch(raw); m != nil {
		return policydoc.Item{Title: m[1], Text: m[2]}
	}
	return policydoc.Item{Text: raw}
}

// listMarkerRe matches the bullet or ordinal opening a list item line.
var listMarkerRe = regexp.MustCompile(`^(?:[-*+]|\d+[.)])[ \t]*`)

// itemSource returns the source text of a list item without its marker,
// lines joined by single spaces. Working from the source keeps text that
// goldmark would parse as nested blocks, such as "1. first".
func itemSource(li ast.Node, src []byte) string {
	start, stop := -1, -1
	_ = ast.Walk(li, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if start < 0 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	if start < 0 {
		return ""
	}

	for start > 0 && src[start-1] != '\n' {
		start--
	}

	var parts []string
	for i, line := range strings.Split(string(src[start:stop]), "\n") {
		line = strings.TrimSpace(line)
		if i == 0 {
			line = listMarkerRe.ReplaceAllString(line, "")
		}
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

// rawText returns the source text of a block node with its lines joined by
// single spaces. Inline markup is kept verbatim.
func rawText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		if s := strings.TrimSpace(string(line.Value(src))); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
