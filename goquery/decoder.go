// Package goquery provides HTML decoding of policy documents using goquery.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/policydoc"
	"golang.org/x/net/html"
)

// Ensure Decoder implements policydoc.Decoder at compile time.
var _ policydoc.Decoder = (*Decoder)(nil)

// Decoder parses rendered policy pages. Every section[id] holding an h2
// becomes a section; its first direct p child is the subtitle and each li
// an item, with a leading strong element as the item title.
//
// Pages without sections but with a pre element are treated as HTML
// exports: the preformatted text is handed to the Markdown decoder.
type Decoder struct {
	converter policydoc.Converter
	markdown  policydoc.Decoder
}

// NewDecoder creates a new Decoder. conv converts item markup to Markdown
// and may be nil, in which case item text is taken as plain text. markdown
// decodes HTML exports and may be nil, in which case they are rejected.
func NewDecoder(conv policydoc.Converter, markdown policydoc.Decoder) *Decoder {
	return &Decoder{converter: conv, markdown: markdown}
}

// Decode reads an HTML page from r.
func (d *Decoder) Decode(r io.Reader) (*policydoc.Document, error) {
	page, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, policydoc.Errorf(policydoc.EINVALID, "failed to parse HTML: %v", err)
	}

	sections := page.Find("section[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("h2").Length() > 0
	})

	if sections.Length() == 0 {
		if pre := page.Find("pre").First(); pre.Length() > 0 && d.markdown != nil {
			return d.markdown.Decode(strings.NewReader(pre.Text()))
		}
	}

	doc := &policydoc.Document{Title: pageTitle(page)}

	var decodeErr error
	sections.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		index, title, ok := policydoc.SplitHeading(collapse(s.Find("h2").First().Text()))
		if !ok && title == policydoc.VisionHeading {
			return false
		}
		if !ok {
			index = len(doc.Sections) + 1
		}

		sec := policydoc.Section{
			ID:       id,
			Index:    index,
			Title:    title,
			Subtitle: collapse(s.ChildrenFiltered("p").First().Text()),
		}

		s.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
			item, err := d.parseItem(li)
			if err != nil {
				decodeErr = err
				return false
			}
			sec.Items = append(sec.Items, item)
			return true
		})
		if decodeErr != nil {
			return false
		}

		doc.Sections = append(doc.Sections, sec)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return doc, nil
}

// parseItem converts an li element into an Item.
func (d *Decoder) parseItem(li *goquery.Selection) (policydoc.Item, error) {
	body := li.Clone()
	if p := body.ChildrenFiltered("p"); p.Length() == 1 && body.Children().Length() == 1 {
		body = p
	}

	var item policydoc.Item
	if lead := leadingStrong(body); lead != nil {
		item.Title = strings.TrimSuffix(collapse(lead.Text()), ":")
		item.Title = strings.TrimSpace(item.Title)
		lead.Remove()
	}

	text, err := d.itemText(body)
	if err != nil {
		return policydoc.Item{}, err
	}
	// "Title: text" renders the colon outside the strong element too.
	if item.Title != "" {
		text = strings.TrimSpace(strings.TrimPrefix(text, ":"))
	}
	item.Text = text

	return item, nil
}

// itemText returns the remaining item content, converted to Markdown when
// a converter is configured.
func (d *Decoder) itemText(body *goquery.Selection) (string, error) {
	if d.converter == nil {
		return collapse(body.Text()), nil
	}

	inner, err := body.Html()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(inner) == "" {
		return "", nil
	}
	return d.converter.Convert(inner)
}

// leadingStrong returns the strong (or b) element that opens s, ignoring
// whitespace-only text before it.
func leadingStrong(s *goquery.Selection) *goquery.Selection {
	var lead *goquery.Selection
	s.Contents().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		node := c.Get(0)
		if node.Type == html.TextNode && strings.TrimSpace(node.Data) == "" {
			return true
		}
		if node.Type == html.ElementNode && (node.Data == "strong" || node.Data == "b") {
			lead = c
		}
		return false
	})
	return lead
}

// pageTitle returns the first h1, falling back to the title element.
func pageTitle(page *goquery.Document) string {
	if h1 := collapse(page.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return collapse(page.Find("title").First().Text())
}

// collapse trims s and collapses internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
