// Package lipgloss renders filtered policy documents to the terminal using
// lipgloss styles.
package lipgloss

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/policydoc"
	"github.com/muesli/termenv"
)

// Theme selects the color palette.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// palette holds the colors of one theme.
type palette struct {
	title       lipgloss.Color
	muted       lipgloss.Color
	heading     lipgloss.Color
	matchFg     lipgloss.Color
	matchBg     lipgloss.Color
	visionTitle lipgloss.Color
}

var palettes = map[Theme]palette{
	ThemeLight: {
		title:       "#111827",
		muted:       "#4B5563",
		heading:     "#1D4ED8",
		matchFg:     "#111827",
		matchBg:     "#FDE68A",
		visionTitle: "#047857",
	},
	ThemeDark: {
		title:       "#F9FAFB",
		muted:       "#9CA3AF",
		heading:     "#60A5FA",
		matchFg:     "#111827",
		matchBg:     "#FBBF24",
		visionTitle: "#34D399",
	},
}

// Renderer writes a styled, filtered view of a document.
type Renderer struct {
	w io.Writer

	title     lipgloss.Style
	tagline   lipgloss.Style
	heading   lipgloss.Style
	subtitle  lipgloss.Style
	itemTitle lipgloss.Style
	text      lipgloss.Style
	match     lipgloss.Style
	vision    lipgloss.Style
}

// Option configures a Renderer.
type Option func(*lipgloss.Renderer)

// WithColorProfile forces a color profile instead of detecting one from
// the output. termenv.Ascii disables styling entirely.
func WithColorProfile(p termenv.Profile) Option {
	return func(r *lipgloss.Renderer) {
		r.SetColorProfile(p)
	}
}

// NewRenderer creates a Renderer writing to w. Unknown themes fall back to
// ThemeLight.
func NewRenderer(w io.Writer, theme Theme, opts ...Option) *Renderer {
	lr := lipgloss.NewRenderer(w)
	for _, opt := range opts {
		opt(lr)
	}

	p, ok := palettes[theme]
	if !ok {
		p = palettes[ThemeLight]
	}
	lr.SetHasDarkBackground(theme == ThemeDark)

	return &Renderer{
		w:         w,
		title:     lr.NewStyle().Bold(true).Foreground(p.title),
		tagline:   lr.NewStyle().Italic(true).Foreground(p.muted),
		heading:   lr.NewStyle().Bold(true).Foreground(p.heading),
		subtitle:  lr.NewStyle().Foreground(p.muted),
		itemTitle: lr.NewStyle().Bold(true),
		text:      lr.NewStyle(),
		match:     lr.NewStyle().Foreground(p.matchFg).Background(p.matchBg),
		vision:    lr.NewStyle().Bold(true).Foreground(p.visionTitle),
	}
}

// NoMatchesMessage is shown when a query filters out every section.
func NoMatchesMessage(query string) string {
	return "No matches for “" + query + "”."
}

// Render writes doc filtered by rawQuery, with query matches highlighted.
func (r *Renderer) Render(doc *policydoc.Document, rawQuery string) error {
	var b strings.Builder

	b.WriteString(r.title.Render(doc.Title))
	b.WriteString("\n")
	b.WriteString(r.tagline.Render(policydoc.Tagline))
	b.WriteString("\n\n")

	sections := policydoc.Filter(doc, rawQuery)
	if len(sections) == 0 {
		b.WriteString(NoMatchesMessage(policydoc.NormalizeQuery(rawQuery)))
		b.WriteString("\n\n")
	}

	for _, sec := range sections {
		b.WriteString(r.heading.Render(strconv.Itoa(sec.Index) + ". "))
		b.WriteString(r.highlight(sec.Title, rawQuery, r.heading))
		b.WriteString("\n")
		if sec.Subtitle != "" {
			b.WriteString(r.highlight(sec.Subtitle, rawQuery, r.subtitle))
			b.WriteString("\n")
		}
		for _, it := range sec.Items {
			b.WriteString("  • ")
			if it.Title != "" {
				b.WriteString(r.highlight(it.Title, rawQuery, r.itemTitle))
				b.WriteString(r.itemTitle.Render(":"))
				b.WriteString(" ")
			}
			b.WriteString(r.highlight(it.Text, rawQuery, r.text))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(r.vision.Render(policydoc.VisionHeading))
	b.WriteString("\n")
	b.WriteString(r.text.Render(policydoc.VisionStatement))
	b.WriteString("\n")

	_, err := io.WriteString(r.w, b.String())
	if err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}
	return nil
}

// highlight renders text with base, and the parts matching rawQuery with
// the match style layered on top.
func (r *Renderer) highlight(text, rawQuery string, base lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range policydoc.Highlight(text, rawQuery) {
		if seg.Content == "" {
			continue
		}
		if seg.Matched {
			b.WriteString(r.match.Inherit(base).Render(seg.Content))
		} else {
			b.WriteString(base.Render(seg.Content))
		}
	}
	return b.String()
}
