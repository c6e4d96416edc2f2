package policydoc

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ContentsEntry is one line of a document's table of contents.
type ContentsEntry struct {
	ID     string `json:"id"`
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Contents returns a table of contents entry for every section of the
// document. It never depends on the active query.
func Contents(doc *Document) []ContentsEntry {
	entries := make([]ContentsEntry, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		entries = append(entries, ContentsEntry{
			ID:     sec.ID,
			Index:  sec.Index,
			Title:  sec.Title,
			Anchor: "#" + sec.ID,
		})
	}
	return entries
}

// SectionLink returns a shareable link to the section with the given id:
// base with its query string dropped and its fragment set to id.
func SectionLink(base *url.URL, id string) string {
	u := *base
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = id
	u.RawFragment = ""
	return u.String()
}

// sectionNumberRe matches a "N. Title" heading.
var sectionNumberRe = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)

// SplitHeading splits a "N. Title" heading into its index and title.
// ok is false when the heading carries no numeric prefix.
func SplitHeading(heading string) (index int, title string, ok bool) {
	heading = strings.TrimSpace(heading)
	m := sectionNumberRe.FindStringSubmatch(heading)
	if m == nil {
		return 0, heading, false
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, heading, false
	}
	return index, strings.TrimSpace(m[2]), true
}

// Anchors generates unique, URL-safe section ids from titles. The zero
// value is ready to use.
type Anchors struct {
	counts map[string]int
}

// Next returns the anchor for title, adding a numeric suffix when the same
// anchor was already handed out.
func (a *Anchors) Next(title string) string {
	if a.counts == nil {
		a.counts = make(map[string]int)
	}

	base := generateAnchor(title)
	if base == "" {
		base = "section"
	}

	count, exists := a.counts[base]
	a.counts[base] = count + 1
	if !exists {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
