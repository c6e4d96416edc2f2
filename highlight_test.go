package policydoc_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/policydoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concat(segments []policydoc.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Content)
	}
	return b.String()
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	t.Run("returns single unmatched segment for empty query", func(t *testing.T) {
		t.Parallel()

		segments := policydoc.Highlight("Fair Wages", "  ")

		assert.Equal(t, []policydoc.Segment{{Content: "Fair Wages"}}, segments)
	})

	t.Run("keeps original casing of matches", func(t *testing.T) {
		t.Parallel()

		segments := policydoc.Highlight("Fair Wages", "wages")

		assert.Equal(t, []policydoc.Segment{
			{Content: "Fair "},
			{Content: "Wages", Matched: true},
			{Content: ""},
		}, segments)
	})

	t.Run("treats dots literally", func(t *testing.T) {
		t.Parallel()

		segments := policydoc.Highlight("a.b.c", ".")

		assert.Equal(t, []policydoc.Segment{
			{Content: "a"},
			{Content: ".", Matched: true},
			{Content: "b"},
			{Content: ".", Matched: true},
			{Content: "c"},
		}, segments)
	})

	t.Run("preserves empty segment at start", func(t *testing.T) {
		t.Parallel()

		segments := policydoc.Highlight("Wage theft", "wage")

		assert.Equal(t, []policydoc.Segment{
			{Content: ""},
			{Content: "Wage", Matched: true},
			{Content: " theft"},
		}, segments)
	})

	t.Run("preserves empty segments between adjacent matches", func(t *testing.T) {
		t.Parallel()

		segments := policydoc.Highlight("aaAA", "aa")

		assert.Equal(t, []policydoc.Segment{
			{Content: ""},
			{Content: "aa", Matched: true},
			{Content: ""},
			{Content: "AA", Matched: true},
			{Content: ""},
		}, segments)
	})

	t.Run("returns text unsplit when nothing matches", func(t *testing.T) {
		t.Parallel()

		segments := policydoc.Highlight("Budget Transparency", "tax")

		assert.Equal(t, []policydoc.Segment{{Content: "Budget Transparency"}}, segments)
	})

	t.Run("trims the query before matching", func(t *testing.T) {
		t.Parallel()

		segments := policydoc.Highlight("Wealth Tax", " tax ")

		assert.Equal(t, []policydoc.Segment{
			{Content: "Wealth "},
			{Content: "Tax", Matched: true},
			{Content: ""},
		}, segments)
	})

	t.Run("reproduces text when concatenated", func(t *testing.T) {
		t.Parallel()

		texts := []string{
			"Raise the federal minimum wage to $25/hr.",
			"Tie prices to a global reference basket (e.g., GLP-1s).",
			"K–12 Funding Reform—ending district wealth gaps",
			"",
		}
		queries := []string{"$25", "(e.g.", "—", "e", "[", `\d`, "wealth"}

		for _, text := range texts {
			for _, q := range queries {
				assert.Equal(t, text, concat(policydoc.Highlight(text, q)), "text=%q query=%q", text, q)
			}
		}
	})

	t.Run("matched segments equal the query ignoring case", func(t *testing.T) {
		t.Parallel()

		for _, s := range policydoc.Highlight("SNAP eligibility; raise snap limits", "Snap") {
			if s.Matched {
				assert.True(t, strings.EqualFold(s.Content, "Snap"))
			} else {
				assert.NotContains(t, strings.ToLower(s.Content), "snap")
			}
		}
	})

	t.Run("handles invalid utf-8 without panicking", func(t *testing.T) {
		t.Parallel()

		var segments []policydoc.Segment
		require.NotPanics(t, func() {
			segments = policydoc.Highlight("ab\xffc\xfe", "\xff")
		})

		assert.Equal(t, []policydoc.Segment{
			{Content: "ab"},
			{Content: "\xff", Matched: true},
			{Content: "c\xfe"},
		}, segments)
	})

	t.Run("agrees with matches on invalid utf-8", func(t *testing.T) {
		t.Parallel()

		segments := policydoc.Highlight("a\xfeb", "\xff")

		assert.False(t, policydoc.Matches("a\xfeb", "\xff"))
		assert.Equal(t, []policydoc.Segment{{Content: "a\xfeb"}}, segments)
	})

	t.Run("keeps byte offsets when folding changes rune width", func(t *testing.T) {
		t.Parallel()

		segments := policydoc.Highlight("xİy", "i")

		assert.Equal(t, "xİy", concat(segments))
		assert.Equal(t, []policydoc.Segment{
			{Content: "x"},
			{Content: "İ", Matched: true},
			{Content: "y"},
		}, segments)
	})
}
