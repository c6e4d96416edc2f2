package policydoc_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/policydoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContents(t *testing.T) {
	t.Parallel()

	t.Run("lists every section in order", func(t *testing.T) {
		t.Parallel()

		entries := policydoc.Contents(testDocument())

		assert.Equal(t, []policydoc.ContentsEntry{
			{ID: "labor", Index: 1, Title: "Economic Justice & Labor Rights", Anchor: "#labor"},
			{ID: "tax", Index: 2, Title: "Taxation & Wealth", Anchor: "#tax"},
			{ID: "vision", Index: 3, Title: "Closing Remarks", Anchor: "#vision"},
		}, entries)
	})
}

func TestSectionLink(t *testing.T) {
	t.Parallel()

	t.Run("appends fragment to origin and path", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://example.com/platform")
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/platform#labor", policydoc.SectionLink(base, "labor"))
	})

	t.Run("replaces existing fragment and drops query", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://example.com/?q=wage#tax")
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/#labor", policydoc.SectionLink(base, "labor"))
	})

	t.Run("does not modify base", func(t *testing.T) {
		t.Parallel()

		base, err := url.Parse("https://example.com/p?q=1")
		require.NoError(t, err)

		_ = policydoc.SectionLink(base, "x")

		assert.Equal(t, "https://example.com/p?q=1", base.String())
	})
}

func TestSplitHeading(t *testing.T) {
	t.Parallel()

	t.Run("splits numbered heading", func(t *testing.T) {
		t.Parallel()

		index, title, ok := policydoc.SplitHeading("12. Foreign Policy & Defense")

		assert.True(t, ok)
		assert.Equal(t, 12, index)
		assert.Equal(t, "Foreign Policy & Defense", title)
	})

	t.Run("reports heading without number", func(t *testing.T) {
		t.Parallel()

		index, title, ok := policydoc.SplitHeading(" Vision Statement ")

		assert.False(t, ok)
		assert.Zero(t, index)
		assert.Equal(t, "Vision Statement", title)
	})
}

func TestAnchors(t *testing.T) {
	t.Parallel()

	t.Run("generates URL-safe anchors", func(t *testing.T) {
		t.Parallel()

		var a policydoc.Anchors

		assert.Equal(t, "health-safety-and-social-welfare", a.Next("Health, Safety, and Social Welfare"))
		assert.Equal(t, "environment-infrastructure-technology", a.Next("Environment, Infrastructure & Technology"))
	})

	t.Run("handles duplicates with numeric suffixes", func(t *testing.T) {
		t.Parallel()

		var a policydoc.Anchors

		assert.Equal(t, "example", a.Next("Example"))
		assert.Equal(t, "example-1", a.Next("Example"))
		assert.Equal(t, "example-2", a.Next("example"))
	})

	t.Run("falls back for titles without letters", func(t *testing.T) {
		t.Parallel()

		var a policydoc.Anchors

		assert.Equal(t, "section", a.Next("&&&"))
		assert.Equal(t, "section-1", a.Next(""))
	})
}
