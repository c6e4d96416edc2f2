package policydoc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	// Used to keep inline markup (links, emphasis) of imported item text.
	Convert(html string) (string, error)
}
