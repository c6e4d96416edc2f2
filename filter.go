package policydoc

// Filter reduces the document to the sections matching rawQuery.
//
// An empty (or whitespace-only) query returns doc.Sections unchanged.
// Otherwise a section whose items match is returned with only the matching
// items; a section whose title or subtitle matches, but none of whose items
// do, is returned whole; any other section is dropped. Order is preserved
// and doc is never modified.
func Filter(doc *Document, rawQuery string) []Section {
	q := NormalizeQuery(rawQuery)
	if q == "" {
		return doc.Sections
	}

	result := make([]Section, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		if items := matchingItems(sec.Items, q); len(items) > 0 {
			view := sec
			view.Items = items
			result = append(result, view)
			continue
		}

		// Heading match surfaces the section with all its items.
		if Matches(sec.Title, q) || (sec.Subtitle != "" && Matches(sec.Subtitle, q)) {
			result = append(result, sec)
		}
	}
	return result
}

// matchingItems returns the items whose title or text contains q.
func matchingItems(items []Item, q string) []Item {
	var matched []Item
	for _, it := range items {
		if Matches(it.Title, q) || Matches(it.Text, q) {
			matched = append(matched, it)
		}
	}
	return matched
}
