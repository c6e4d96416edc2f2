package policydoc

// Segment is a fragment of text tagged as matching the query or not.
type Segment struct {
	Content string `json:"content"`
	Matched bool   `json:"matched"`
}

// Highlight splits text into alternating unmatched and matched segments
// for rawQuery. Matching is case-insensitive and literal, and agrees with
// Matches; matched segments keep the casing found in text.
//
// With a non-empty query the result always has an odd length: unmatched
// segments sit at even positions (possibly empty, e.g. when the query is at
// the start or end of text) and matched segments at odd positions.
// Concatenating every Content reproduces text exactly.
func Highlight(text, rawQuery string) []Segment {
	q := NormalizeQuery(rawQuery)
	if q == "" {
		return []Segment{{Content: text}}
	}

	units, starts := foldText(text)
	needle, _ := foldText(q)

	var segments []Segment
	last := 0
	for i := indexUnits(units, needle, 0); i >= 0; i = indexUnits(units, needle, i+len(needle)) {
		start, end := starts[i], starts[i+len(needle)]
		segments = append(segments,
			Segment{Content: text[last:start]},
			Segment{Content: text[start:end], Matched: true},
		)
		last = end
	}
	segments = append(segments, Segment{Content: text[last:]})

	return segments
}
