// Package policydoc renders, searches, and exports hierarchical policy
// documents. A document is a title plus ordered sections of bullet items;
// the engine filters it against a free-text query, splits text into
// highlight segments, and serializes it to Markdown and HTML.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, goldmark/).
package policydoc
