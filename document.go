package policydoc

import (
	"context"
	"time"
)

// Document represents a policy document: a title and its ordered sections.
// Documents are read-only once loaded; the engine only derives views.
type Document struct {
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section represents a titled group of items. ID is the sole stable
// identity of a section and is used as its anchor.
type Section struct {
	ID       string `json:"id" yaml:"id"`
	Index    int    `json:"index" yaml:"index"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Items    []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// Item represents a single bullet entry. An empty Title means the item has
// no bold lead-in and renders as plain text.
type Item struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Text  string `json:"text" yaml:"text"`
}

// Validate returns an error if the document cannot be handed to the engine.
// Loaders call it at the boundary so that the engine never re-validates.
func (d *Document) Validate() error {
	if len(d.Sections) == 0 {
		return Errorf(EINVALID, "document sections required")
	}

	seen := make(map[string]struct{}, len(d.Sections))
	for i, sec := range d.Sections {
		if sec.ID == "" {
			return Errorf(EINVALID, "section %d id required", i+1)
		}
		if _, ok := seen[sec.ID]; ok {
			return Errorf(EINVALID, "duplicate section id %q", sec.ID)
		}
		seen[sec.ID] = struct{}{}
	}
	return nil
}

// Record represents a named document stored in the library.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	ContentHash string    `json:"contentHash"`
	Document    *Document `json:"document"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "record name required")
	}
	if r.Document == nil {
		return Errorf(EINVALID, "record document required")
	}
	return r.Document.Validate()
}

// RecordService represents a service for managing stored documents.
type RecordService interface {
	// CreateRecord creates a new record.
	// Returns ECONFLICT if a record with the same name exists.
	CreateRecord(ctx context.Context, rec *Record) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecordByName retrieves a record by its unique name.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByName(ctx context.Context, name string) (*Record, error)

	// FindRecords retrieves records matching the filter, ordered by name.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// ReplaceRecord swaps the document and source of an existing record.
	// Returns ENOTFOUND if record does not exist.
	ReplaceRecord(ctx context.Context, id string, doc *Document, source string) (*Record, error)

	// DeleteRecord permanently removes a record and its sections.
	// Returns ENOTFOUND if record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
