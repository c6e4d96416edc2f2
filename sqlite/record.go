package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/policydoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ policydoc.RecordService = (*RecordService)(nil)

// RecordService implements policydoc.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// ContentHash returns the xxHash of the document's Markdown export as a
// hex string. Equal hashes mean the documents export identically.
func ContentHash(doc *policydoc.Document) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(policydoc.ToMarkdown(doc)))
}

// CreateRecord creates a new record with its sections and items.
func (s *RecordService) CreateRecord(ctx context.Context, rec *policydoc.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE name = ?", rec.Name).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return policydoc.Errorf(policydoc.ECONFLICT, "record already exists: %s", rec.Name)
	}

	rec.ID = uuid.New().String()
	rec.ContentHash = ContentHash(rec.Document)
	now := time.Now().UTC().Truncate(time.Second)
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (id, name, source, title, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Name, rec.Source, rec.Document.Title, rec.ContentHash,
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	if err := insertSections(ctx, tx, rec.ID, rec.Document); err != nil {
		return err
	}

	return tx.Commit()
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*policydoc.Record, error) {
	return s.findRecord(ctx, "id = ?", id)
}

// FindRecordByName retrieves a record by name.
func (s *RecordService) FindRecordByName(ctx context.Context, name string) (*policydoc.Record, error) {
	return s.findRecord(ctx, "name = ?", name)
}

func (s *RecordService) findRecord(ctx context.Context, where string, arg any) (*policydoc.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, title, content_hash, created_at, updated_at
		FROM records
		WHERE `+where, arg)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, policydoc.Errorf(policydoc.ENOTFOUND, "record not found: %v", arg)
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadSections(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter, ordered by name.
func (s *RecordService) FindRecords(ctx context.Context, filter policydoc.RecordFilter) ([]*policydoc.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source, title, content_hash, created_at, updated_at FROM records WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*policydoc.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range recs {
		if err := s.loadSections(ctx, rec); err != nil {
			return nil, err
		}
	}

	return recs, nil
}

// ReplaceRecord swaps the document and source of an existing record,
// keeping its ID, name and creation time.
func (s *RecordService) ReplaceRecord(ctx context.Context, id string, doc *policydoc.Document, source string) (*policydoc.Record, error) {
	if doc == nil {
		return nil, policydoc.Errorf(policydoc.EINVALID, "record document required")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	updatedAt := time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
	result, err := tx.ExecContext(ctx, `
		UPDATE records
		SET source = ?, title = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, source, doc.Title, ContentHash(doc), updatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, policydoc.Errorf(policydoc.ENOTFOUND, "record not found: %s", id)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sections WHERE record_id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete sections: %w", err)
	}
	if err := insertSections(ctx, tx, id, doc); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.FindRecordByID(ctx, id)
}

// DeleteRecord permanently removes a record. Sections and items are
// removed by cascade.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return policydoc.Errorf(policydoc.ENOTFOUND, "record not found: %s", id)
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*policydoc.Record, error) {
	rec := &policydoc.Record{Document: &policydoc.Document{}}
	var createdAt, updatedAt string

	if err := row.Scan(&rec.ID, &rec.Name, &rec.Source, &rec.Document.Title, &rec.ContentHash,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if rec.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return rec, nil
}

// loadSections fills rec.Document with its stored sections and items.
func (s *RecordService) loadSections(ctx context.Context, rec *policydoc.Record) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT section_id, idx, title, subtitle
		FROM sections
		WHERE record_id = ?
		ORDER BY position
	`, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var sections []policydoc.Section
	for rows.Next() {
		var sec policydoc.Section
		if err := rows.Scan(&sec.ID, &sec.Index, &sec.Title, &sec.Subtitle); err != nil {
			return err
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT section_position, title, text
		FROM items
		WHERE record_id = ?
		ORDER BY section_position, position
	`, rec.ID)
	if err != nil {
		return err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var pos int
		var it policydoc.Item
		if err := itemRows.Scan(&pos, &it.Title, &it.Text); err != nil {
			return err
		}
		if pos < 0 || pos >= len(sections) {
			return fmt.Errorf("item references missing section %d", pos)
		}
		sections[pos].Items = append(sections[pos].Items, it)
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	rec.Document.Sections = sections
	return nil
}

// insertSections writes the sections and items of doc in document order.
func insertSections(ctx context.Context, tx *sql.Tx, recordID string, doc *policydoc.Document) error {
	for pos, sec := range doc.Sections {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sections (record_id, position, section_id, idx, title, subtitle)
			VALUES (?, ?, ?, ?, ?, ?)
		`, recordID, pos, sec.ID, sec.Index, sec.Title, sec.Subtitle)
		if err != nil {
			return fmt.Errorf("failed to insert section %s: %w", sec.ID, err)
		}

		for itemPos, it := range sec.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO items (record_id, section_position, position, title, text)
				VALUES (?, ?, ?, ?, ?)
			`, recordID, pos, itemPos, it.Title, it.Text)
			if err != nil {
				return fmt.Errorf("failed to insert item %d of section %s: %w", itemPos, sec.ID, err)
			}
		}
	}
	return nil
}
