package main_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/policydoc"
	main "github.com/fwojciec/policydoc/cmd/policydoc"
	"github.com/fwojciec/policydoc/json"
	"github.com/fwojciec/policydoc/mock"
	"github.com/fwojciec/policydoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notFound(_ context.Context, name string) (*policydoc.Record, error) {
	return nil, policydoc.Errorf(policydoc.ENOTFOUND, "record not found: %s", name)
}

func singleSection(id string) *policydoc.Document {
	return &policydoc.Document{
		Title:    "Doc " + id,
		Sections: []policydoc.Section{{ID: id, Index: 1, Title: id}},
	}
}

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("imports built-in platform without sources", func(t *testing.T) {
		t.Parallel()

		var created *policydoc.Record
		records := &mock.RecordService{
			FindRecordByNameFn: notFound,
			CreateRecordFn: func(_ context.Context, rec *policydoc.Record) error {
				created = rec
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		cmd := &main.ImportCmd{Name: "platform"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "platform", created.Name)
		assert.Equal(t, main.BuiltinSource, created.Source)
		assert.Equal(t, json.Platform(), created.Document)
		assert.Contains(t, stdout.String(), `Imported "platform" (12 sections)`)
	})

	t.Run("merges sources in argument order", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var loaded []string
		loader := &mock.Loader{
			LoadFn: func(_ context.Context, location string) (*policydoc.Document, error) {
				mu.Lock()
				loaded = append(loaded, location)
				mu.Unlock()
				return singleSection(location), nil
			},
		}

		var created *policydoc.Record
		records := &mock.RecordService{
			FindRecordByNameFn: notFound,
			CreateRecordFn: func(_ context.Context, rec *policydoc.Record) error {
				created = rec
				return nil
			},
		}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Records: records,
			Loader:  loader,
		}

		cmd := &main.ImportCmd{Name: "merged", Sources: []string{"a", "b", "c"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, loaded)
		require.NotNil(t, created)
		assert.Equal(t, "a,b,c", created.Source)
		assert.Equal(t, "Doc a", created.Document.Title)
		require.Len(t, created.Document.Sections, 3)
		assert.Equal(t, "a", created.Document.Sections[0].ID)
		assert.Equal(t, "b", created.Document.Sections[1].ID)
		assert.Equal(t, "c", created.Document.Sections[2].ID)
	})

	t.Run("rejects duplicate section ids across sources", func(t *testing.T) {
		t.Parallel()

		loader := &mock.Loader{
			LoadFn: func(_ context.Context, _ string) (*policydoc.Document, error) {
				return singleSection("same"), nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: &mock.RecordService{},
			Loader:  loader,
		}

		cmd := &main.ImportCmd{Name: "dup", Sources: []string{"x", "y"}}
		err := cmd.Run(deps)

		assert.Equal(t, policydoc.EINVALID, policydoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "duplicate section id")
	})

	t.Run("returns load errors", func(t *testing.T) {
		t.Parallel()

		loader := &mock.Loader{
			LoadFn: func(_ context.Context, location string) (*policydoc.Document, error) {
				return nil, policydoc.Errorf(policydoc.ENOTFOUND, "file not found: %s", location)
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: &mock.RecordService{},
			Loader:  loader,
		}

		cmd := &main.ImportCmd{Name: "x", Sources: []string{"missing.json"}}
		err := cmd.Run(deps)

		assert.Equal(t, policydoc.ENOTFOUND, policydoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "file not found: missing.json")
	})

	t.Run("requires --force for existing record", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordByNameFn: func(_ context.Context, name string) (*policydoc.Record, error) {
				return &policydoc.Record{ID: "rec-1", Name: name}, nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: records,
		}

		cmd := &main.ImportCmd{Name: "platform"}
		err := cmd.Run(deps)

		assert.Equal(t, policydoc.ECONFLICT, policydoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports unchanged content without replacing", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordByNameFn: func(_ context.Context, name string) (*policydoc.Record, error) {
				return &policydoc.Record{ID: "rec-1", Name: name, ContentHash: sqlite.ContentHash(json.Platform())}, nil
			},
			ReplaceRecordFn: func(_ context.Context, _ string, _ *policydoc.Document, _ string) (*policydoc.Record, error) {
				return nil, errors.New("should not replace")
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		cmd := &main.ImportCmd{Name: "platform", Force: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `Record "platform" unchanged`)
	})

	t.Run("replaces changed content with --force", func(t *testing.T) {
		t.Parallel()

		var replacedID, replacedSource string
		records := &mock.RecordService{
			FindRecordByNameFn: func(_ context.Context, name string) (*policydoc.Record, error) {
				return &policydoc.Record{ID: "rec-1", Name: name, ContentHash: "stale"}, nil
			},
			ReplaceRecordFn: func(_ context.Context, id string, doc *policydoc.Document, source string) (*policydoc.Record, error) {
				replacedID = id
				replacedSource = source
				return &policydoc.Record{ID: id, Name: "platform", Document: doc}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		cmd := &main.ImportCmd{Name: "platform", Force: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "rec-1", replacedID)
		assert.Equal(t, main.BuiltinSource, replacedSource)
		assert.Contains(t, stdout.String(), `Replaced "platform"`)
	})

	t.Run("returns lookup errors other than not found", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordByNameFn: func(_ context.Context, _ string) (*policydoc.Record, error) {
				return nil, errors.New("database is locked")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Records: records,
		}

		cmd := &main.ImportCmd{Name: "platform"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Internal error.")
	})
}
