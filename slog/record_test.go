package slog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/policydoc"
	"github.com/fwojciec/policydoc/mock"
	pdslog "github.com/fwojciec/policydoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordService(t *testing.T) {
	t.Parallel()

	t.Run("logs create with generated id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RecordService{
			CreateRecordFn: func(ctx context.Context, rec *policydoc.Record) error {
				rec.ID = "rec-1"
				return nil
			},
		}

		svc := pdslog.NewLoggingRecordService(inner, debugLogger(&buf))
		err := svc.CreateRecord(context.Background(), &policydoc.Record{Name: "platform"})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "create record")
		assert.Contains(t, output, "name=platform")
		assert.Contains(t, output, "id=rec-1")
	})

	t.Run("logs lookup errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RecordService{
			FindRecordByNameFn: func(ctx context.Context, name string) (*policydoc.Record, error) {
				return nil, policydoc.Errorf(policydoc.ENOTFOUND, "record not found: %s", name)
			},
		}

		svc := pdslog.NewLoggingRecordService(inner, debugLogger(&buf))
		_, err := svc.FindRecordByName(context.Background(), "missing")

		assert.Equal(t, policydoc.ENOTFOUND, policydoc.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "find record")
		assert.Contains(t, output, "name=missing")
		assert.Contains(t, output, "record not found")
	})

	t.Run("logs record count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RecordService{
			FindRecordsFn: func(ctx context.Context, filter policydoc.RecordFilter) ([]*policydoc.Record, error) {
				return []*policydoc.Record{{Name: "a"}, {Name: "b"}}, nil
			},
		}

		svc := pdslog.NewLoggingRecordService(inner, debugLogger(&buf))
		recs, err := svc.FindRecords(context.Background(), policydoc.RecordFilter{})

		require.NoError(t, err)
		assert.Len(t, recs, 2)
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("delegates replace and delete", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var replaced, deleted string
		inner := &mock.RecordService{
			ReplaceRecordFn: func(ctx context.Context, id string, doc *policydoc.Document, source string) (*policydoc.Record, error) {
				replaced = id
				return &policydoc.Record{ID: id, Source: source, Document: doc}, nil
			},
			DeleteRecordFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
			FindRecordByIDFn: func(ctx context.Context, id string) (*policydoc.Record, error) {
				return &policydoc.Record{ID: id}, nil
			},
		}

		svc := pdslog.NewLoggingRecordService(inner, debugLogger(&buf))

		rec, err := svc.FindRecordByID(context.Background(), "rec-1")
		require.NoError(t, err)
		_, err = svc.ReplaceRecord(context.Background(), rec.ID, &policydoc.Document{}, "new.json")
		require.NoError(t, err)
		require.NoError(t, svc.DeleteRecord(context.Background(), rec.ID))

		assert.Equal(t, "rec-1", replaced)
		assert.Equal(t, "rec-1", deleted)
		output := buf.String()
		assert.Contains(t, output, "replace record")
		assert.Contains(t, output, "source=new.json")
		assert.Contains(t, output, "delete record")
	})
}
