package mock

import (
	"context"

	"github.com/fwojciec/policydoc"
)

var _ policydoc.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of policydoc.RecordService.
type RecordService struct {
	CreateRecordFn     func(ctx context.Context, rec *policydoc.Record) error
	FindRecordByIDFn   func(ctx context.Context, id string) (*policydoc.Record, error)
	FindRecordByNameFn func(ctx context.Context, name string) (*policydoc.Record, error)
	FindRecordsFn      func(ctx context.Context, filter policydoc.RecordFilter) ([]*policydoc.Record, error)
	ReplaceRecordFn    func(ctx context.Context, id string, doc *policydoc.Document, source string) (*policydoc.Record, error)
	DeleteRecordFn     func(ctx context.Context, id string) error
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *policydoc.Record) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*policydoc.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecordByName(ctx context.Context, name string) (*policydoc.Record, error) {
	return s.FindRecordByNameFn(ctx, name)
}

func (s *RecordService) FindRecords(ctx context.Context, filter policydoc.RecordFilter) ([]*policydoc.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) ReplaceRecord(ctx context.Context, id string, doc *policydoc.Document, source string) (*policydoc.Record, error) {
	return s.ReplaceRecordFn(ctx, id, doc, source)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}
