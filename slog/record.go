package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/policydoc"
)

// Ensure LoggingRecordService implements policydoc.RecordService.
var _ policydoc.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with debug logging.
type LoggingRecordService struct {
	next   policydoc.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next policydoc.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

func (s *LoggingRecordService) CreateRecord(ctx context.Context, rec *policydoc.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create record",
			"name", rec.Name,
			"id", rec.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecord(ctx, rec)
}

func (s *LoggingRecordService) FindRecordByID(ctx context.Context, id string) (rec *policydoc.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find record",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecordByID(ctx, id)
}

func (s *LoggingRecordService) FindRecordByName(ctx context.Context, name string) (rec *policydoc.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find record",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecordByName(ctx, name)
}

func (s *LoggingRecordService) FindRecords(ctx context.Context, filter policydoc.RecordFilter) (recs []*policydoc.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find records",
			"count", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

func (s *LoggingRecordService) ReplaceRecord(ctx context.Context, id string, doc *policydoc.Document, source string) (rec *policydoc.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("replace record",
			"id", id,
			"source", source,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceRecord(ctx, id, doc, source)
}

func (s *LoggingRecordService) DeleteRecord(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete record",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRecord(ctx, id)
}
