package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikinews"
)

// Ensure LoggingSnapshotService implements wikinews.SnapshotService.
var _ wikinews.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService with debug logging.
type LoggingSnapshotService struct {
	next   wikinews.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next wikinews.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

// SaveSnapshot delegates to the wrapped service and logs the story count.
func (s *LoggingSnapshotService) SaveSnapshot(ctx context.Context, snap *wikinews.Snapshot) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save snapshot",
			"date", snap.Key(),
			"stories", snap.Count(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveSnapshot(ctx, snap)
}

// FindSnapshotByDate delegates to the wrapped service.
func (s *LoggingSnapshotService) FindSnapshotByDate(ctx context.Context, date time.Time) (snap *wikinews.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find snapshot",
			"date", date.Format(wikinews.DateLayout),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshotByDate(ctx, date)
}

// FindSnapshots delegates to the wrapped service and logs the result count.
func (s *LoggingSnapshotService) FindSnapshots(ctx context.Context, filter wikinews.SnapshotFilter) (snaps []*wikinews.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find snapshots",
			"count", len(snaps),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshots(ctx, filter)
}

// DeleteSnapshot delegates to the wrapped service.
func (s *LoggingSnapshotService) DeleteSnapshot(ctx context.Context, date time.Time) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete snapshot",
			"date", date.Format(wikinews.DateLayout),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSnapshot(ctx, date)
}
