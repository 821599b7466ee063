package mock

import (
	"context"
	"time"

	"github.com/fwojciec/wikinews"
)

var _ wikinews.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of wikinews.SnapshotService.
type SnapshotService struct {
	SaveSnapshotFn       func(ctx context.Context, snap *wikinews.Snapshot) error
	FindSnapshotByDateFn func(ctx context.Context, date time.Time) (*wikinews.Snapshot, error)
	FindSnapshotsFn      func(ctx context.Context, filter wikinews.SnapshotFilter) ([]*wikinews.Snapshot, error)
	DeleteSnapshotFn     func(ctx context.Context, date time.Time) error
}

func (s *SnapshotService) SaveSnapshot(ctx context.Context, snap *wikinews.Snapshot) error {
	return s.SaveSnapshotFn(ctx, snap)
}

func (s *SnapshotService) FindSnapshotByDate(ctx context.Context, date time.Time) (*wikinews.Snapshot, error) {
	return s.FindSnapshotByDateFn(ctx, date)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter wikinews.SnapshotFilter) ([]*wikinews.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, date time.Time) error {
	return s.DeleteSnapshotFn(ctx, date)
}
