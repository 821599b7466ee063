package mock

import (
	"context"

	"github.com/fwojciec/wikinews"
)

var _ wikinews.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of wikinews.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, snap *wikinews.Snapshot) error
	CommitFn func() error
	AbortFn  func() error
}

func (e *Exporter) Export(ctx context.Context, snap *wikinews.Snapshot) error {
	return e.ExportFn(ctx, snap)
}

func (e *Exporter) Commit() error {
	return e.CommitFn()
}

func (e *Exporter) Abort() error {
	return e.AbortFn()
}
