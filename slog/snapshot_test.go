package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/wikinews"
	"github.com/fwojciec/wikinews/mock"
	wikislog "github.com/fwojciec/wikinews/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingSnapshotService(t *testing.T) {
	t.Parallel()

	snap := wikinews.NewSnapshot(testDate)
	snap.Root.Set("http://a", &wikinews.Story{URL: "http://a"})

	inner := &mock.SnapshotService{
		SaveSnapshotFn: func(ctx context.Context, s *wikinews.Snapshot) error {
			return nil
		},
		FindSnapshotByDateFn: func(ctx context.Context, date time.Time) (*wikinews.Snapshot, error) {
			return nil, wikinews.Errorf(wikinews.ENOTFOUND, "snapshot for %s not found", date.Format(wikinews.DateLayout))
		},
		FindSnapshotsFn: func(ctx context.Context, filter wikinews.SnapshotFilter) ([]*wikinews.Snapshot, error) {
			return []*wikinews.Snapshot{snap, snap}, nil
		},
		DeleteSnapshotFn: func(ctx context.Context, date time.Time) error {
			return nil
		},
	}

	t.Run("save logs date and story count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := wikislog.NewLoggingSnapshotService(inner, debugLogger(&buf))

		require.NoError(t, svc.SaveSnapshot(context.Background(), snap))

		assert.Contains(t, buf.String(), "save snapshot")
		assert.Contains(t, buf.String(), "date=2024-01-15")
		assert.Contains(t, buf.String(), "stories=1")
	})

	t.Run("find passes errors through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := wikislog.NewLoggingSnapshotService(inner, debugLogger(&buf))

		_, err := svc.FindSnapshotByDate(context.Background(), testDate)

		assert.Equal(t, wikinews.ENOTFOUND, wikinews.ErrorCode(err))
		assert.Contains(t, buf.String(), "find snapshot")
		assert.Contains(t, buf.String(), "err=")
	})

	t.Run("find snapshots logs result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := wikislog.NewLoggingSnapshotService(inner, debugLogger(&buf))

		got, err := svc.FindSnapshots(context.Background(), wikinews.SnapshotFilter{})
		require.NoError(t, err)

		assert.Len(t, got, 2)
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("delete logs the date", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := wikislog.NewLoggingSnapshotService(inner, debugLogger(&buf))

		require.NoError(t, svc.DeleteSnapshot(context.Background(), testDate))

		assert.Contains(t, buf.String(), "delete snapshot")
		assert.Contains(t, buf.String(), "date=2024-01-15")
	})

	t.Run("stays quiet above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := wikislog.NewLoggingSnapshotService(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		require.NoError(t, svc.SaveSnapshot(context.Background(), snap))

		assert.Empty(t, buf.String())
	})
}
