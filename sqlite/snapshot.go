package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/wikinews"
)

// Compile-time interface verification.
var _ wikinews.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements wikinews.SnapshotService using SQLite.
// Each snapshot is stored as its JSON form in one row keyed by date.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// SaveSnapshot creates or replaces the snapshot for its date. A snapshot
// whose content hash matches the stored row is not rewritten.
func (s *SnapshotService) SaveSnapshot(ctx context.Context, snap *wikinews.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	content, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", snap.Key(), err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (date, content, content_hash, story_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			content = excluded.content,
			content_hash = excluded.content_hash,
			story_count = excluded.story_count,
			updated_at = excluded.updated_at
		WHERE snapshots.content_hash != excluded.content_hash
	`, dateKey(snap.Date), string(content), hashContent(content), snap.Count(),
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindSnapshotByDate retrieves the snapshot for a calendar date.
func (s *SnapshotService) FindSnapshotByDate(ctx context.Context, date time.Time) (*wikinews.Snapshot, error) {
	var content string

	err := s.db.QueryRowContext(ctx, `
		SELECT content FROM snapshots WHERE date = ?
	`, dateKey(date)).Scan(&content)

	if err == sql.ErrNoRows {
		return nil, wikinews.Errorf(wikinews.ENOTFOUND, "snapshot for %s not found", dateKey(date))
	}
	if err != nil {
		return nil, err
	}

	return decodeSnapshot(content)
}

// FindSnapshots retrieves snapshots matching the filter, oldest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter wikinews.SnapshotFilter) ([]*wikinews.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT content FROM snapshots WHERE 1=1")

	if filter.From != nil {
		query.WriteString(" AND date >= ?")
		args = append(args, dateKey(*filter.From))
	}
	if filter.To != nil {
		query.WriteString(" AND date <= ?")
		args = append(args, dateKey(*filter.To))
	}

	query.WriteString(" ORDER BY date ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*wikinews.Snapshot
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}

		snap, err := decodeSnapshot(content)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}

// DeleteSnapshot permanently removes the snapshot for a date.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, date time.Time) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE date = ?", dateKey(date))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return wikinews.Errorf(wikinews.ENOTFOUND, "snapshot for %s not found", dateKey(date))
	}

	return nil
}

func decodeSnapshot(content string) (*wikinews.Snapshot, error) {
	var snap wikinews.Snapshot
	if err := json.Unmarshal([]byte(content), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
