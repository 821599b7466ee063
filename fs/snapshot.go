// Package fs provides file-based storage for day snapshots.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/wikinews"
)

const fileExt = ".json"

// Ensure SnapshotService implements wikinews.SnapshotService at compile time.
var _ wikinews.SnapshotService = (*SnapshotService)(nil)

// SnapshotService stores each snapshot as baseDir/YYYY-MM-DD.json.
// Writes go to a temporary file that is renamed into place.
type SnapshotService struct {
	baseDir string
}

// NewSnapshotService creates a new SnapshotService rooted at baseDir.
func NewSnapshotService(baseDir string) *SnapshotService {
	return &SnapshotService{baseDir: baseDir}
}

func (s *SnapshotService) path(date time.Time) string {
	return filepath.Join(s.baseDir, wikinews.Day(date).Format(wikinews.DateLayout)+fileExt)
}

// SaveSnapshot writes the snapshot for its date, replacing any previous file.
func (s *SnapshotService) SaveSnapshot(ctx context.Context, snap *wikinews.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", snap.Key(), err)
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.baseDir, snap.Key()+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path(snap.Date))
}

// FindSnapshotByDate reads the snapshot for a calendar date.
func (s *SnapshotService) FindSnapshotByDate(ctx context.Context, date time.Time) (*wikinews.Snapshot, error) {
	return s.read(s.path(date))
}

// FindSnapshots reads the snapshots matching the filter, oldest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter wikinews.SnapshotFilter) ([]*wikinews.Snapshot, error) {
	entries, err := os.ReadDir(s.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), fileExt)
		if e.IsDir() || !ok {
			continue
		}
		date, err := time.Parse(wikinews.DateLayout, name)
		if err != nil {
			continue
		}
		if filter.From != nil && date.Before(wikinews.Day(*filter.From)) {
			continue
		}
		if filter.To != nil && date.After(wikinews.Day(*filter.To)) {
			continue
		}
		dates = append(dates, date)
	}

	dates = paginate(dates, filter.Offset, filter.Limit)

	snaps := make([]*wikinews.Snapshot, 0, len(dates))
	for _, date := range dates {
		snap, err := s.read(s.path(date))
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// DeleteSnapshot removes the snapshot file for a date.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, date time.Time) error {
	err := os.Remove(s.path(date))
	if errors.Is(err, os.ErrNotExist) {
		return wikinews.Errorf(wikinews.ENOTFOUND, "snapshot for %s not found", wikinews.Day(date).Format(wikinews.DateLayout))
	}
	return err
}

func (s *SnapshotService) read(path string) (*wikinews.Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, wikinews.Errorf(wikinews.ENOTFOUND, "snapshot for %s not found", strings.TrimSuffix(filepath.Base(path), fileExt))
	}
	if err != nil {
		return nil, err
	}

	var snap wikinews.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &snap, nil
}

// paginate applies offset and limit to dates, which ReadDir returns in
// filename (and so date) order.
func paginate(dates []time.Time, offset, limit int) []time.Time {
	if offset >= len(dates) {
		return nil
	}
	if offset > 0 {
		dates = dates[offset:]
	}
	if limit > 0 && limit < len(dates) {
		dates = dates[:limit]
	}
	return dates
}
