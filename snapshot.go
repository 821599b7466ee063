package wikinews

import (
	"context"
	"encoding/json"
	"time"
)

// Snapshot is the category tree of stories extracted for one day.
type Snapshot struct {
	Date time.Time
	Root *Category
}

// NewSnapshot returns an empty snapshot for the calendar date of t.
func NewSnapshot(t time.Time) *Snapshot {
	return &Snapshot{Date: Day(t), Root: NewCategory()}
}

// Key returns the snapshot's date as YYYY-MM-DD.
func (s *Snapshot) Key() string {
	return s.Date.Format(DateLayout)
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.Date.IsZero() {
		return Errorf(EINVALID, "snapshot date required")
	}
	if s.Root == nil {
		return Errorf(EINVALID, "snapshot root category required")
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{Date: s.Date, Root: NewCategory()}
	if s.Root != nil {
		out.Root = s.Root.Clone()
	}
	return out
}

type snapshotJSON struct {
	Date       string    `json:"date"`
	Categories *Category `json:"categories"`
}

// MarshalJSON encodes the snapshot with its date key and ordered tree.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	root := s.Root
	if root == nil {
		root = NewCategory()
	}
	return json.Marshal(snapshotJSON{Date: s.Key(), Categories: root})
}

// UnmarshalJSON decodes a snapshot produced by MarshalJSON.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var v snapshotJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	date, err := ParseDay(v.Date)
	if err != nil {
		return err
	}
	s.Date = date
	s.Root = v.Categories
	if s.Root == nil {
		s.Root = NewCategory()
	}
	return nil
}

// SnapshotService represents a service for persisting day snapshots.
type SnapshotService interface {
	// SaveSnapshot creates or replaces the snapshot for its date.
	SaveSnapshot(ctx context.Context, snap *Snapshot) error

	// FindSnapshotByDate retrieves the snapshot for a calendar date.
	// Returns ENOTFOUND if no snapshot is stored for that date.
	FindSnapshotByDate(ctx context.Context, date time.Time) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, oldest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshot permanently removes the snapshot for a date.
	// Returns ENOTFOUND if no snapshot is stored for that date.
	DeleteSnapshot(ctx context.Context, date time.Time) error
}

// SnapshotFilter represents a filter for FindSnapshots.
// From and To are inclusive calendar dates.
type SnapshotFilter struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageSource retrieves the full tagged text of a named wiki page.
type PageSource interface {
	PageText(ctx context.Context, page string) (string, error)
}

// Exporter writes rendered snapshots as one unit. Nothing is visible at
// the destination until Commit; Abort discards everything exported so far.
type Exporter interface {
	Export(ctx context.Context, snap *Snapshot) error
	Commit() error
	Abort() error
}
