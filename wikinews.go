// Package wikinews turns the daily news digest of a wiki portal into a tree
// of dated stories and keeps stored trees clean across repeated extractions.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, html/, http/).
package wikinews

import "time"

// DateLayout is the calendar date format used for snapshot keys and the
// {date} format placeholder.
const DateLayout = "2006-01-02"

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD calendar date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "invalid date %q", s)
	}
	return t, nil
}

// RawBlock is the unparsed digest text for a single day.
type RawBlock struct {
	Date time.Time
	Text string
}

// Segmenter splits a tagged page into per-day raw blocks.
type Segmenter interface {
	// Segment returns one block per recognized date, in order of first
	// appearance. A date seen twice keeps the later completed block.
	Segment(text string) []*RawBlock

	// Pending reports whether the last Segment call ended inside an
	// unterminated block. That block is not among the returned blocks.
	Pending() bool
}

// Parser builds a day snapshot from a raw block.
type Parser interface {
	Parse(block *RawBlock) *Snapshot
}

// PortalPage is the wiki page carrying the rolling current events digest.
const PortalPage = "Portal:Current events"

// DayPage returns the name of the archive page holding the digest for the
// calendar date of t, e.g. "Portal:Current events/2024 January 15".
func DayPage(t time.Time) string {
	return PortalPage + "/" + t.Format("2006 January 2")
}
