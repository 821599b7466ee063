// Package extract runs the digest pipeline: fetch a portal page, split it
// into day blocks, parse each block, reconcile it with stored snapshots,
// and save the result.
package extract

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/fwojciec/wikinews"
	"github.com/google/uuid"
)

// Extractor turns portal pages into stored day snapshots.
type Extractor struct {
	Source    wikinews.PageSource
	Segmenter wikinews.Segmenter
	Parser    wikinews.Parser
	Snapshots wikinews.SnapshotService

	// Merge keeps stories from the stored snapshot of the same date that
	// the fresh extraction no longer carries. Fresh entries win conflicts.
	Merge bool

	// DedupeDays removes stories whose URL appears anywhere in the stored
	// snapshots of that many preceding days. Zero disables dedupe.
	DedupeDays int

	// NewIndex builds the set of prior URLs for dedupe, sized for n URLs.
	// Nil uses an exact wikinews.URLMap.
	NewIndex func(n int) wikinews.URLIndex

	// DryRun skips saving.
	DryRun bool

	// Logger receives per-day progress. Nil discards it.
	Logger *slog.Logger
}

// Result summarizes a pipeline run.
type Result struct {
	// RunID tags the log lines of one run.
	RunID string

	// Snapshots holds the processed snapshots, oldest first.
	Snapshots []*wikinews.Snapshot

	// Removed counts stories dropped by dedupe.
	Removed int

	// Skipped counts days left empty after dedupe and not saved.
	Skipped int
}

// Run extracts every day block on page.
// Returns ENOTFOUND if the page holds no day blocks.
func (e *Extractor) Run(ctx context.Context, page string) (*Result, error) {
	result := newResult()
	if err := e.runPage(ctx, page, result); err != nil {
		return nil, err
	}
	return result, nil
}

// RunDates extracts the archive page of each date in turn. Dates whose
// page is missing or empty are logged and skipped.
func (e *Extractor) RunDates(ctx context.Context, dates []time.Time) (*Result, error) {
	dates = slices.Clone(dates)
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	result := newResult()
	for _, date := range dates {
		page := wikinews.DayPage(date)
		err := e.runPage(ctx, page, result)
		if wikinews.ErrorCode(err) == wikinews.ENOTFOUND {
			e.logger().Warn("day page skipped", "run", result.RunID, "page", page, "err", wikinews.ErrorMessage(err))
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func newResult() *Result {
	return &Result{RunID: uuid.NewString()}
}

func (e *Extractor) runPage(ctx context.Context, page string, result *Result) error {
	text, err := e.Source.PageText(ctx, page)
	if err != nil {
		return err
	}

	blocks := e.Segmenter.Segment(text)
	if e.Segmenter.Pending() {
		e.logger().Warn("unterminated day block dropped", "run", result.RunID, "page", page)
	}
	if len(blocks) == 0 {
		return wikinews.Errorf(wikinews.ENOTFOUND, "no day blocks found on %q", page)
	}

	// Oldest first, so dedupe sees the days before it already stored.
	slices.SortStableFunc(blocks, func(a, b *wikinews.RawBlock) int { return a.Date.Compare(b.Date) })

	for _, block := range blocks {
		snap := e.Parser.Parse(block)
		if err := e.process(ctx, snap, result); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) process(ctx context.Context, snap *wikinews.Snapshot, result *Result) error {
	log := e.logger().With("run", result.RunID, "date", snap.Key())
	parsed := snap.Count()

	if e.Merge {
		stored, err := e.Snapshots.FindSnapshotByDate(ctx, snap.Date)
		switch {
		case err == nil:
			snap.Combine(stored)
		case wikinews.ErrorCode(err) != wikinews.ENOTFOUND:
			return err
		}
	}

	removed := 0
	if e.DedupeDays > 0 {
		seen, err := e.priorURLs(ctx, snap.Date)
		if err != nil {
			return err
		}
		removed = snap.RemoveURLs(seen)
		result.Removed += removed
	}
	snap.Prune()

	total := snap.Count()
	if total == 0 {
		log.Info("day skipped", "parsed", parsed, "removed", removed)
		result.Skipped++
		return nil
	}

	if !e.DryRun {
		if err := e.Snapshots.SaveSnapshot(ctx, snap); err != nil {
			return err
		}
	}
	log.Info("day extracted", "parsed", parsed, "removed", removed, "stories", total)
	result.Snapshots = append(result.Snapshots, snap)
	return nil
}

// priorURLs collects the story URLs of the DedupeDays days before date.
func (e *Extractor) priorURLs(ctx context.Context, date time.Time) (wikinews.URLIndex, error) {
	from := date.AddDate(0, 0, -e.DedupeDays)
	to := date.AddDate(0, 0, -1)
	prior, err := e.Snapshots.FindSnapshots(ctx, wikinews.SnapshotFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, p := range prior {
		urls = append(urls, p.URLs()...)
	}
	if e.NewIndex == nil {
		return wikinews.NewURLMap(urls...), nil
	}
	seen := e.NewIndex(len(urls))
	seen.Add(urls...)
	return seen, nil
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
