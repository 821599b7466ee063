package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/wikinews"
)

// Ensure LoggingSegmenter implements wikinews.Segmenter.
var _ wikinews.Segmenter = (*LoggingSegmenter)(nil)

// LoggingSegmenter wraps a Segmenter and logs the days each page yields.
type LoggingSegmenter struct {
	next   wikinews.Segmenter
	logger *slog.Logger
}

// NewLoggingSegmenter creates a new LoggingSegmenter.
func NewLoggingSegmenter(next wikinews.Segmenter, logger *slog.Logger) *LoggingSegmenter {
	return &LoggingSegmenter{next: next, logger: logger}
}

// Segment delegates to the wrapped segmenter and logs the block dates.
func (s *LoggingSegmenter) Segment(text string) (blocks []*wikinews.RawBlock) {
	defer func(begin time.Time) {
		dates := make([]string, 0, len(blocks))
		for _, b := range blocks {
			dates = append(dates, b.Date.Format(wikinews.DateLayout))
		}
		s.logger.Debug("segment",
			"blocks", len(blocks),
			"dates", dates,
			"pending", s.next.Pending(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Segment(text)
}

// Pending delegates to the wrapped segmenter.
func (s *LoggingSegmenter) Pending() bool {
	return s.next.Pending()
}
