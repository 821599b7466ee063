// Package slog provides logging decorators for wikinews services.
package slog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/wikinews"
)

// Ensure LoggingPageSource implements wikinews.PageSource.
var _ wikinews.PageSource = (*LoggingPageSource)(nil)

// LoggingPageSource wraps a PageSource and logs one line per fetched page.
type LoggingPageSource struct {
	next   wikinews.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next wikinews.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// PageText delegates to the wrapped source. Besides the page name it logs
// how many lines and bullet lines came back, which tells an empty digest
// apart from a failed expansion.
func (s *LoggingPageSource) PageText(ctx context.Context, page string) (text string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"page", page,
			"bytes", len(text),
			"lines", strings.Count(text, "\n"),
			"bullets", strings.Count(text, "\n*"),
			"duration", time.Since(begin),
		}
		if err != nil {
			s.logger.Warn("page text failed", append(attrs, "code", wikinews.ErrorCode(err), "err", err)...)
			return
		}
		s.logger.Debug("page text", attrs...)
	}(time.Now())
	return s.next.PageText(ctx, page)
}
