// Package html provides a wikinews.Segmenter driven by the
// golang.org/x/net/html tokenizer.
package html

import (
	"strings"
	"time"

	"github.com/fwojciec/wikinews"
	"golang.org/x/net/html"
)

const (
	// DefaultMarker is the tag whose closing boundary precedes a day's block.
	DefaultMarker = "nowiki"

	// DefaultTerminator ends the last text run of a block.
	DefaultTerminator = "\n"

	// minBlockLen is the shortest block that is emitted.
	minBlockLen = 2
)

// Ensure Segmenter implements wikinews.Segmenter at compile time.
var _ wikinews.Segmenter = (*Segmenter)(nil)

type state int

const (
	stateIdle state = iota
	stateAwaitBlock
	stateAccumulating
)

// Segmenter splits a tagged page into one raw block per date.
//
// It starts idle, scanning text runs for a YYYY-MM-DD date. Once a date is
// seen it waits for the closing marker tag, then accumulates text runs
// until one ends with the terminator. The accumulated text becomes the
// block for that date. A later block for the same date replaces the
// earlier one. Text still accumulating when input ends is dropped.
//
// A Segmenter is not safe for concurrent use.
type Segmenter struct {
	marker     string
	terminator string

	state   state
	date    time.Time
	pending strings.Builder

	blocks map[string]*wikinews.RawBlock
	order  []string
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithMarker sets the tag whose end boundary opens a block.
// Defaults to DefaultMarker.
func WithMarker(tag string) Option {
	return func(s *Segmenter) {
		s.marker = strings.ToLower(tag)
	}
}

// WithTerminator sets the suffix that completes a block.
// Defaults to DefaultTerminator.
func WithTerminator(t string) Option {
	return func(s *Segmenter) {
		s.terminator = t
	}
}

// NewSegmenter creates a new Segmenter.
func NewSegmenter(opts ...Option) *Segmenter {
	s := &Segmenter{
		marker:     DefaultMarker,
		terminator: DefaultTerminator,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Segment tokenizes text and returns the completed blocks in order of
// first appearance of their date. It discards any earlier state.
//
// Text separated only by comments is fed as a single run. A self-closing
// tag counts as a closing boundary.
func (s *Segmenter) Segment(text string) []*wikinews.RawBlock {
	s.Reset()

	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			s.Text(run.String())
			run.Reset()
		}
	}

	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way input is over.
			flush()
			return s.Blocks()
		case html.TextToken:
			run.Write(z.Text())
		case html.CommentToken:
			// Comments do not split a run.
		case html.EndTagToken, html.SelfClosingTagToken:
			flush()
			name, _ := z.TagName()
			s.EndTag(string(name))
		default:
			flush()
		}
	}
}

// Text feeds one text run.
func (s *Segmenter) Text(run string) {
	switch s.state {
	case stateIdle, stateAwaitBlock:
		if date, ok := parseDate(run); ok {
			s.date = date
			s.state = stateAwaitBlock
		}
	case stateAccumulating:
		s.pending.WriteString(run)
		if strings.HasSuffix(run, s.terminator) {
			s.emit(s.pending.String())
			s.pending.Reset()
			s.state = stateIdle
		}
	}
}

// EndTag feeds one closing tag boundary.
func (s *Segmenter) EndTag(name string) {
	if s.state == stateAwaitBlock && strings.EqualFold(name, s.marker) {
		s.state = stateAccumulating
	}
}

// Pending reports whether an unterminated block is being accumulated.
// After Segment returns, that block has been dropped.
func (s *Segmenter) Pending() bool {
	return s.state == stateAccumulating
}

// Blocks returns the completed blocks. An unterminated block is not
// included.
func (s *Segmenter) Blocks() []*wikinews.RawBlock {
	out := make([]*wikinews.RawBlock, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.blocks[key])
	}
	return out
}

// Reset returns the Segmenter to its idle state and forgets all blocks.
func (s *Segmenter) Reset() {
	s.state = stateIdle
	s.date = time.Time{}
	s.pending.Reset()
	s.blocks = make(map[string]*wikinews.RawBlock)
	s.order = nil
}

func (s *Segmenter) emit(text string) {
	if len(text) < minBlockLen {
		return
	}
	key := s.date.Format(wikinews.DateLayout)
	if _, ok := s.blocks[key]; !ok {
		s.order = append(s.order, key)
	}
	s.blocks[key] = &wikinews.RawBlock{Date: s.date, Text: text}
}

func parseDate(run string) (time.Time, bool) {
	run = strings.TrimSpace(run)
	if len(run) != len(wikinews.DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(wikinews.DateLayout, run)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
