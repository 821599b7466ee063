package mock

import "github.com/fwojciec/wikinews"

var (
	_ wikinews.Segmenter = (*Segmenter)(nil)
	_ wikinews.Parser    = (*Parser)(nil)
)

// Segmenter is a mock implementation of wikinews.Segmenter.
type Segmenter struct {
	SegmentFn func(text string) []*wikinews.RawBlock
	PendingFn func() bool
}

func (s *Segmenter) Segment(text string) []*wikinews.RawBlock {
	return s.SegmentFn(text)
}

func (s *Segmenter) Pending() bool {
	return s.PendingFn()
}

// Parser is a mock implementation of wikinews.Parser.
type Parser struct {
	ParseFn func(block *wikinews.RawBlock) *wikinews.Snapshot
}

func (p *Parser) Parse(block *wikinews.RawBlock) *wikinews.Snapshot {
	return p.ParseFn(block)
}
