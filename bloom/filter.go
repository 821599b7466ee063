// Package bloom provides an approximate wikinews.URLIndex backed by a
// Bloom filter.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/wikinews"
)

// Ensure Filter implements wikinews.URLIndex at compile time.
var _ wikinews.URLIndex = (*Filter)(nil)

// Filter is a fixed-size URL set. Contains may report a URL that was never
// added; it never misses one that was.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds urls to the filter.
func (f *Filter) Add(urls ...string) {
	for _, u := range urls {
		f.f.AddString(u)
	}
}

// Contains reports whether url might be in the filter.
func (f *Filter) Contains(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Index returns a constructor for extract.Extractor.NewIndex that sizes
// each filter for the URLs it will hold.
func Index(fpRate float64) func(n int) wikinews.URLIndex {
	return func(n int) wikinews.URLIndex {
		return NewFilter(uint(n), fpRate)
	}
}
