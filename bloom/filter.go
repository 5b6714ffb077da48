// Package bloom provides the run-wide seen-URL set backed by a Bloom filter.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/harvest"
)

// DefaultFalsePositiveRate keeps the chance of wrongly skipping an article
// negligible for runs of a few thousand URLs.
const DefaultFalsePositiveRate = 1e-4

// Ensure Filter implements harvest.URLSet at compile time.
var _ harvest.URLSet = (*Filter)(nil)

// Filter records URLs seen during a crawl run.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewURLSet creates a Filter sized for n URLs at DefaultFalsePositiveRate.
func NewURLSet(n uint) *Filter {
	return NewFilter(n, DefaultFalsePositiveRate)
}

// Add records url.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether url may have been added. False positives are
// possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}
