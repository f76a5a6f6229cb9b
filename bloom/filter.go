// Package bloom provides the crawl's visited-URL set: a Bloom filter
// answers most "never seen" lookups, and an exact map settles the rest,
// so no URL is ever skipped because of a false positive.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate is the prefilter's target false positive rate.
const DefaultFalsePositiveRate = 0.01

// Set is a URL set. It is not safe for concurrent use; the crawl
// frontier guards it.
type Set struct {
	filter *bloom.BloomFilter
	exact  map[string]struct{}
}

// NewSet creates a Set sized for n expected URLs.
func NewSet(n uint) *Set {
	if n == 0 {
		n = 1
	}
	return &Set{
		filter: bloom.NewWithEstimates(n, DefaultFalsePositiveRate),
		exact:  make(map[string]struct{}, n),
	}
}

// Add inserts url and reports whether it was not already present.
func (s *Set) Add(url string) bool {
	if s.filter.TestAndAddString(url) {
		if _, ok := s.exact[url]; ok {
			return false
		}
	}
	s.exact[url] = struct{}{}
	return true
}

// Contains reports whether url has been added.
func (s *Set) Contains(url string) bool {
	if !s.filter.TestString(url) {
		return false
	}
	_, ok := s.exact[url]
	return ok
}

// Len returns the exact number of URLs in the set.
func (s *Set) Len() int {
	return len(s.exact)
}

// EstimatedCount returns the Bloom filter's estimate of its size.
func (s *Set) EstimatedCount() uint {
	return uint(s.filter.ApproximatedSize())
}
