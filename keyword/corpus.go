package keyword

import "math"

// Corpus holds document frequencies for weighted scoring.
// Build it from every page of a run before scoring any page.
// Corpus is not safe for concurrent mutation; reads after building are safe.
type Corpus struct {
	docs int
	df   map[string]int
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{df: make(map[string]int)}
}

// Add records one document's terms. Repeated terms count once.
func (c *Corpus) Add(terms []string) {
	c.docs++
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		c.df[term]++
	}
}

// Len returns the number of documents added.
func (c *Corpus) Len() int {
	return c.docs
}

// DocumentFrequency returns the number of documents containing term.
func (c *Corpus) DocumentFrequency(term string) int {
	return c.df[term]
}

// IDF returns the smoothed inverse document frequency
// ln((1+N)/(1+df)) + 1, which is always at least 1.
func (c *Corpus) IDF(term string) float64 {
	n := float64(c.docs)
	df := float64(c.df[term])
	return math.Log((1+n)/(1+df)) + 1
}
