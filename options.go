package cannibal

import (
	"slices"
	"time"
)

// Default analysis settings.
const (
	DefaultTopK         = 10
	DefaultMaxPages     = 100
	DefaultFetchTimeout = 10 * time.Second
	DefaultConcurrency  = 4
	MaxNGramSize        = 3
)

// Options configures an analysis run.
type Options struct {
	// NGramSizes lists the n-gram lengths to extract; keywords of every
	// size are combined per page.
	NGramSizes []int `json:"ngramSizes"`
	// TopK is the number of keywords kept per page and n-gram size.
	TopK    int         `json:"topK"`
	Scoring ScoringMode `json:"scoring"`
	// MaxPages bounds the number of pages fetched.
	MaxPages int `json:"maxPages"`
	// MaxDepth bounds link hops from the seeds. Negative means unlimited.
	MaxDepth             int           `json:"maxDepth"`
	FetchTimeout         time.Duration `json:"fetchTimeout"`
	Concurrency          int           `json:"concurrency"`
	Stem                 bool          `json:"stem,omitempty"`
	SkipDuplicateContent bool          `json:"skipDuplicateContent,omitempty"`
}

// DefaultOptions returns the default analysis settings.
func DefaultOptions() Options {
	return Options{
		NGramSizes:   []int{1, 2, 3},
		TopK:         DefaultTopK,
		Scoring:      ScoreFrequency,
		MaxPages:     DefaultMaxPages,
		MaxDepth:     -1,
		FetchTimeout: DefaultFetchTimeout,
		Concurrency:  DefaultConcurrency,
	}
}

// Validate returns an error if the options contain invalid fields.
func (o *Options) Validate() error {
	if len(o.NGramSizes) == 0 {
		return Errorf(EINVALID, "at least one n-gram size required")
	}
	for _, n := range o.NGramSizes {
		if n < 1 || n > MaxNGramSize {
			return Errorf(EINVALID, "n-gram size %d out of range 1-%d", n, MaxNGramSize)
		}
	}
	if o.TopK < 1 {
		return Errorf(EINVALID, "top-k must be positive")
	}
	if _, err := ParseScoringMode(string(o.Scoring)); err != nil {
		return err
	}
	if o.MaxPages < 1 {
		return Errorf(EINVALID, "max pages must be positive")
	}
	if o.FetchTimeout < 0 {
		return Errorf(EINVALID, "fetch timeout must not be negative")
	}
	if o.Concurrency < 1 {
		return Errorf(EINVALID, "concurrency must be positive")
	}
	return nil
}

// NGrams returns the configured n-gram sizes sorted and deduplicated.
func (o *Options) NGrams() []int {
	sizes := slices.Clone(o.NGramSizes)
	slices.Sort(sizes)
	return slices.Compact(sizes)
}
