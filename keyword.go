package cannibal

import "strings"

// ScoringMode selects how candidate keywords are ranked on a page.
type ScoringMode string

// Scoring modes.
const (
	// ScoreFrequency ranks by raw occurrence count on the page.
	ScoreFrequency ScoringMode = "frequency"
	// ScoreWeighted ranks by TF-IDF against the whole crawled corpus.
	ScoreWeighted ScoringMode = "weighted"
)

// ParseScoringMode parses a scoring mode name.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch ScoringMode(strings.ToLower(strings.TrimSpace(s))) {
	case ScoreFrequency, "":
		return ScoreFrequency, nil
	case ScoreWeighted, "tfidf", "tf-idf":
		return ScoreWeighted, nil
	}
	return "", Errorf(EINVALID, "unknown scoring mode %q (want frequency or weighted)", s)
}

// Keyword is a ranked candidate keyword of a single page.
type Keyword struct {
	Term  string  `json:"term"`
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

// KeywordOccurrence records how often a keyword occurs on one page.
type KeywordOccurrence struct {
	Keyword       string `json:"keyword"`
	PageURL       string `json:"pageUrl"`
	Count         int    `json:"count"`
	PageWordCount int    `json:"pageWordCount"`
}

// Density returns the occurrence count as a percentage of the page's
// word count, clamped to [0, 100]. Pages without words contribute 0.
func (o KeywordOccurrence) Density() float64 {
	if o.PageWordCount <= 0 || o.Count <= 0 {
		return 0
	}
	d := float64(o.Count) / float64(o.PageWordCount) * 100
	return min(d, 100)
}
