// Package keyword extracts ranked n-gram keywords from page text.
//
// The pipeline is: NFC normalize and lowercase, split into alphabetic
// tokens, drop stopwords, optionally stem, join consecutive surviving
// tokens into n-grams, then score and keep the top k.
//
// Two scoring modes are provided:
//
//   - frequency: raw occurrence count on the page. Deterministic per page.
//   - weighted: TF-IDF against a Corpus built from every page of the run,
//     which favors n-grams distinctive to the page.
//
// Results are sorted by score descending, with lexicographic tie-breaking.
package keyword

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fwojciec/cannibal"
	"github.com/kljensen/snowball"
)

// Extractor turns page text into ranked keywords.
// Extractor is safe for concurrent use once configured.
type Extractor struct {
	// Stopwords are removed before n-grams are formed.
	Stopwords *Stopwords

	// Stem reduces tokens to their snowball stem in the stopword language.
	Stem bool
}

// stemLanguages are the languages snowball has a stemmer for.
var stemLanguages = []string{"english", "french", "hungarian", "norwegian", "russian", "spanish", "swedish"}

// CanStem reports whether tokens in language can be stemmed.
func CanStem(language string) bool {
	return slices.Contains(stemLanguages, language)
}

// NewExtractor creates an Extractor using the given stopword set.
func NewExtractor(stopwords *Stopwords) *Extractor {
	return &Extractor{Stopwords: stopwords}
}

// Validate returns EINVALID when stemming is enabled for a stopword
// language without a stemmer.
func (e *Extractor) Validate() error {
	if !e.Stem {
		return nil
	}
	if lang := e.language(); !CanStem(lang) {
		return cannibal.Errorf(cannibal.EINVALID, "stemming is not available for %q (available: %s)",
			lang, strings.Join(stemLanguages, ", "))
	}
	return nil
}

// Tokens returns the page's tokens with stopwords removed (and stemmed
// when enabled).
func (e *Extractor) Tokens(text string) []string {
	tokens := Tokenize(text)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if e.Stopwords.Contains(tok) {
			continue
		}
		if e.Stem {
			tok = e.stem(tok)
		}
		kept = append(kept, tok)
	}
	return kept
}

// Terms returns the candidate n-grams of size n in document order.
func (e *Extractor) Terms(text string, n int) []string {
	return NGrams(e.Tokens(text), n)
}

// Extract returns the top k keywords of size n. Weighted scoring requires
// the corpus of every page in the run; frequency scoring ignores it.
func (e *Extractor) Extract(text string, n, topK int, mode cannibal.ScoringMode, corpus *Corpus) ([]cannibal.Keyword, error) {
	if n < 1 || n > cannibal.MaxNGramSize {
		return nil, cannibal.Errorf(cannibal.EINVALID, "n-gram size %d out of range 1-%d", n, cannibal.MaxNGramSize)
	}
	return Score(e.Terms(text, n), topK, mode, corpus)
}

// Score counts terms, scores each distinct term, and returns the top k.
// A topK of zero or less returns every term.
func Score(terms []string, topK int, mode cannibal.ScoringMode, corpus *Corpus) ([]cannibal.Keyword, error) {
	if mode == cannibal.ScoreWeighted && corpus == nil {
		return nil, cannibal.Errorf(cannibal.EINVALID, "weighted scoring requires the page corpus")
	}
	if len(terms) == 0 {
		return nil, nil
	}

	counts := make(map[string]int)
	for _, term := range terms {
		counts[term]++
	}

	keywords := make([]cannibal.Keyword, 0, len(counts))
	for term, count := range counts {
		kw := cannibal.Keyword{Term: term, Count: count}
		switch mode {
		case cannibal.ScoreWeighted:
			tf := float64(count) / float64(len(terms))
			kw.Score = tf * corpus.IDF(term)
		case cannibal.ScoreFrequency, "":
			kw.Score = float64(count)
		default:
			return nil, cannibal.Errorf(cannibal.EINVALID, "unknown scoring mode %q", mode)
		}
		keywords = append(keywords, kw)
	}

	slices.SortFunc(keywords, func(a, b cannibal.Keyword) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})

	if topK > 0 && len(keywords) > topK {
		keywords = keywords[:topK]
	}
	return keywords, nil
}

func (e *Extractor) language() string {
	if lang := e.Stopwords.Language(); lang != "" {
		return lang
	}
	return DefaultLanguage
}

// stem returns the snowball stem of tok, or tok unchanged when the
// language has no stemmer. Validate rejects that configuration.
func (e *Extractor) stem(tok string) string {
	stemmed, err := snowball.Stem(tok, e.language(), true)
	if err != nil || stemmed == "" {
		return tok
	}
	return stemmed
}
