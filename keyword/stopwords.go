package keyword

import (
	"bufio"
	"embed"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/fwojciec/cannibal"
	"golang.org/x/text/unicode/norm"
)

//go:embed stopwords/*.txt
var stopwordFiles embed.FS

// DefaultLanguage is the stopword language used when none is configured.
const DefaultLanguage = "english"

// Stopwords is an immutable set of words excluded from keyword candidates.
type Stopwords struct {
	language string
	words    map[string]struct{}
}

// NewStopwords builds a stopword set from the given words.
func NewStopwords(language string, words ...string) *Stopwords {
	s := &Stopwords{
		language: language,
		words:    make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		w = lower(strings.TrimSpace(w))
		if w != "" {
			s.words[w] = struct{}{}
		}
	}
	return s
}

// LoadStopwords loads the embedded stopword list for a language.
// Call it once at startup and pass the result to an Extractor.
func LoadStopwords(language string) (*Stopwords, error) {
	if language == "" {
		language = DefaultLanguage
	}
	language = strings.ToLower(language)
	f, err := stopwordFiles.Open(path.Join("stopwords", language+".txt"))
	if err != nil {
		return nil, cannibal.Errorf(cannibal.EINVALID, "no stopword list for language %q (available: %s)",
			language, strings.Join(Languages(), ", "))
	}
	defer f.Close()
	return ReadStopwords(language, f)
}

// ReadStopwords reads a newline-separated stopword list.
// Blank lines and lines starting with # are ignored.
func ReadStopwords(language string, r io.Reader) (*Stopwords, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, cannibal.Errorf(cannibal.EINVALID, "reading stopwords: %v", err)
	}
	return NewStopwords(language, words...), nil
}

// Languages returns the languages with an embedded stopword list.
func Languages() []string {
	entries, err := stopwordFiles.ReadDir("stopwords")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".txt"))
	}
	slices.Sort(langs)
	return langs
}

// Contains reports whether word is a stopword.
// A nil set contains nothing.
func (s *Stopwords) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Language returns the set's language.
func (s *Stopwords) Language() string {
	if s == nil {
		return ""
	}
	return s.language
}

// Len returns the number of stopwords.
func (s *Stopwords) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// lower folds a single word the same way Tokenize does.
func lower(w string) string {
	return newCaser().String(norm.NFC.String(w))
}
