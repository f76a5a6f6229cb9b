package keyword

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// newCaser returns a lowercasing Caser. Casers are stateful and must
// not be shared between goroutines.
func newCaser() cases.Caser {
	return cases.Lower(language.Und)
}

// Tokenize lowercases text and splits it into alphabetic word tokens.
// Digits, punctuation, and symbols separate tokens and are dropped.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	folded := newCaser().String(norm.NFC.String(text))
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r)
	})
}

// CountWords returns the number of word tokens in text, stopwords included.
// It is the denominator of keyword density.
func CountWords(text string) int {
	return len(Tokenize(text))
}

// NGrams joins each run of n consecutive tokens with a single space.
// It returns nil when there are fewer than n tokens.
func NGrams(tokens []string, n int) []string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	if n == 1 {
		return tokens
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}
