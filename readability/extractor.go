// Package readability implements article text extraction with
// go-readability, keeping only the content Mozilla's Readability
// algorithm scores as the page's article.
package readability

import (
	"strings"

	"github.com/fwojciec/cannibal"
	"github.com/go-shiori/go-readability"
)

// Ensure TextExtractor implements cannibal.TextExtractor at compile time.
var _ cannibal.TextExtractor = (*TextExtractor)(nil)

// TextExtractor returns the article body of a page as plain text.
type TextExtractor struct {
	// Fallback extracts text when readability finds no article.
	// If nil, such pages yield EPARSE.
	Fallback cannibal.TextExtractor
}

// NewTextExtractor creates a new TextExtractor with an optional fallback.
func NewTextExtractor(fallback cannibal.TextExtractor) *TextExtractor {
	return &TextExtractor{Fallback: fallback}
}

// ExtractText returns the article text with whitespace collapsed.
func (e *TextExtractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err == nil {
		if text := strings.Join(strings.Fields(article.TextContent), " "); text != "" {
			return text, nil
		}
	}

	if e.Fallback != nil {
		return e.Fallback.ExtractText(rawHTML)
	}
	if err != nil {
		return "", cannibal.Errorf(cannibal.EPARSE, "no article content: %v", err)
	}
	return "", cannibal.Errorf(cannibal.EPARSE, "no article content")
}
