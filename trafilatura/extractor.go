// Package trafilatura implements main-content text extraction with
// go-trafilatura, leaving navigation, sidebars, and footers out of the
// keyword corpus.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/cannibal"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure TextExtractor implements cannibal.TextExtractor at compile time.
var _ cannibal.TextExtractor = (*TextExtractor)(nil)

// TextExtractor returns the main content of a page as plain text.
type TextExtractor struct {
	// Fallback extracts text when trafilatura finds no main content,
	// which is common on short pages. If nil, such pages yield EPARSE.
	Fallback cannibal.TextExtractor
}

// NewTextExtractor creates a new TextExtractor with an optional fallback.
func NewTextExtractor(fallback cannibal.TextExtractor) *TextExtractor {
	return &TextExtractor{Fallback: fallback}
}

// ExtractText returns the page's main content with whitespace collapsed.
func (e *TextExtractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err == nil && result != nil {
		if text := strings.Join(strings.Fields(result.ContentText), " "); text != "" {
			return text, nil
		}
	}

	if e.Fallback != nil {
		return e.Fallback.ExtractText(rawHTML)
	}
	if err != nil {
		return "", cannibal.Errorf(cannibal.EPARSE, "no main content: %v", err)
	}
	return "", cannibal.Errorf(cannibal.EPARSE, "no main content")
}
