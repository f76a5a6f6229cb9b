package mock

import "github.com/fwojciec/cannibal"

var _ cannibal.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of cannibal.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}

var _ cannibal.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of cannibal.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]string, error) {
	return s.ExtractLinksFn(html, baseURL)
}
