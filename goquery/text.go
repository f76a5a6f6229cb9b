package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cannibal"
	"golang.org/x/net/html"
)

// Ensure TextExtractor implements cannibal.TextExtractor at compile time.
var _ cannibal.TextExtractor = (*TextExtractor)(nil)

// nonContentSelector matches elements whose text is never visible.
const nonContentSelector = "script, style, noscript, template, svg, iframe, object, head"

// TextExtractor collapses a whole HTML document to its visible text.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText removes non-content markup and returns the remaining text
// with whitespace collapsed. Element boundaries separate words, so
// "<p>one</p><p>two</p>" yields "one two".
func (e *TextExtractor) ExtractText(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", cannibal.Errorf(cannibal.EPARSE, "failed to parse HTML: %v", err)
	}

	doc.Find(nonContentSelector).Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		writeText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " "), nil
}

// inlineElements do not break words: "<b>key</b>word" is one word.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "cite": true,
	"code": true, "data": true, "dfn": true, "em": true, "i": true, "kbd": true,
	"mark": true, "q": true, "s": true, "samp": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "time": true, "u": true, "var": true,
}

// writeText appends the text nodes under n. Every non-inline element is
// padded with spaces so adjacent blocks never merge into one word.
func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}
	pad := n.Type == html.ElementNode && !inlineElements[n.Data]
	if pad {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if pad {
		b.WriteByte(' ')
	}
}
