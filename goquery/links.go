// Package goquery implements page text and link extraction with goquery.
package goquery

import (
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cannibal"
)

// Ensure LinkSelector implements cannibal.LinkSelector at compile time.
var _ cannibal.LinkSelector = (*LinkSelector)(nil)

// LinkSelector extracts same-origin anchor targets from HTML.
type LinkSelector struct{}

// NewLinkSelector creates a new LinkSelector.
func NewLinkSelector() *LinkSelector {
	return &LinkSelector{}
}

// ExtractLinks parses HTML and returns the normalized URLs of every
// anchor that shares baseURL's origin, deduplicated and sorted.
// A <base href> element, when present, replaces baseURL for resolution.
// Non-HTTP hrefs (javascript:, mailto:, etc.) and malformed hrefs are skipped.
// rel="nofollow" is a ranking hint, not a crawl boundary, so such links are kept.
func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]string, error) {
	page, err := url.Parse(baseURL)
	if err != nil || page.Host == "" {
		return nil, cannibal.Errorf(cannibal.EINVALID, "invalid base URL %q", baseURL)
	}
	origin := cannibal.Origin(page)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cannibal.Errorf(cannibal.EPARSE, "failed to parse HTML: %v", err)
	}

	base := page
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if resolved := cannibal.NormalizeURL(page, href); resolved != "" {
			if u, err := url.Parse(resolved); err == nil {
				base = u
			}
		}
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href], area[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if isNonHTTPLink(href) {
			return
		}
		resolved := cannibal.NormalizeURL(base, href)
		if resolved == "" {
			return
		}
		if cannibal.OriginOf(resolved) != origin {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	slices.Sort(links)
	return links, nil
}

// isNonHTTPLink reports whether href uses a scheme that is never crawled.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "ftp:", "sms:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
