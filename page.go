package cannibal

import (
	"context"
	"slices"
)

// Page represents a fetched page of the crawl corpus.
// A Page is immutable once created.
type Page struct {
	URL         string
	Text        string
	WordCount   int
	Links       []string // sorted, deduplicated, same-origin
	ContentHash string
}

// NewPage returns a Page with links sorted and deduplicated.
func NewPage(url, text string, wordCount int, links []string, contentHash string) *Page {
	set := slices.Clone(links)
	slices.Sort(set)
	set = slices.Compact(set)
	return &Page{
		URL:         url,
		Text:        text,
		WordCount:   wordCount,
		Links:       set,
		ContentHash: contentHash,
	}
}

// Response is the markup of a successfully fetched page.
type Response struct {
	// URL is the address the markup was served from. It differs from
	// the requested URL when the server redirected.
	URL  string
	HTML string
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single bounded retrieval of the URL, following
	// redirects, and returns the markup with its final URL. Transport
	// failures and non-2xx statuses are returned as *FetchError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// TextExtractor collapses page markup to text.
type TextExtractor interface {
	// ExtractText returns the visible text of the markup with word
	// boundaries preserved. Markup that cannot be parsed yields an
	// EPARSE error.
	ExtractText(html string) (string, error)
}

// LinkSelector extracts same-origin links from page markup.
type LinkSelector interface {
	// ExtractLinks resolves anchor targets against baseURL and returns
	// normalized, deduplicated URLs sharing baseURL's origin.
	// Malformed hrefs are skipped.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// RobotsChecker reports whether a crawler may fetch a URL.
type RobotsChecker interface {
	Allowed(ctx context.Context, url string) bool
}

// SitemapService discovers URLs listed in a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the URLs of baseURL's sitemaps.
	// Returns an empty slice (not nil) if no sitemaps are found.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// PageStore persists crawled pages for inspection.
// Saved pages become visible only after Commit.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
