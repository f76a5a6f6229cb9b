package cannibal

import "context"

// DiscoveredLink is a URL waiting in the crawl frontier.
type DiscoveredLink struct {
	URL   string
	Depth int // link hops from a seed
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next URL, shallowest first.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-origin rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the origin.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, origin string) error
}
