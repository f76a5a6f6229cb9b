package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/fwojciec/cannibal"
	"github.com/temoto/robotstxt"
)

// Ensure RobotsChecker implements cannibal.RobotsChecker at compile time.
var _ cannibal.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker answers robots.txt questions, fetching each origin's
// robots.txt at most once. Safe for concurrent use.
//
// A missing robots.txt (4xx) allows everything and a 5xx disallows
// everything. A robots.txt that cannot be retrieved at all, including
// one that exceeds the fetcher's timeout, allows everything so a flaky
// endpoint neither empties nor stalls the crawl.
type RobotsChecker struct {
	fetcher   cannibal.Fetcher
	userAgent string

	mu      sync.Mutex
	origins map[string]*robotsEntry
}

type robotsEntry struct {
	once sync.Once
	data *robotstxt.RobotsData
}

// NewRobotsChecker creates a RobotsChecker that retrieves robots.txt with
// fetcher, so robots requests share the page fetch timeout. If fetcher is
// nil, an HTTP Fetcher with default settings is used; an empty userAgent
// uses DefaultUserAgent.
func NewRobotsChecker(fetcher cannibal.Fetcher, userAgent string) *RobotsChecker {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if fetcher == nil {
		fetcher = NewFetcher(WithUserAgent(userAgent))
	}
	return &RobotsChecker{
		fetcher:   fetcher,
		userAgent: userAgent,
		origins:   make(map[string]*robotsEntry),
	}
}

// Allowed reports whether rawURL may be fetched by this user agent.
func (c *RobotsChecker) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	data := c.robots(ctx, cannibal.Origin(u))
	if data == nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, c.userAgent)
}

// robots returns the cached robots.txt for origin, fetching it on first use.
func (c *RobotsChecker) robots(ctx context.Context, origin string) *robotstxt.RobotsData {
	c.mu.Lock()
	entry, ok := c.origins[origin]
	if !ok {
		entry = &robotsEntry{}
		c.origins[origin] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.data = c.fetch(ctx, origin)
	})
	return entry.data
}

// fetch maps the robots.txt response status onto robotstxt's allow and
// disallow rules. It returns nil when no status was received.
func (c *RobotsChecker) fetch(ctx context.Context, origin string) *robotstxt.RobotsData {
	status, body := 0, ""
	resp, err := c.fetcher.Fetch(ctx, origin+"/robots.txt")
	var fe *cannibal.FetchError
	switch {
	case err == nil:
		status, body = http.StatusOK, resp.HTML
	case errors.As(err, &fe) && fe.StatusCode != 0:
		status = fe.StatusCode
	default:
		return nil
	}

	data, err := robotstxt.FromStatusAndBytes(status, []byte(body))
	if err != nil {
		return nil
	}
	return data
}
