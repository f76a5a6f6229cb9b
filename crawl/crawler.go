// Package crawl crawls a site breadth-first and analyzes the retrieved
// pages for keyword cannibalization.
package crawl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/keyword"
)

const (
	// frontierExpectedURLs sizes the frontier's Bloom prefilter.
	frontierExpectedURLs = 10000
	// drainTimeout bounds how long in-flight results are awaited after
	// the coordinator stops.
	drainTimeout = 5 * time.Second
)

// Crawler fetches every page reachable from the seeds, breadth-first and
// within the seeds' origins.
//
// One coordinator goroutine owns the frontier: it dispatches links to a
// pool of workers and is the only reader of their results, so the
// visited set is never mutated concurrently.
type Crawler struct {
	Fetcher       cannibal.Fetcher
	TextExtractor cannibal.TextExtractor
	LinkSelector  cannibal.LinkSelector

	// Optional collaborators.
	RateLimiter cannibal.DomainLimiter
	Robots      cannibal.RobotsChecker
	Sitemaps    cannibal.SitemapService
	Filter      *cannibal.URLFilter
	// NewFrontier creates the queue for each crawl. Defaults to a
	// Bloom-backed Frontier.
	NewFrontier func() cannibal.URLFrontier

	// Concurrency is the number of fetch workers. Defaults to
	// cannibal.DefaultConcurrency.
	Concurrency int
	// MaxPages bounds the number of fetches. Defaults to cannibal.DefaultMaxPages.
	MaxPages int
	// MaxDepth bounds link hops from the seeds. Negative means unlimited.
	MaxDepth int
	// FetchTimeout bounds each fetch attempt. Zero leaves it to the Fetcher.
	FetchTimeout time.Duration
	// RetryDelays holds one backoff delay per retry of a transient failure.
	RetryDelays []time.Duration
	// SkipDuplicateContent drops pages whose text repeats an earlier page.
	SkipDuplicateContent bool

	Logger *slog.Logger
}

// CrawlResult is the outcome of a crawl. Pages and Failures are sorted by URL.
type CrawlResult struct {
	Pages    []*cannibal.Page
	Failures []*cannibal.FetchError
	// Skipped counts URLs disallowed by robots.txt, redirects that leave
	// the crawl scope or land on a page already fetched, and duplicate pages.
	Skipped int
	// Bytes is the total size of the fetched markup.
	Bytes int
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Queued    int
	URL       string
	Error     error
	// Bytes is the total markup size fetched; set on ProgressFinished.
	Bytes int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressCompleted ProgressType = iota
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
// It is called from the coordinator goroutine only.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	link  cannibal.DiscoveredLink
	page  *cannibal.Page
	bytes int
	err   *cannibal.FetchError
}

// Crawl fetches the seeds and the same-origin pages they lead to.
// Seeds must be absolute http(s) URLs; an invalid seed fails the crawl
// before any request is made. Fetch failures are recorded in the result
// and never abort the crawl. If ctx is canceled, no new fetches are
// dispatched and the partial result is returned with ctx's error.
func (c *Crawler) Crawl(ctx context.Context, seeds []string, progress ProgressFunc) (*CrawlResult, error) {
	if len(seeds) == 0 {
		return nil, cannibal.Errorf(cannibal.EINVALID, "at least one seed URL required")
	}

	scope := make(map[string]bool)
	frontier := c.newFrontier()
	var seedURLs []string
	for _, raw := range seeds {
		u, err := cannibal.ParseSeed(raw)
		if err != nil {
			return nil, err
		}
		scope[cannibal.Origin(u)] = true
		seedURLs = append(seedURLs, u.String())
		frontier.Push(cannibal.DiscoveredLink{URL: u.String(), Depth: 0})
	}

	if c.Sitemaps != nil && c.MaxDepth != 0 {
		for _, seed := range seedURLs {
			urls, err := c.Sitemaps.DiscoverURLs(ctx, seed)
			if err != nil {
				c.logger().Warn("sitemap discovery failed", "url", seed, "err", err)
				continue
			}
			c.enqueue(frontier, scope, urls, 0)
		}
	}

	var result CrawlResult
	completed := 0
	// fetched holds the final URL of every page in the result, so a
	// document reached both directly and through a redirect is kept once.
	fetched := make(map[string]bool)
	skip := func(link cannibal.DiscoveredLink, reason string) {
		result.Skipped++
		c.logger().Info("skip", "url", link.URL, "reason", reason)
		if progress != nil {
			progress(ProgressEvent{Type: ProgressSkipped, Completed: completed, Queued: frontier.Len(), URL: link.URL})
		}
	}
	handleResult := func(res *crawlResult) {
		completed++
		if res.err != nil {
			c.logger().Warn("fetch failed", "url", res.link.URL, "err", res.err)
			result.Failures = append(result.Failures, res.err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Queued: frontier.Len(), URL: res.link.URL, Error: res.err})
			}
			return
		}

		origin := cannibal.OriginOf(res.page.URL)
		if !scope[origin] && res.link.Depth == 0 {
			// A seed that redirects to another origin moves the crawl there.
			scope[origin] = true
		}
		switch {
		case !scope[origin]:
			skip(res.link, "redirected out of scope to "+res.page.URL)
			return
		case fetched[res.page.URL]:
			skip(res.link, "redirected to fetched page "+res.page.URL)
			return
		}
		fetched[res.page.URL] = true
		result.Pages = append(result.Pages, res.page)
		result.Bytes += res.bytes
		c.enqueue(frontier, scope, res.page.Links, res.link.Depth)
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, Queued: frontier.Len(), URL: res.link.URL})
		}
	}
	visited := func(url string) bool { return fetched[url] }

	c.walkFrontier(ctx, frontier, visited, handleResult, skip)

	if c.SkipDuplicateContent {
		result.Skipped += dedupeContent(&result)
	}
	slices.SortFunc(result.Pages, func(a, b *cannibal.Page) int { return cmp.Compare(a.URL, b.URL) })
	slices.SortFunc(result.Failures, func(a, b *cannibal.FetchError) int { return cmp.Compare(a.URL, b.URL) })

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Bytes: result.Bytes})
	}
	return &result, ctx.Err()
}

func (c *Crawler) newFrontier() cannibal.URLFrontier {
	if c.NewFrontier != nil {
		return c.NewFrontier()
	}
	return NewFrontier(frontierExpectedURLs)
}

// walkFrontier runs the coordinator loop until the frontier is exhausted,
// MaxPages fetches have been dispatched, or ctx is canceled.
func (c *Crawler) walkFrontier(
	ctx context.Context,
	frontier cannibal.URLFrontier,
	visited func(url string) bool,
	handleResult func(*crawlResult),
	skip func(link cannibal.DiscoveredLink, reason string),
) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = cannibal.DefaultConcurrency
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = cannibal.DefaultMaxPages
	}

	// Channels for worker coordination
	workCh := make(chan cannibal.DiscoveredLink, concurrency)
	resultCh := make(chan crawlResult)

	// Start worker pool
	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range workCh {
				result := c.processURL(ctx, link)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close result channel when all workers are done
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// next pops the next link the crawler may fetch. Links already
	// retrieved as a redirect target are dropped without a fetch.
	next := func() *cannibal.DiscoveredLink {
		for {
			link, ok := frontier.Pop()
			if !ok {
				return nil
			}
			if visited(link.URL) {
				continue
			}
			if !c.allowed(ctx, link.URL) {
				skip(link, "disallowed by robots.txt")
				continue
			}
			return &link
		}
	}

	dispatched := 0 // URLs sent to workers
	pending := 0    // URLs currently being processed
	nextLink := next()

coordinatorLoop:
	for {
		// Check termination conditions
		if (nextLink == nil || dispatched >= maxPages) && pending == 0 {
			break coordinatorLoop
		}

		if ctx.Err() != nil {
			break coordinatorLoop
		}

		if nextLink != nil && dispatched < maxPages {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *nextLink:
				dispatched++
				pending++
				nextLink = nil
			case res := <-resultCh:
				pending--
				handleResult(&res)
			}
		} else {
			// No more work to dispatch, just receive results
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handleResult(&res)
			}
		}

		// Try to get next link if we don't have one
		if nextLink == nil && dispatched < maxPages {
			nextLink = next()
		}
	}

	// Signal workers to stop and drain remaining results
	close(workCh)

	timeout := time.After(drainTimeout)
drainLoop:
	for {
		select {
		case res, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			handleResult(&res)
		case <-timeout:
			break drainLoop
		}
	}
}

// enqueue pushes in-scope links found at depth onto the frontier.
func (c *Crawler) enqueue(frontier cannibal.URLFrontier, scope map[string]bool, links []string, depth int) {
	next := depth + 1
	if c.MaxDepth >= 0 && next > c.MaxDepth {
		return
	}
	for _, link := range links {
		if !scope[cannibal.OriginOf(link)] {
			continue
		}
		if !c.Filter.Match(link) {
			continue
		}
		frontier.Push(cannibal.DiscoveredLink{URL: link, Depth: next})
	}
}

// processURL fetches one page and extracts its links and text.
// It runs on a worker and touches no shared state.
func (c *Crawler) processURL(ctx context.Context, link cannibal.DiscoveredLink) crawlResult {
	result := crawlResult{link: link}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, cannibal.OriginOf(link.URL)); err != nil {
			result.err = cannibal.NewFetchError(link.URL, err)
			return result
		}
	}

	resp, err := FetchWithRetryDelays(ctx, link.URL, c.fetch, c.Logger, c.RetryDelays)
	if err != nil {
		result.err = cannibal.NewFetchError(link.URL, err)
		return result
	}
	result.bytes = len(resp.HTML)

	// The page is identified by where the markup came from, and its
	// relative links resolve against that address.
	pageURL := link.URL
	if final := cannibal.NormalizeURL(nil, resp.URL); final != "" {
		pageURL = final
	}

	links, err := c.LinkSelector.ExtractLinks(resp.HTML, pageURL)
	if err != nil {
		c.logger().Debug("link extraction failed", "url", pageURL, "err", err)
	}

	// Unparsable markup is an empty page, not a failure.
	text, err := c.TextExtractor.ExtractText(resp.HTML)
	if err != nil {
		c.logger().Warn("text extraction failed", "url", pageURL, "err", err)
		text = ""
	}

	result.page = cannibal.NewPage(pageURL, text, keyword.CountWords(text), links, ContentHash(text))
	return result
}

// allowed asks the robots checker about url. The check runs on the
// coordinator, so it is bounded by FetchTimeout like a page fetch.
func (c *Crawler) allowed(ctx context.Context, url string) bool {
	if c.Robots == nil {
		return true
	}
	if c.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.FetchTimeout)
		defer cancel()
	}
	return c.Robots.Allowed(ctx, url)
}

// fetch performs one attempt bounded by FetchTimeout.
func (c *Crawler) fetch(ctx context.Context, url string) (*cannibal.Response, error) {
	if c.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.FetchTimeout)
		defer cancel()
	}
	return c.Fetcher.Fetch(ctx, url)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// dedupeContent keeps the lexicographically first page of each content
// hash and returns the number of pages removed. Pages with no text are
// never considered duplicates.
func dedupeContent(result *CrawlResult) int {
	slices.SortFunc(result.Pages, func(a, b *cannibal.Page) int { return cmp.Compare(a.URL, b.URL) })
	seen := make(map[string]bool)
	kept := result.Pages[:0]
	for _, page := range result.Pages {
		if page.Text != "" {
			if seen[page.ContentHash] {
				continue
			}
			seen[page.ContentHash] = true
		}
		kept = append(kept, page)
	}
	removed := len(result.Pages) - len(kept)
	result.Pages = kept
	return removed
}
