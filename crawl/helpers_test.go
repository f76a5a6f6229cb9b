package crawl_test

import (
	"context"
	"net/http"
	"sync"

	"github.com/fwojciec/cannibal"
	"github.com/fwojciec/cannibal/crawl"
	"github.com/fwojciec/cannibal/goquery"
	"github.com/fwojciec/cannibal/mock"
)

// site serves fixed pages keyed by absolute URL and counts fetches.
// Unknown URLs answer 404. A URL in redirects is served the page of its
// target, reported under the target's URL.
type site struct {
	mu        sync.Mutex
	pages     map[string]string
	redirects map[string]string
	counts    map[string]int
}

func newSite(pages map[string]string) *site {
	return &site{pages: pages, redirects: make(map[string]string), counts: make(map[string]int)}
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*cannibal.Response, error) {
			s.mu.Lock()
			s.counts[url]++
			final := url
			if target, ok := s.redirects[url]; ok {
				final = target
			}
			html, ok := s.pages[final]
			s.mu.Unlock()
			if err := ctx.Err(); err != nil {
				return nil, &cannibal.FetchError{URL: url, Err: err}
			}
			if !ok {
				return nil, &cannibal.FetchError{URL: url, StatusCode: http.StatusNotFound}
			}
			return &cannibal.Response{URL: final, HTML: html}, nil
		},
		CloseFn: func() error { return nil },
	}
}

func (s *site) fetches(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[url]
}

func (s *site) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

// newTestCrawler returns a crawler over s with real goquery extraction.
func newTestCrawler(s *site) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher:       s.fetcher(),
		TextExtractor: goquery.NewTextExtractor(),
		LinkSelector:  goquery.NewLinkSelector(),
		Concurrency:   4,
		MaxPages:      100,
		MaxDepth:      -1,
	}
}

func pageURLs(pages []*cannibal.Page) []string {
	urls := make([]string, 0, len(pages))
	for _, p := range pages {
		urls = append(urls, p.URL)
	}
	return urls
}
