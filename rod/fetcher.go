// Package rod implements cannibal.Fetcher with headless Chrome so pages
// that build their content with JavaScript can be analyzed.
package rod

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/cannibal"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default timeout for rendering one page.
const DefaultFetchTimeout = cannibal.DefaultFetchTimeout

// Ensure Fetcher implements cannibal.Fetcher at compile time.
var _ cannibal.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *browserManager
	timeout      time.Duration
	recycleAfter int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for rendering one page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRecycleAfter sets how many pages are rendered before Chrome is
// restarted. Defaults to DefaultRecycleAfter.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := newBrowserManager(f.recycleAfter)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// A document response outside 2xx is reported as a FetchError with its
// status code, like the HTTP fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*cannibal.Response, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, &cannibal.FetchError{URL: url, Err: err}
	}

	browser := f.manager.Browser()
	if browser == nil {
		return nil, cannibal.Errorf(cannibal.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, &cannibal.FetchError{URL: url, Err: fmt.Errorf("opening page: %w", err)}
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	// Redirect hops never reach NetworkResponseReceived, so the
	// document response carries the final URL.
	status := 0
	finalURL := url
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		if e.Response.URL != "" {
			finalURL = e.Response.URL
		}
		return true
	})

	if err := page.Navigate(url); err != nil {
		return nil, f.fetchError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, f.fetchError(ctx, url, err)
	}
	waitResponse()

	if status != 0 && (status < http.StatusOK || status > 299) {
		return nil, &cannibal.FetchError{URL: url, StatusCode: status}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, f.fetchError(ctx, url, err)
	}
	return &cannibal.Response{URL: finalURL, HTML: html}, nil
}

// fetchError prefers the context error so timeouts stay transient.
func (f *Fetcher) fetchError(ctx context.Context, url string, err error) *cannibal.FetchError {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &cannibal.FetchError{URL: url, Err: ctxErr}
	}
	return &cannibal.FetchError{URL: url, Err: err}
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
