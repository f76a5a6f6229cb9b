// Package http implements page fetching, robots.txt checks, and sitemap
// discovery over plain HTTP.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/fwojciec/cannibal"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = cannibal.DefaultFetchTimeout

// DefaultUserAgent identifies the crawler to servers and robots.txt.
const DefaultUserAgent = "cannibal/1.0 (+https://github.com/fwojciec/cannibal)"

// DefaultMaxBodySize caps the bytes read from one response.
const DefaultMaxBodySize = 10 << 20

// Ensure Fetcher implements cannibal.Fetcher at compile time.
var _ cannibal.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// It does not execute JavaScript; see rod.Fetcher for rendered pages.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, following
// redirects. Any failure, including a non-2xx status, is returned as
// *cannibal.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*cannibal.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &cannibal.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &cannibal.FetchError{URL: url, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &cannibal.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &cannibal.FetchError{URL: url, Err: unwrapURLError(err)}
	}

	// resp.Request is the last request of the redirect chain.
	return &cannibal.Response{URL: resp.Request.URL.String(), HTML: string(body)}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats
// the method and URL that FetchError already reports. Timeouts keep the
// wrapper so FetchError.Transient still sees net.Error.Timeout.
func unwrapURLError(err error) error {
	var ue *neturl.Error
	if errors.As(err, &ue) && !ue.Timeout() {
		return ue.Err
	}
	return err
}
