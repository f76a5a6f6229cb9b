package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/cannibal"
	"github.com/temoto/robotstxt"
)

// maxSitemapDepth bounds sitemap index recursion.
const maxSitemapDepth = 3

// Ensure SitemapService implements cannibal.SitemapService.
var _ cannibal.SitemapService = (*SitemapService)(nil)

// SitemapService lists a site's pages from its sitemaps so they can seed
// the crawl. Sitemaps are named by robots.txt Sitemap: lines, falling
// back to /sitemap.xml.
type SitemapService struct {
	fetcher cannibal.Fetcher
}

// NewSitemapService creates a SitemapService that retrieves robots.txt
// and sitemaps with fetcher. If fetcher is nil, an HTTP Fetcher with
// default settings is used.
func NewSitemapService(fetcher cannibal.Fetcher) *SitemapService {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &SitemapService{fetcher: fetcher}
}

// DiscoverURLs returns the normalized page URLs listed in baseURL's
// sitemaps, in document order and without duplicates. Only URLs on
// baseURL's origin are kept; when baseURL has a path below the root
// (https://example.com/blog/), only URLs under that path are kept.
// Returns an empty slice (not nil) if no sitemaps are found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, cannibal.Errorf(cannibal.EINVALID, "invalid base URL %q", baseURL)
	}

	origin := cannibal.Origin(base)
	w := &sitemapWalk{
		service: s,
		origin:  origin,
		prefix:  pathPrefix(base.Path),
		visited: make(map[string]bool),
		seen:    make(map[string]bool),
		urls:    []string{},
	}

	locations, err := s.robotsSitemaps(ctx, origin)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		// A site without a /sitemap.xml simply has no sitemap.
		if err := w.visit(ctx, origin+"/sitemap.xml", 0); err != nil && !isNotFound(err) {
			return nil, err
		}
		return w.urls, nil
	}
	for _, loc := range locations {
		if err := w.visit(ctx, loc, 0); err != nil {
			return nil, err
		}
	}
	return w.urls, nil
}

// robotsSitemaps returns the sitemaps named by Sitemap: lines in origin's
// robots.txt. A robots.txt that cannot be fetched names none.
func (s *SitemapService) robotsSitemaps(ctx context.Context, origin string) ([]string, error) {
	resp, err := s.fetcher.Fetch(ctx, origin+"/robots.txt")
	if err != nil {
		return nil, ctx.Err()
	}
	robots, err := robotstxt.FromString(resp.HTML)
	if err != nil {
		return nil, nil
	}
	var locations []string
	for _, loc := range robots.Sitemaps {
		if u := cannibal.NormalizeURL(nil, loc); u != "" {
			locations = append(locations, u)
		}
	}
	return locations, nil
}

// sitemapWalk collects page URLs across a tree of sitemaps.
type sitemapWalk struct {
	service *SitemapService
	origin  string
	prefix  string
	visited map[string]bool // sitemap documents
	seen    map[string]bool // page URLs
	urls    []string
}

// visit reads one sitemap document: a <sitemapindex> recurses into its
// children and a <urlset> contributes its in-scope <loc> values.
func (w *sitemapWalk) visit(ctx context.Context, loc string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth > maxSitemapDepth || w.visited[loc] {
		return nil
	}
	w.visited[loc] = true

	resp, err := w.service.fetcher.Fetch(ctx, loc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return cannibal.NewFetchError(loc, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(resp.HTML); err != nil {
		return cannibal.Errorf(cannibal.EPARSE, "parsing sitemap %s: %v", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return cannibal.Errorf(cannibal.EPARSE, "empty sitemap %s", loc)
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := w.visit(ctx, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, page := range locs(root, "url") {
		w.add(page)
	}
	return nil
}

// add records a page URL if it is on the walk's origin and under its prefix.
func (w *sitemapWalk) add(u string) {
	if cannibal.OriginOf(u) != w.origin || w.seen[u] {
		return
	}
	if w.prefix != "" {
		parsed, err := url.Parse(u)
		if err != nil || !strings.HasPrefix(parsed.Path, w.prefix) {
			return
		}
	}
	w.seen[u] = true
	w.urls = append(w.urls, u)
}

// locs returns the normalized <loc> of every child element named entry.
func locs(root *etree.Element, entry string) []string {
	var out []string
	for _, el := range root.SelectElements(entry) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := cannibal.NormalizeURL(nil, loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// pathPrefix turns a base path into a directory prefix: "/docs" matches
// "/docs/intro" but not "/documentation". The root means no prefix.
func pathPrefix(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

func isNotFound(err error) bool {
	var fe *cannibal.FetchError
	return errors.As(err, &fe) && (fe.StatusCode == http.StatusNotFound || fe.StatusCode == http.StatusGone)
}
