package mock

import (
	"context"

	"github.com/fwojciec/cannibal"
)

var _ cannibal.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of cannibal.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ cannibal.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker is a mock implementation of cannibal.RobotsChecker.
type RobotsChecker struct {
	AllowedFn func(ctx context.Context, url string) bool
}

func (c *RobotsChecker) Allowed(ctx context.Context, url string) bool {
	return c.AllowedFn(ctx, url)
}
