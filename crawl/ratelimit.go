package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/cannibal"
	"golang.org/x/time/rate"
)

var _ cannibal.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-origin rate limiting using token buckets.
// Each origin gets its own limiter, so requests to different origins
// proceed concurrently while requests within one origin are spaced out.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a new DomainLimiter allowing rps requests per
// second to each origin, with a burst of 1. A non-positive rps disables
// limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the origin.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, origin string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[origin]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[origin] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
