package mock

import (
	"context"

	"github.com/fwojciec/cannibal"
)

var _ cannibal.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of cannibal.URLFrontier.
type URLFrontier struct {
	PushFn func(link cannibal.DiscoveredLink) bool
	PopFn  func() (cannibal.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link cannibal.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (cannibal.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ cannibal.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of cannibal.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, origin string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, origin string) error {
	return l.WaitFn(ctx, origin)
}
