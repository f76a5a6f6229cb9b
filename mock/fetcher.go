package mock

import (
	"context"

	"github.com/fwojciec/cannibal"
)

var _ cannibal.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of cannibal.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*cannibal.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*cannibal.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ cannibal.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of cannibal.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *cannibal.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *cannibal.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
