// Package mock provides function-field test doubles for the domain
// interfaces.
package mock

import (
	"context"

	"github.com/jubalm/localdocs"
)

var _ localdocs.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of localdocs.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, string, error)
}

func (m *Fetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	return m.FetchFn(ctx, url)
}

var _ localdocs.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of localdocs.PageFetcher.
type PageFetcher struct {
	FetchPageFn func(ctx context.Context, url string) (*localdocs.Page, error)
}

func (m *PageFetcher) FetchPage(ctx context.Context, url string) (*localdocs.Page, error) {
	return m.FetchPageFn(ctx, url)
}
