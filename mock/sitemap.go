package mock

import (
	"context"

	"github.com/jubalm/localdocs"
)

var _ localdocs.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of localdocs.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *localdocs.URLFilter) ([]string, error)
}

func (m *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *localdocs.URLFilter) ([]string, error) {
	return m.DiscoverURLsFn(ctx, baseURL, filter)
}
