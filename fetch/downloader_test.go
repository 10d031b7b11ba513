package fetch_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jubalm/localdocs"
	"github.com/jubalm/localdocs/fetch"
	"github.com/jubalm/localdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_DownloadAll(t *testing.T) {
	t.Parallel()

	t.Run("downloads and stores all URLs", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		stored := make(map[string]string)

		d := &fetch.Downloader{
			Pages: &mock.PageFetcher{
				FetchPageFn: func(ctx context.Context, url string) (*localdocs.Page, error) {
					return &localdocs.Page{URL: url, Content: "content of " + url}, nil
				},
			},
			Store: &mock.PageWriter{
				AddPageFn: func(ctx context.Context, page *localdocs.Page) (string, error) {
					mu.Lock()
					defer mu.Unlock()
					stored[page.URL] = page.Content
					return "id-" + page.URL, nil
				},
			},
		}

		res, err := d.DownloadAll(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/c",
		})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Added)
		assert.Equal(t, 0, res.Failed)
		assert.Len(t, stored, 3)
	})

	t.Run("skips duplicate URLs within the batch", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		fetched := 0

		d := &fetch.Downloader{
			Pages: &mock.PageFetcher{
				FetchPageFn: func(ctx context.Context, url string) (*localdocs.Page, error) {
					mu.Lock()
					fetched++
					mu.Unlock()
					return &localdocs.Page{URL: url, Content: "x"}, nil
				},
			},
			Store: &mock.PageWriter{
				AddPageFn: func(ctx context.Context, page *localdocs.Page) (string, error) {
					return "id", nil
				},
			},
		}

		res, err := d.DownloadAll(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/a",
			"https://example.com/b",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, fetched)
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, 2, res.Attempted)
	})

	t.Run("failures do not abort the batch", func(t *testing.T) {
		t.Parallel()

		d := &fetch.Downloader{
			Pages: &mock.PageFetcher{
				FetchPageFn: func(ctx context.Context, url string) (*localdocs.Page, error) {
					if url == "https://example.com/bad" {
						return nil, localdocs.Errorf(localdocs.EUNAVAILABLE, "fetch failed")
					}
					return &localdocs.Page{URL: url, Content: "x"}, nil
				},
			},
			Store: &mock.PageWriter{
				AddPageFn: func(ctx context.Context, page *localdocs.Page) (string, error) {
					return "id", nil
				},
			},
		}

		res, err := d.DownloadAll(context.Background(), []string{
			"https://example.com/good",
			"https://example.com/bad",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Added)
		assert.Equal(t, 1, res.Failed)
	})

	t.Run("reports progress per URL", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var updates []fetch.Progress

		d := &fetch.Downloader{
			Pages: &mock.PageFetcher{
				FetchPageFn: func(ctx context.Context, url string) (*localdocs.Page, error) {
					return &localdocs.Page{URL: url, Content: "x"}, nil
				},
			},
			Store: &mock.PageWriter{
				AddPageFn: func(ctx context.Context, page *localdocs.Page) (string, error) {
					return "abc12345", nil
				},
			},
			Concurrency: 1,
			OnProgress: func(p fetch.Progress) {
				mu.Lock()
				updates = append(updates, p)
				mu.Unlock()
			},
		}

		_, err := d.DownloadAll(context.Background(), []string{
			"https://example.com/a",
			"https://example.com/b",
		})

		require.NoError(t, err)
		require.Len(t, updates, 2)
		assert.Equal(t, 1, updates[0].Completed)
		assert.Equal(t, 2, updates[1].Completed)
		assert.Equal(t, 2, updates[0].Total)
		assert.Equal(t, "abc12345", updates[0].ID)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		d := &fetch.Downloader{
			Pages: &mock.PageFetcher{},
			Store: &mock.PageWriter{},
		}

		res, err := d.DownloadAll(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 0, res.Attempted)
	})
}

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows first request immediately", func(t *testing.T) {
		t.Parallel()

		l := fetch.NewDomainLimiter(1)
		require.NoError(t, l.Wait(context.Background(), "example.com"))
	})

	t.Run("separate domains do not share a bucket", func(t *testing.T) {
		t.Parallel()

		l := fetch.NewDomainLimiter(0.001)
		require.NoError(t, l.Wait(context.Background(), "a.example.com"))
		require.NoError(t, l.Wait(context.Background(), "b.example.com"))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		l := fetch.NewDomainLimiter(0.001)
		require.NoError(t, l.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, l.Wait(ctx, "example.com"))
	})
}
