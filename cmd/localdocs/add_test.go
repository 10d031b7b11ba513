package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jubalm/localdocs"
	"github.com/jubalm/localdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAddDeps wires an add command against in-memory mocks. Added pages
// are recorded keyed by URL.
func newAddDeps() (*Dependencies, *sync.Map, *bytes.Buffer, *bytes.Buffer) {
	var added sync.Map
	var stdout, stderr bytes.Buffer

	deps := &Dependencies{
		Ctx:    context.Background(),
		Stdout: &stdout,
		Stderr: &stderr,
		Pages: &mock.PageFetcher{
			FetchPageFn: func(ctx context.Context, url string) (*localdocs.Page, error) {
				return &localdocs.Page{URL: url, Title: "Page", Content: "# Page"}, nil
			},
		},
		Writer: &mock.PageWriter{
			AddPageFn: func(ctx context.Context, page *localdocs.Page) (string, error) {
				added.Store(page.URL, page)
				return "cafe0001", nil
			},
		},
	}
	return deps, &added, &stdout, &stderr
}

func TestAddCommand(t *testing.T) {
	t.Parallel()

	t.Run("adds URLs from arguments", func(t *testing.T) {
		t.Parallel()

		deps, added, stdout, _ := newAddDeps()
		cmd := &AddCmd{
			URLs:        []string{"https://example.com/a", "https://example.com/b"},
			Concurrency: 2,
		}
		require.NoError(t, cmd.Run(deps))

		_, okA := added.Load("https://example.com/a")
		_, okB := added.Load("https://example.com/b")
		assert.True(t, okA)
		assert.True(t, okB)
		assert.Contains(t, stdout.String(), "Added 2/2 documents.")
	})

	t.Run("reads URLs from a file skipping blanks and comments", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "urls.txt")
		content := "https://example.com/a\n\n# comment\nhttps://example.com/b\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		deps, added, _, _ := newAddDeps()
		cmd := &AddCmd{FromFile: path, Concurrency: 1}
		require.NoError(t, cmd.Run(deps))

		count := 0
		added.Range(func(_, _ any) bool { count++; return true })
		assert.Equal(t, 2, count)
	})

	t.Run("discovers URLs from a sitemap with filters", func(t *testing.T) {
		t.Parallel()

		deps, added, stdout, _ := newAddDeps()
		deps.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *localdocs.URLFilter) ([]string, error) {
				assert.Equal(t, "https://example.com", baseURL)
				require.NotNil(t, filter)
				assert.Len(t, filter.Include, 1)
				return []string{"https://example.com/docs/intro"}, nil
			},
		}

		cmd := &AddCmd{Sitemap: "https://example.com", Filter: []string{`/docs/`}, Concurrency: 1}
		require.NoError(t, cmd.Run(deps))

		_, ok := added.Load("https://example.com/docs/intro")
		assert.True(t, ok)
		assert.Contains(t, stdout.String(), "Found 1 URLs in sitemap")
	})

	t.Run("invalid filter pattern is an error", func(t *testing.T) {
		t.Parallel()

		deps, _, _, _ := newAddDeps()
		cmd := &AddCmd{Sitemap: "https://example.com", Filter: []string{`[`}, Concurrency: 1}
		assert.Error(t, cmd.Run(deps))
	})

	t.Run("no URLs is an error", func(t *testing.T) {
		t.Parallel()

		deps, _, _, _ := newAddDeps()
		assert.Error(t, (&AddCmd{Concurrency: 1}).Run(deps))
	})

	t.Run("rejects invalid URLs before fetching", func(t *testing.T) {
		t.Parallel()

		deps, added, _, _ := newAddDeps()
		cmd := &AddCmd{URLs: []string{"ftp://example.com/a"}, Concurrency: 1}
		assert.Error(t, cmd.Run(deps))

		count := 0
		added.Range(func(_, _ any) bool { count++; return true })
		assert.Zero(t, count)
	})

	t.Run("fetch failures are reported but do not stop the batch", func(t *testing.T) {
		t.Parallel()

		deps, _, stdout, stderr := newAddDeps()
		deps.Pages = &mock.PageFetcher{
			FetchPageFn: func(ctx context.Context, url string) (*localdocs.Page, error) {
				if url == "https://example.com/bad" {
					return nil, localdocs.Errorf(localdocs.EUNAVAILABLE, "fetch failed")
				}
				return &localdocs.Page{URL: url, Content: "# ok"}, nil
			},
		}

		cmd := &AddCmd{
			URLs:        []string{"https://example.com/good", "https://example.com/bad"},
			Concurrency: 1,
		}
		assert.Error(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Added 1/2 documents.")
		assert.Contains(t, stderr.String(), "https://example.com/bad")
	})
}
