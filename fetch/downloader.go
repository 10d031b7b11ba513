package fetch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jubalm/localdocs"
	"github.com/jubalm/localdocs/bloom"
)

// DefaultConcurrency bounds how many URLs are fetched at once.
const DefaultConcurrency = 3

// Progress describes the outcome of one URL in a batch download.
type Progress struct {
	URL       string
	ID        string // document ID, set on success
	Completed int
	Total     int
	Err       error // set on failure
}

// ProgressFunc receives a Progress update after each URL finishes.
type ProgressFunc func(Progress)

// Downloader fetches a batch of URLs concurrently and stores the results.
// Duplicate URLs within a batch are skipped.
type Downloader struct {
	Pages localdocs.PageFetcher
	Store localdocs.PageWriter

	// Concurrency bounds parallel fetches. Zero means DefaultConcurrency.
	Concurrency int

	// OnProgress, if set, is called after each URL completes or fails.
	OnProgress ProgressFunc
}

// Result summarizes a batch download.
type Result struct {
	Added     int
	Failed    int
	Skipped   int // duplicates within the batch
	Attempted int
}

// DownloadAll fetches and stores every URL. Individual failures are
// reported through OnProgress and tallied; they do not abort the batch.
// The error is non-nil only when the context is canceled.
func (d *Downloader) DownloadAll(ctx context.Context, urls []string) (*Result, error) {
	seen := bloom.NewFilter(uint(len(urls))+1, 0.001)

	var res Result
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen.Seen(u) {
			res.Skipped++
			continue
		}
		unique = append(unique, u)
	}
	res.Attempted = len(unique)

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	completed := 0

	for _, u := range unique {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			id, err := d.download(ctx, u)

			mu.Lock()
			completed++
			if err != nil {
				res.Failed++
			} else {
				res.Added++
			}
			p := Progress{
				URL:       u,
				ID:        id,
				Completed: completed,
				Total:     res.Attempted,
				Err:       err,
			}
			mu.Unlock()

			if d.OnProgress != nil {
				d.OnProgress(p)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return &res, err
	}
	return &res, nil
}

func (d *Downloader) download(ctx context.Context, url string) (string, error) {
	page, err := d.Pages.FetchPage(ctx, url)
	if err != nil {
		return "", err
	}
	return d.Store.AddPage(ctx, page)
}
