// Package fetch turns URLs into storable markdown pages. Pipeline handles a
// single URL (fetch, extract, convert, with retry and per-domain rate
// limiting); Downloader runs many URLs concurrently with deduplication.
package fetch

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jubalm/localdocs"
)

// LogFunc receives human-readable progress lines. May be nil.
type LogFunc func(format string, args ...any)

// Ensure Pipeline implements localdocs.PageFetcher at compile time.
var _ localdocs.PageFetcher = (*Pipeline)(nil)

// Pipeline fetches a URL and produces a Page. HTML responses are run
// through the extractor and markdown converter; markdown, plain text, and
// other allowed types are stored verbatim.
type Pipeline struct {
	Fetcher   localdocs.Fetcher
	Extractor localdocs.Extractor
	Converter localdocs.Converter
	Meta      localdocs.MetaExtractor

	// Limiter, if set, throttles requests per domain.
	Limiter *DomainLimiter

	// RetryDelays controls fetch retry backoff. Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	// Logf, if set, receives retry diagnostics.
	Logf LogFunc
}

// FetchPage retrieves the URL and converts it to storable content.
func (p *Pipeline) FetchPage(ctx context.Context, rawURL string) (*localdocs.Page, error) {
	if p.Limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := p.Limiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var body, mediaType string
	err := doWithRetry(ctx, delays, p.Logf, rawURL, func() error {
		var err error
		body, mediaType, err = p.Fetcher.Fetch(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	if body == "" {
		return nil, localdocs.Errorf(localdocs.EINVALID, "downloaded content is empty for %s", rawURL)
	}

	if !isHTML(mediaType, body) {
		return &localdocs.Page{URL: rawURL, Content: body}, nil
	}

	page := &localdocs.Page{URL: rawURL}

	if p.Meta != nil {
		if meta, err := p.Meta.Meta(body); err == nil {
			page.Title = meta.Title
			page.Description = meta.Description
		}
	}

	contentHTML := body
	if p.Extractor != nil {
		result, err := p.Extractor.Extract(body)
		if err == nil && result.ContentHTML != "" {
			contentHTML = result.ContentHTML
			if result.Title != "" {
				page.Title = result.Title
			}
		}
	}

	if p.Converter != nil {
		md, err := p.Converter.Convert(contentHTML)
		if err != nil {
			return nil, err
		}
		page.Content = md
	} else {
		page.Content = contentHTML
	}

	return page, nil
}

// isHTML decides whether the response should go through the extraction
// pipeline. Servers occasionally mislabel HTML as text/plain, so the body
// is sniffed when the media type is inconclusive.
func isHTML(mediaType, body string) bool {
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		return true
	case "text/markdown", "text/x-markdown", "application/json":
		return false
	}
	head := strings.ToLower(strings.TrimSpace(body))
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
