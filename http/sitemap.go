package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/jubalm/localdocs"
)

// Ensure SitemapService implements localdocs.SitemapService.
var _ localdocs.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP
// client. If client is nil, a client carrying the private-address guard
// is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = &http.Client{
			Timeout:   DefaultFetchTimeout,
			Transport: newGuardedTransport(),
		}
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs from a site's sitemap. Sitemap locations come
// from robots.txt Sitemap: directives, falling back to /sitemap.xml; sitemap
// indexes are resolved recursively. Returns an empty slice (not nil) when no
// sitemap exists.
//
// When baseURL has a non-root path (e.g. https://example.com/docs/), only
// URLs under that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *localdocs.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	root := *base
	root.Path = ""

	sitemaps := s.sitemapLocations(ctx, &root)
	if len(sitemaps) == 0 {
		return []string{}, nil
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	urls := []string{}

	var walk func(sitemapURL string) error
	walk = func(sitemapURL string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if seenSitemaps[sitemapURL] {
			return nil
		}
		seenSitemaps[sitemapURL] = true

		body, err := s.get(ctx, sitemapURL)
		if err != nil {
			return err
		}
		defer body.Close()

		doc := etree.NewDocument()
		if _, err := doc.ReadFrom(body); err != nil {
			return fmt.Errorf("parsing sitemap XML: %w", err)
		}
		rootEl := doc.Root()
		if rootEl == nil {
			return fmt.Errorf("empty sitemap XML at %s", sitemapURL)
		}

		if rootEl.Tag == "sitemapindex" {
			for _, sm := range rootEl.SelectElements("sitemap") {
				if loc := locText(sm); loc != "" {
					if err := walk(loc); err != nil {
						return err
					}
				}
			}
			return nil
		}

		for _, u := range rootEl.SelectElements("url") {
			loc := locText(u)
			if loc == "" || seenURLs[loc] {
				continue
			}
			seenURLs[loc] = true
			if !underPath(loc, pathPrefix) || !filter.Match(loc) {
				continue
			}
			urls = append(urls, loc)
		}
		return nil
	}

	for _, sm := range sitemaps {
		if err := walk(sm); err != nil {
			return nil, err
		}
	}

	return urls, nil
}

// locText returns the trimmed text of an element's <loc> child.
func locText(el *etree.Element) string {
	loc := el.SelectElement("loc")
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(loc.Text())
}

// underPath checks that a URL's path sits under the prefix, respecting path
// boundaries: /docs matches /docs/intro but not /documentation.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix) || parsed.Path+"/" == prefix
}

// sitemapLocations reads Sitemap: directives from robots.txt, falling back
// to /sitemap.xml when robots.txt is missing or lists none.
func (s *SitemapService) sitemapLocations(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if body, err := s.get(ctx, robotsURL.String()); err == nil {
		var sitemaps []string
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
				if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
					sitemaps = append(sitemaps, u)
				}
			}
		}
		body.Close()
		if len(sitemaps) > 0 {
			return sitemaps
		}
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	if s.exists(ctx, fallback.String()) {
		return []string{fallback.String()}
	}
	return nil
}

// get fetches a URL and returns the response body.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// exists checks whether a URL answers 200 to a HEAD request.
func (s *SitemapService) exists(ctx context.Context, targetURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
