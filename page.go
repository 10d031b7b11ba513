package localdocs

import (
	"context"
	"regexp"
)

// Page represents fetched document content ready for storage.
type Page struct {
	URL     string
	Title   string
	Content string // Markdown
	// Description is a short summary pulled from page metadata, used to
	// pre-fill document metadata on first add. May be empty.
	Description string
}

// PageFetcher retrieves a single URL and produces storable content.
// Implementations hide retry logic, content extraction, and markdown
// conversion.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*Page, error)
}

// PageWriter persists fetched pages. Implementations assign a stable
// document ID derived from the page URL.
type PageWriter interface {
	AddPage(ctx context.Context, page *Page) (id string, err error)
}

// Fetcher retrieves raw content from URLs over HTTP.
type Fetcher interface {
	// Fetch returns the response body and its media type.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, mediaType string, err error)
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}

// PageMeta holds metadata scraped from an HTML page head.
type PageMeta struct {
	Title       string
	Description string
}

// MetaExtractor reads title and description from raw HTML.
type MetaExtractor interface {
	Meta(html string) (*PageMeta, error)
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap.
	// It first checks robots.txt for sitemap directives, then falls back
	// to /sitemap.xml. Sitemap indexes are resolved recursively.
	//
	// The filter can be used to include/exclude URLs by pattern.
	// If filter is nil, all URLs are returned.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern
	// are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
