// Package goquery reads page metadata from raw HTML. The title and meta
// description pre-fill a document's name and description on first add.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jubalm/localdocs"
)

// Ensure MetaExtractor implements localdocs.MetaExtractor at compile time.
var _ localdocs.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor extracts title and description from an HTML head.
type MetaExtractor struct{}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

// Meta parses the HTML and returns its title and description.
// og: properties win over the plain <title> and description tags because
// documentation frameworks put the cleaner variant there.
func (e *MetaExtractor) Meta(html string) (*localdocs.PageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	meta := &localdocs.PageMeta{}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.Title = strings.TrimSpace(og)
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		meta.Description = strings.TrimSpace(og)
	}
	if meta.Description == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			meta.Description = strings.TrimSpace(desc)
		}
	}

	return meta, nil
}
