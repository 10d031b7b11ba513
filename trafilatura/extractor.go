// Package trafilatura strips boilerplate from fetched documentation pages
// before they are converted to Markdown.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/jubalm/localdocs"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ localdocs.Extractor = (*Extractor)(nil)

// Extractor isolates the main content of an HTML page, discarding
// navigation, footers, and other chrome around the documentation body.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates an Extractor with the readability fallback
// enabled, which rescues pages trafilatura's own heuristics give up on.
func NewExtractor() *Extractor {
	return &Extractor{opts: trafilatura.Options{EnableFallback: true}}
}

// Extract returns the page title and the HTML of the main content block.
func (e *Extractor) Extract(rawHTML string) (*localdocs.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, localdocs.Errorf(localdocs.EINVALID, "empty HTML input")
	}

	res, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, localdocs.Errorf(localdocs.EINTERNAL, "content extraction: %v", err)
	}

	out := &localdocs.ExtractResult{Title: res.Metadata.Title}
	if res.ContentNode == nil {
		return out, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, res.ContentNode); err != nil {
		return nil, localdocs.Errorf(localdocs.EINTERNAL, "rendering extracted content: %v", err)
	}
	out.ContentHTML = buf.String()
	return out, nil
}
