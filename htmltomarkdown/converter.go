// Package htmltomarkdown converts fetched HTML pages to the Markdown form
// stored in the document collection.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/jubalm/localdocs"
)

var _ localdocs.Converter = (*Converter)(nil)

// Converter renders HTML as CommonMark. Tables are converted rather than
// flattened; documentation leans on them for flag and option listings.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter with the commonmark and table plugins.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		)),
	}
}

// Convert returns the Markdown rendering of html.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", localdocs.Errorf(localdocs.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", localdocs.Errorf(localdocs.EINTERNAL, "markdown conversion: %v", err)
	}
	return md, nil
}
