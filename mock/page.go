package mock

import "github.com/jubalm/localdocs"

var _ localdocs.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of localdocs.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*localdocs.ExtractResult, error)
}

func (m *Extractor) Extract(html string) (*localdocs.ExtractResult, error) {
	return m.ExtractFn(html)
}

var _ localdocs.Converter = (*Converter)(nil)

// Converter is a mock implementation of localdocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (m *Converter) Convert(html string) (string, error) {
	return m.ConvertFn(html)
}

var _ localdocs.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor is a mock implementation of localdocs.MetaExtractor.
type MetaExtractor struct {
	MetaFn func(html string) (*localdocs.PageMeta, error)
}

func (m *MetaExtractor) Meta(html string) (*localdocs.PageMeta, error) {
	return m.MetaFn(html)
}
