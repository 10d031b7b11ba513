package goquery_test

import (
	"testing"

	"github.com/jubalm/localdocs/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaExtractor_Meta(t *testing.T) {
	t.Parallel()

	t.Run("prefers og tags over plain tags", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<title>Docs | Site</title>
<meta property="og:title" content="Getting Started">
<meta name="description" content="plain description">
<meta property="og:description" content="og description">
</head><body></body></html>`

		meta, err := goquery.NewMetaExtractor().Meta(html)

		require.NoError(t, err)
		assert.Equal(t, "Getting Started", meta.Title)
		assert.Equal(t, "og description", meta.Description)
	})

	t.Run("falls back to title and description tags", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<title>  API Reference  </title>
<meta name="description" content="The complete API reference.">
</head><body></body></html>`

		meta, err := goquery.NewMetaExtractor().Meta(html)

		require.NoError(t, err)
		assert.Equal(t, "API Reference", meta.Title)
		assert.Equal(t, "The complete API reference.", meta.Description)
	})

	t.Run("empty head yields empty meta", func(t *testing.T) {
		t.Parallel()

		meta, err := goquery.NewMetaExtractor().Meta(`<html><body><p>hi</p></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, meta.Title)
		assert.Empty(t, meta.Description)
	})
}
