package localdocs_test

import (
	"strings"
	"testing"

	"github.com/jubalm/localdocs"
	"github.com/stretchr/testify/assert"
)

func TestMetadata_DisplayName(t *testing.T) {
	t.Parallel()

	t.Run("returns name when set", func(t *testing.T) {
		t.Parallel()
		m := localdocs.Metadata{Name: "API Reference"}
		assert.Equal(t, "API Reference", m.DisplayName())
	})

	t.Run("returns placeholder when unset", func(t *testing.T) {
		t.Parallel()
		m := localdocs.Metadata{}
		assert.Equal(t, "[unnamed]", m.DisplayName())
		assert.Equal(t, "[no description]", m.DisplayDescription())
	})
}

func TestCleanTags(t *testing.T) {
	t.Parallel()

	t.Run("lowercases and deduplicates", func(t *testing.T) {
		t.Parallel()
		tags := localdocs.CleanTags("React, react, FRONTEND")
		assert.Equal(t, []string{"react", "frontend"}, tags)
	})

	t.Run("drops invalid tags silently", func(t *testing.T) {
		t.Parallel()
		tags := localdocs.CleanTags("ok, bad tag!, " + strings.Repeat("x", 21) + ", also-ok")
		assert.Equal(t, []string{"ok", "also-ok"}, tags)
	})

	t.Run("caps at ten tags", func(t *testing.T) {
		t.Parallel()
		input := "a,b,c,d,e,f,g,h,i,j,k,l"
		assert.Len(t, localdocs.CleanTags(input), 10)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, localdocs.CleanTags("  "))
	})
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	t.Run("strips control characters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "clean", localdocs.SanitizeName("cle\x00an"))
	})

	t.Run("truncates long names", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("a", 300)
		assert.Len(t, localdocs.SanitizeName(long), 200)
	})
}

func TestValidatePackageName(t *testing.T) {
	t.Parallel()

	valid := []string{"my-docs", "docs_v2", "pkg.1"}
	for _, name := range valid {
		assert.NoError(t, localdocs.ValidatePackageName(name), name)
	}

	invalid := []string{"", "../escape", "/abs", "has space", "con", ".hidden", "trailing."}
	for _, name := range invalid {
		err := localdocs.ValidatePackageName(name)
		assert.Error(t, err, name)
		assert.Equal(t, localdocs.EINVALID, localdocs.ErrorCode(err), name)
	}
}

func TestParseExportFormat(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"toc", "claude", "json"} {
		f, err := localdocs.ParseExportFormat(s)
		assert.NoError(t, err)
		assert.Equal(t, localdocs.ExportFormat(s), f)
	}

	_, err := localdocs.ParseExportFormat("yaml")
	assert.Equal(t, localdocs.EINVALID, localdocs.ErrorCode(err))
}

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter matches everything", func(t *testing.T) {
		t.Parallel()
		var f *localdocs.URLFilter
		assert.True(t, f.Match("https://example.com/docs"))
	})
}
