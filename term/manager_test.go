package term

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/jubalm/localdocs"
	"github.com/jubalm/localdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keyScript feeds a fixed key sequence, then EOF.
type keyScript struct {
	keys []Key
}

func (s *keyScript) ReadKey() (Key, error) {
	if len(s.keys) == 0 {
		return Key{}, io.EOF
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

func press(names ...string) []Key {
	keys := make([]Key, len(names))
	for i, n := range names {
		keys[i] = Key{Name: n}
	}
	return keys
}

// memStore is a DocumentStore over a plain map so bulk operations have
// observable effects.
func memStore(docs map[string]localdocs.Metadata) *mock.DocumentStore {
	return &mock.DocumentStore{
		ListAllFn: func(ctx context.Context) (map[string]localdocs.Metadata, error) {
			out := make(map[string]localdocs.Metadata, len(docs))
			for id, md := range docs {
				out[id] = md
			}
			return out, nil
		},
		DeleteFn: func(ctx context.Context, id string) error {
			if _, ok := docs[id]; !ok {
				return localdocs.Errorf(localdocs.ENOTFOUND, "document %s not found", id)
			}
			delete(docs, id)
			return nil
		},
		UpdateFn: func(ctx context.Context, id string) error {
			return nil
		},
		SetMetadataFn: func(ctx context.Context, id string, upd localdocs.MetadataUpdate) error {
			md := docs[id]
			if upd.Name != nil {
				md.Name = *upd.Name
			}
			if upd.Description != nil {
				md.Description = *upd.Description
			}
			docs[id] = md
			return nil
		},
		ExportSelectedFn: func(ctx context.Context, packageName string, ids []string, format localdocs.ExportFormat, absolutePaths bool) error {
			return nil
		},
	}
}

func threeDocs() map[string]localdocs.Metadata {
	return map[string]localdocs.Metadata{
		"aaaa0001": {URL: "https://a", Name: "Alpha"},
		"aaaa0002": {URL: "https://b", Name: "Beta"},
		"aaaa0003": {URL: "https://c", Name: "Gamma"},
	}
}

func newTestManager(store localdocs.DocumentStore, keys []Key, out io.Writer) *Manager {
	if out == nil {
		out = io.Discard
	}
	return NewManagerFor(store, &keyScript{keys: keys}, out,
		func() (int, int) { return 80, 24 },
		func() bool { return true })
}

func TestManager_CapabilityCheck(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := NewManagerFor(memStore(threeDocs()), &keyScript{}, &buf,
		func() (int, int) { return 80, 24 },
		func() bool { return false })

	ok, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "Interactive mode requires a terminal")
}

func TestManager_EmptyCollection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := newTestManager(memStore(map[string]localdocs.Metadata{}), nil, &buf)

	ok, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "No documents found")
}

func TestManager_DeleteFlow(t *testing.T) {
	t.Parallel()

	t.Run("select two, delete, one remains", func(t *testing.T) {
		t.Parallel()

		docs := threeDocs()
		m := newTestManager(memStore(docs), press(
			" ",      // select aaaa0001
			"j", " ", // select aaaa0002
			"d", "y", // confirm delete
			"z",      // dismiss result message
			"q", "y", // quit
		), nil)

		ok, err := m.Run(context.Background())

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Len(t, docs, 1)
		assert.Contains(t, docs, "aaaa0003")
		assert.Len(t, m.Model().Visible, 1)
		assert.Empty(t, m.Model().Selected)
	})

	t.Run("any other key cancels without deleting", func(t *testing.T) {
		t.Parallel()

		docs := threeDocs()
		var buf bytes.Buffer
		m := newTestManager(memStore(docs), press(
			" ", "d", "n", "z", "q", "y",
		), &buf)

		ok, err := m.Run(context.Background())

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Len(t, docs, 3)
		assert.Contains(t, buf.String(), "Deletion cancelled.")
	})

	t.Run("delete with empty selection shows a message", func(t *testing.T) {
		t.Parallel()

		docs := threeDocs()
		var buf bytes.Buffer
		m := newTestManager(memStore(docs), press("d", "z", "q", "y"), &buf)

		_, err := m.Run(context.Background())

		require.NoError(t, err)
		assert.Len(t, docs, 3)
		assert.Contains(t, buf.String(), "No documents selected for deletion.")
	})
}

func TestManager_UpdateFlow(t *testing.T) {
	t.Parallel()

	docs := threeDocs()
	store := memStore(docs)
	store.UpdateFn = func(ctx context.Context, id string) error {
		if id == "aaaa0002" {
			return localdocs.Errorf(localdocs.EUNAVAILABLE, "server down")
		}
		return nil
	}

	var buf bytes.Buffer
	m := newTestManager(store, press(
		" ", "j", " ", // select two
		"u", "y", // confirm update
		"z", "q", "y",
	), &buf)

	ok, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "Updated 1/2 documents. Failed: 1")
	assert.Empty(t, m.Model().Selected)
}

func TestManager_ExportFlow(t *testing.T) {
	t.Parallel()

	t.Run("uses fixed package name and default format", func(t *testing.T) {
		t.Parallel()

		store := memStore(threeDocs())
		var gotName string
		var gotIDs []string
		var gotFormat localdocs.ExportFormat
		var gotAbs bool
		store.ExportSelectedFn = func(ctx context.Context, packageName string, ids []string, format localdocs.ExportFormat, absolutePaths bool) error {
			gotName, gotIDs, gotFormat, gotAbs = packageName, ids, format, absolutePaths
			return nil
		}

		var buf bytes.Buffer
		m := newTestManager(store, press(" ", "x", "y", "z", "q", "y"), &buf)

		_, err := m.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "localdocs-export", gotName)
		assert.Equal(t, []string{"aaaa0001"}, gotIDs)
		assert.Equal(t, localdocs.ExportTOC, gotFormat)
		assert.False(t, gotAbs)
		assert.Contains(t, buf.String(), "created successfully")
	})

	t.Run("store failure becomes an error message", func(t *testing.T) {
		t.Parallel()

		store := memStore(threeDocs())
		store.ExportSelectedFn = func(ctx context.Context, packageName string, ids []string, format localdocs.ExportFormat, absolutePaths bool) error {
			return localdocs.Errorf(localdocs.ECONFLICT, "package directory localdocs-export already exists")
		}

		var buf bytes.Buffer
		m := newTestManager(store, press(" ", "x", "y", "z", "q", "y"), &buf)

		_, err := m.Run(context.Background())

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Package creation failed")
		assert.Contains(t, buf.String(), "already exists")
	})
}

func TestManager_SetMetadataPlaceholders(t *testing.T) {
	t.Parallel()

	docs := map[string]localdocs.Metadata{
		"aaaa0001": {URL: "https://a"}, // empty name and description
		"aaaa0002": {URL: "https://b", Name: "Named", Description: "Has one."},
	}
	store := memStore(docs)

	var updates []localdocs.MetadataUpdate
	inner := store.SetMetadataFn
	store.SetMetadataFn = func(ctx context.Context, id string, upd localdocs.MetadataUpdate) error {
		updates = append(updates, upd)
		return inner(ctx, id, upd)
	}

	m := newTestManager(store, press(
		"s", "z", // edit first doc, dismiss
		"j", "s", "z", // edit second doc, dismiss
		"q", "y",
	), nil)

	_, err := m.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, updates, 2)

	// Empty fields receive placeholders.
	require.NotNil(t, updates[0].Name)
	assert.Equal(t, localdocs.UnnamedPlaceholder, *updates[0].Name)
	require.NotNil(t, updates[0].Description)
	assert.Equal(t, localdocs.NoDescriptionPlaceholder, *updates[0].Description)

	// Populated fields are untouched.
	assert.Nil(t, updates[1].Name)
	assert.Nil(t, updates[1].Description)
}

func TestManager_QuitConfirmation(t *testing.T) {
	t.Parallel()

	t.Run("ignores keys other than y and n", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		m := newTestManager(memStore(threeDocs()), nil, nil)
		require.NoError(t, m.model.Load(ctx))
		m.model.ActivateAllTags()
		m.state = StateBrowsing

		m.handleKey(ctx, Key{Name: "q"})
		assert.Equal(t, StateConfirmQuit, m.State())

		m.handleKey(ctx, Key{Name: "x"})
		assert.Equal(t, StateConfirmQuit, m.State())

		m.handleKey(ctx, Key{Name: " "})
		assert.Equal(t, StateConfirmQuit, m.State())

		m.handleKey(ctx, Key{Name: "n"})
		assert.Equal(t, StateBrowsing, m.State())

		m.handleKey(ctx, Key{Name: "q"})
		m.handleKey(ctx, Key{Name: "y"})
		assert.Equal(t, StateTerminated, m.State())
	})

	t.Run("shows selection count before quitting", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		m := newTestManager(memStore(threeDocs()), press(" ", "q", "y"), &buf)

		_, err := m.Run(context.Background())

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "You have 1 document selected.")
	})
}

func TestManager_TagFilter(t *testing.T) {
	t.Parallel()

	docs := map[string]localdocs.Metadata{
		"aaaa0001": {URL: "https://a", Tags: []string{"go"}},
		"aaaa0002": {URL: "https://b", Tags: []string{"python"}},
		"aaaa0003": {URL: "https://c"},
	}

	t.Run("toggling a tag narrows the visible list", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		m := newTestManager(memStore(docs), nil, nil)
		require.NoError(t, m.model.Load(ctx))
		m.model.ActivateAllTags()
		m.state = StateBrowsing

		m.handleKey(ctx, Key{Name: "f"})
		assert.Equal(t, StateTagFilter, m.State())

		// AvailableTags sorted: go, python. Toggle "python" off.
		m.handleKey(ctx, Key{Name: "j"})
		m.handleKey(ctx, Key{Name: " "})
		assert.Equal(t, map[string]bool{"go": true}, m.model.ActiveTags)
		assert.Len(t, m.model.Visible, 1)

		m.handleKey(ctx, Key{Name: KeyReturn})
		assert.Equal(t, StateBrowsing, m.State())
	})

	t.Run("escape also leaves filter mode", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		m := newTestManager(memStore(docs), nil, nil)
		require.NoError(t, m.model.Load(ctx))
		m.model.ActivateAllTags()
		m.state = StateBrowsing

		m.handleKey(ctx, Key{Name: "f"})
		m.handleKey(ctx, Key{Name: KeyEscape})
		assert.Equal(t, StateBrowsing, m.State())
	})

	t.Run("no tags in collection shows a message instead", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		m := newTestManager(memStore(threeDocs()), press("f", "z", "q", "y"), &buf)

		_, err := m.Run(context.Background())

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "No tags available in the collection.")
	})
}

func TestManager_UppercaseCommands(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newTestManager(memStore(threeDocs()), nil, nil)
	require.NoError(t, m.model.Load(ctx))
	m.model.ActivateAllTags()
	m.state = StateBrowsing

	m.handleKey(ctx, Key{Name: "A"})
	assert.Len(t, m.model.Selected, 3)

	m.handleKey(ctx, Key{Name: "Q"})
	assert.Equal(t, StateConfirmQuit, m.State())
}

func TestManager_UnknownKeysAreNoOps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newTestManager(memStore(threeDocs()), nil, nil)
	require.NoError(t, m.model.Load(ctx))
	m.model.ActivateAllTags()
	m.state = StateBrowsing

	before := m.model.Cursor
	m.handleKey(ctx, Decode([]byte{0x00}))
	m.handleKey(ctx, Decode([]byte{0x1b, 0x4f, 0x50}))
	assert.Equal(t, StateBrowsing, m.State())
	assert.Equal(t, before, m.model.Cursor)
	assert.Empty(t, m.model.Selected)
}

func TestManager_NarrowTerminal(t *testing.T) {
	t.Parallel()

	// A full session on a terminal narrower than the tree layout's
	// indentation must still render every frame.
	keys := append(press(" ", "j", "f", "escape"), press("q", "y")...)
	var buf bytes.Buffer
	m := NewManagerFor(memStore(threeDocs()), &keyScript{keys: keys}, &buf,
		func() (int, int) { return 5, 24 },
		func() bool { return true })

	ok, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "aaaa0001")
}

func TestManager_ArrowNavigation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newTestManager(memStore(threeDocs()), nil, nil)
	require.NoError(t, m.model.Load(ctx))
	m.model.ActivateAllTags()
	m.state = StateBrowsing

	m.handleKey(ctx, Decode([]byte{0x1b, 0x5b, 0x42})) // down
	assert.Equal(t, 1, m.model.Cursor)
	m.handleKey(ctx, Decode([]byte{0x1b, 0x5b, 0x41})) // up
	assert.Equal(t, 0, m.model.Cursor)
}
