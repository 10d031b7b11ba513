package term

import (
	"context"
	"sort"

	"github.com/jubalm/localdocs"
)

// Model holds the in-memory session state: the document snapshot, the
// visible projection, cursor, selection, and tag filters. It is mutated
// only by the Manager between key events; there are no concurrent writers.
type Model struct {
	store localdocs.DocumentStore

	// Docs is the full snapshot, sorted by ID for stable frames.
	Docs []localdocs.Document

	// Visible is the filtered projection, rebuilt by RecomputeVisible.
	Visible []localdocs.Document

	// Cursor indexes Visible; 0 when Visible is empty.
	Cursor int

	// Selected holds IDs of selected documents, always a subset of Visible.
	Selected map[string]bool

	// AvailableTags is every tag in the snapshot, sorted.
	AvailableTags []string

	// ActiveTags is the current filter set.
	ActiveTags map[string]bool
}

// NewModel creates an empty model backed by the store.
func NewModel(store localdocs.DocumentStore) *Model {
	return &Model{
		store:      store,
		Selected:   make(map[string]bool),
		ActiveTags: make(map[string]bool),
	}
}

// Load pulls a fresh snapshot from the store, recollects available tags,
// drops active tags that no longer exist, and recomputes visibility.
func (m *Model) Load(ctx context.Context) error {
	all, err := m.store.ListAll(ctx)
	if err != nil {
		return err
	}

	m.Docs = m.Docs[:0]
	for id, md := range all {
		m.Docs = append(m.Docs, localdocs.Document{ID: id, Metadata: md})
	}
	sort.Slice(m.Docs, func(i, j int) bool { return m.Docs[i].ID < m.Docs[j].ID })

	tagSet := make(map[string]bool)
	for _, doc := range m.Docs {
		for _, t := range doc.Metadata.Tags {
			tagSet[t] = true
		}
	}
	m.AvailableTags = m.AvailableTags[:0]
	for t := range tagSet {
		m.AvailableTags = append(m.AvailableTags, t)
	}
	sort.Strings(m.AvailableTags)

	for t := range m.ActiveTags {
		if !tagSet[t] {
			delete(m.ActiveTags, t)
		}
	}

	m.RecomputeVisible()
	return nil
}

// ActivateAllTags turns on every available tag, the session's starting
// filter state.
func (m *Model) ActivateAllTags() {
	m.ActiveTags = make(map[string]bool, len(m.AvailableTags))
	for _, t := range m.AvailableTags {
		m.ActiveTags[t] = true
	}
	m.RecomputeVisible()
}

// visible reports whether a document passes the current tag filters. With
// every available tag active the whole collection is visible, untagged
// documents included. With no active tags only untagged documents show.
// Otherwise a document shows when it carries at least one active tag.
func (m *Model) visible(doc localdocs.Document) bool {
	if len(m.ActiveTags) == len(m.AvailableTags) {
		return true
	}
	if len(m.ActiveTags) == 0 {
		return len(doc.Metadata.Tags) == 0
	}
	for _, t := range doc.Metadata.Tags {
		if m.ActiveTags[t] {
			return true
		}
	}
	return false
}

// RecomputeVisible rebuilds the visible projection, prunes the selection
// to visible IDs, and clamps the cursor.
func (m *Model) RecomputeVisible() {
	m.Visible = m.Visible[:0]
	visibleIDs := make(map[string]bool)
	for _, doc := range m.Docs {
		if m.visible(doc) {
			m.Visible = append(m.Visible, doc)
			visibleIDs[doc.ID] = true
		}
	}

	for id := range m.Selected {
		if !visibleIDs[id] {
			delete(m.Selected, id)
		}
	}

	if len(m.Visible) == 0 {
		m.Cursor = 0
	} else if m.Cursor > len(m.Visible)-1 {
		m.Cursor = len(m.Visible) - 1
	} else if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// MoveCursor moves the cursor by delta, clamped to the visible list. No
// wraparound.
func (m *Model) MoveCursor(delta int) {
	if len(m.Visible) == 0 {
		m.Cursor = 0
		return
	}
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor > len(m.Visible)-1 {
		m.Cursor = len(m.Visible) - 1
	}
}

// CurrentDoc returns the document under the cursor.
func (m *Model) CurrentDoc() (localdocs.Document, bool) {
	if len(m.Visible) == 0 {
		return localdocs.Document{}, false
	}
	return m.Visible[m.Cursor], true
}

// ToggleCurrent flips selection of the document under the cursor.
func (m *Model) ToggleCurrent() {
	doc, ok := m.CurrentDoc()
	if !ok {
		return
	}
	if m.Selected[doc.ID] {
		delete(m.Selected, doc.ID)
	} else {
		m.Selected[doc.ID] = true
	}
}

// ToggleAll selects every visible document, or clears the selection when
// everything visible is already selected. The size comparison makes the
// toggle symmetric even when the visible set changed since the last press.
func (m *Model) ToggleAll() {
	if len(m.Selected) == len(m.Visible) {
		m.Selected = make(map[string]bool)
		return
	}
	for _, doc := range m.Visible {
		m.Selected[doc.ID] = true
	}
}

// ToggleTag flips one tag filter and recomputes visibility.
func (m *Model) ToggleTag(tag string) {
	if m.ActiveTags[tag] {
		delete(m.ActiveTags, tag)
	} else {
		m.ActiveTags[tag] = true
	}
	m.RecomputeVisible()
}

// ToggleAllTags activates every tag, or clears the filter set when all are
// already active. Same symmetric discipline as ToggleAll.
func (m *Model) ToggleAllTags() {
	if len(m.ActiveTags) == len(m.AvailableTags) {
		m.ActiveTags = make(map[string]bool)
		m.RecomputeVisible()
		return
	}
	m.ActivateAllTags()
}

// SelectedIDs returns the selected IDs in sorted order.
func (m *Model) SelectedIDs() []string {
	ids := make([]string, 0, len(m.Selected))
	for id := range m.Selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActiveTagList returns the active tags in sorted order.
func (m *Model) ActiveTagList() []string {
	tags := make([]string, 0, len(m.ActiveTags))
	for t := range m.ActiveTags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
