package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/jubalm/localdocs"
)

// Ensure Store implements the domain storage interfaces at compile time.
var (
	_ localdocs.DocumentStore = (*Store)(nil)
	_ localdocs.PageWriter    = (*Store)(nil)
)

// Store implements document storage on top of a JSON registry and a
// directory of markdown content files. Every operation reloads the registry
// so concurrent command invocations see each other's writes.
type Store struct {
	mu         sync.Mutex
	configPath string
	pages      localdocs.PageFetcher // used by Update; may be nil

	// ExportDir is where exported packages are created.
	// Empty means the working directory.
	ExportDir string
}

// NewStore creates a Store backed by the registry at configPath. The page
// fetcher is used to re-download content on Update and may be nil for
// read-only use.
func NewStore(configPath string, pages localdocs.PageFetcher) *Store {
	return &Store{configPath: configPath, pages: pages}
}

// DocumentID derives the stable 8-character hex ID for a URL.
func DocumentID(url string) string {
	return fmt.Sprintf("%08x", uint32(xxhash.Sum64String(url)))
}

// ListAll returns a snapshot of all registered documents.
func (s *Store) ListAll(ctx context.Context) (map[string]localdocs.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := OpenRegistry(s.configPath)
	if err != nil {
		return nil, err
	}

	out := make(map[string]localdocs.Metadata, len(reg.Documents))
	for id, md := range reg.Documents {
		out[id] = md
	}
	return out, nil
}

// AddPage stores a fetched page and registers it. Adding a URL that is
// already registered refreshes its content and keeps existing metadata.
func (s *Store) AddPage(ctx context.Context, page *localdocs.Page) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := OpenRegistry(s.configPath)
	if err != nil {
		return "", err
	}

	id := DocumentID(page.URL)

	if err := writeContent(contentPath(reg, id), page); err != nil {
		return "", err
	}

	if _, exists := reg.Documents[id]; !exists {
		reg.Documents[id] = localdocs.Metadata{
			URL:         page.URL,
			Name:        localdocs.SanitizeName(page.Title),
			Description: localdocs.SanitizeDescription(page.Description),
			Tags:        []string{},
		}
		if err := reg.Save(); err != nil {
			return "", err
		}
	}

	return id, nil
}

// Add fetches a URL and stores it, returning the document ID.
func (s *Store) Add(ctx context.Context, url string) (string, error) {
	if s.pages == nil {
		return "", localdocs.Errorf(localdocs.EINTERNAL, "store has no page fetcher")
	}

	page, err := s.pages.FetchPage(ctx, url)
	if err != nil {
		return "", err
	}
	return s.AddPage(ctx, page)
}

// Delete removes a document's registry entry and content file.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := OpenRegistry(s.configPath)
	if err != nil {
		return err
	}

	if _, ok := reg.Documents[id]; !ok {
		return localdocs.Errorf(localdocs.ENOTFOUND, "document %s not found", id)
	}

	if err := os.Remove(contentPath(reg, id)); err != nil && !os.IsNotExist(err) {
		return localdocs.Errorf(localdocs.EINTERNAL, "removing content file: %v", err)
	}

	delete(reg.Documents, id)
	return reg.Save()
}

// Update re-fetches a document's content from its stored URL. Metadata is
// left unchanged.
func (s *Store) Update(ctx context.Context, id string) error {
	s.mu.Lock()
	md, reg, err := s.lookup(id)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if s.pages == nil {
		return localdocs.Errorf(localdocs.EINTERNAL, "store has no page fetcher")
	}

	// Fetch outside the lock; network calls can be slow.
	page, err := s.pages.FetchPage(ctx, md.URL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeContent(contentPath(reg, id), page)
}

// SetMetadata applies a partial metadata update. Name and description are
// sanitized; nil fields are left unchanged.
func (s *Store) SetMetadata(ctx context.Context, id string, upd localdocs.MetadataUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := OpenRegistry(s.configPath)
	if err != nil {
		return err
	}

	md, ok := reg.Documents[id]
	if !ok {
		return localdocs.Errorf(localdocs.ENOTFOUND, "document %s not found", id)
	}

	if upd.Name != nil {
		md.Name = localdocs.SanitizeName(*upd.Name)
	}
	if upd.Description != nil {
		md.Description = localdocs.SanitizeDescription(*upd.Description)
	}
	if upd.Tags != nil {
		md.Tags = upd.Tags
	}

	reg.Documents[id] = md
	return reg.Save()
}

func (s *Store) lookup(id string) (localdocs.Metadata, *Registry, error) {
	reg, err := OpenRegistry(s.configPath)
	if err != nil {
		return localdocs.Metadata{}, nil, err
	}
	md, ok := reg.Documents[id]
	if !ok {
		return localdocs.Metadata{}, nil, localdocs.Errorf(localdocs.ENOTFOUND, "document %s not found", id)
	}
	return md, reg, nil
}

func contentPath(reg *Registry, id string) string {
	return filepath.Join(reg.StorageDir(), id+".md")
}

// writeContent writes a page as markdown with YAML frontmatter.
func writeContent(path string, page *localdocs.Page) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return localdocs.Errorf(localdocs.EINTERNAL, "creating storage directory: %v", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	if page.Title != "" {
		b.WriteString("\ntitle: ")
		b.WriteString(page.Title)
	}
	b.WriteString("\nretrieved: ")
	b.WriteString(time.Now().Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return localdocs.Errorf(localdocs.EINTERNAL, "writing content file: %v", err)
	}
	return nil
}

// sortedIDs returns the IDs in ascending order for deterministic output.
func sortedIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
