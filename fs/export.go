package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jubalm/localdocs"
)

// ExportSelected writes a package directory containing the selected
// documents. By default content files are copied into the package alongside
// an index and a registry restricted to the selection, so the package is
// itself a valid localdocs directory. With absolutePaths the index
// references the content files in place and nothing is copied.
func (s *Store) ExportSelected(ctx context.Context, packageName string, ids []string, format localdocs.ExportFormat, absolutePaths bool) error {
	if err := localdocs.ValidatePackageName(packageName); err != nil {
		return err
	}
	if format == "" {
		format = localdocs.DefaultExportFormat
	}
	if _, err := localdocs.ParseExportFormat(string(format)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := OpenRegistry(s.configPath)
	if err != nil {
		return err
	}

	docs := make([]localdocs.Document, 0, len(ids))
	for _, id := range sortedIDs(ids) {
		md, ok := reg.Documents[id]
		if !ok {
			return localdocs.Errorf(localdocs.ENOTFOUND, "document %s not found", id)
		}
		docs = append(docs, localdocs.Document{ID: id, Metadata: md})
	}

	pkgDir := packageName
	if s.ExportDir != "" {
		pkgDir = filepath.Join(s.ExportDir, packageName)
	}

	if err := os.Mkdir(pkgDir, 0755); err != nil {
		if os.IsExist(err) {
			return localdocs.Errorf(localdocs.ECONFLICT, "package directory %s already exists", packageName)
		}
		return localdocs.Errorf(localdocs.EINTERNAL, "creating package directory: %v", err)
	}

	if err := writePackage(reg, pkgDir, docs, format, absolutePaths); err != nil {
		_ = os.RemoveAll(pkgDir)
		return err
	}
	return nil
}

func writePackage(reg *Registry, dir string, docs []localdocs.Document, format localdocs.ExportFormat, absolutePaths bool) error {
	refs := make(map[string]string, len(docs))
	for _, doc := range docs {
		if absolutePaths {
			abs, err := filepath.Abs(contentPath(reg, doc.ID))
			if err != nil {
				return localdocs.Errorf(localdocs.EINTERNAL, "resolving content path: %v", err)
			}
			refs[doc.ID] = abs
		} else {
			refs[doc.ID] = doc.ID + ".md"
		}
	}

	if !absolutePaths && format != localdocs.ExportJSON {
		for _, doc := range docs {
			if err := copyContent(contentPath(reg, doc.ID), filepath.Join(dir, doc.ID+".md")); err != nil {
				return err
			}
		}
		if err := writePackageConfig(dir, docs); err != nil {
			return err
		}
	}

	switch format {
	case localdocs.ExportClaude:
		return writeClaudeRefs(dir, docs, refs)
	case localdocs.ExportJSON:
		return writeDataJSON(reg, dir, docs)
	default:
		return writeTOC(dir, docs, refs)
	}
}

func copyContent(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return localdocs.Errorf(localdocs.ENOTFOUND, "content file %s missing", filepath.Base(src))
		}
		return localdocs.Errorf(localdocs.EINTERNAL, "reading content file: %v", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return localdocs.Errorf(localdocs.EINTERNAL, "copying content file: %v", err)
	}
	return nil
}

// writePackageConfig writes a registry restricted to the exported documents
// so the package directory works as a standalone localdocs root.
func writePackageConfig(dir string, docs []localdocs.Document) error {
	reg := &Registry{
		path:             filepath.Join(dir, ConfigFileName),
		StorageDirectory: ".",
		Documents:        make(map[string]localdocs.Metadata, len(docs)),
	}
	for _, doc := range docs {
		reg.Documents[doc.ID] = doc.Metadata
	}
	return reg.Save()
}

func writeTOC(dir string, docs []localdocs.Document, refs map[string]string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", filepath.Base(dir))
	for _, doc := range docs {
		fmt.Fprintf(&b, "- [%s](%s)", doc.Metadata.DisplayName(), refs[doc.ID])
		if doc.Metadata.Description != "" {
			fmt.Fprintf(&b, ": %s", doc.Metadata.Description)
		}
		if len(doc.Metadata.Tags) > 0 {
			fmt.Fprintf(&b, " `%s`", strings.Join(doc.Metadata.Tags, "` `"))
		}
		b.WriteString("\n")
	}
	return writeIndexFile(filepath.Join(dir, "index.md"), b.String())
}

func writeClaudeRefs(dir string, docs []localdocs.Document, refs map[string]string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", filepath.Base(dir))
	b.WriteString("Reference these documents as needed:\n\n")
	for _, doc := range docs {
		ref := refs[doc.ID]
		if !filepath.IsAbs(ref) {
			ref = "./" + ref
		}
		fmt.Fprintf(&b, "- @%s %s\n", ref, doc.Metadata.DisplayName())
	}
	return writeIndexFile(filepath.Join(dir, "claude-refs.md"), b.String())
}

// writeDataJSON embeds document content directly so the package is a single
// machine-readable file.
func writeDataJSON(reg *Registry, dir string, docs []localdocs.Document) error {
	type jsonDoc struct {
		ID          string   `json:"id"`
		URL         string   `json:"url"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		Content     string   `json:"content"`
	}

	out := struct {
		Package   string    `json:"package"`
		Documents []jsonDoc `json:"documents"`
	}{
		Package:   filepath.Base(dir),
		Documents: make([]jsonDoc, 0, len(docs)),
	}

	for _, doc := range docs {
		content, err := os.ReadFile(contentPath(reg, doc.ID))
		if err != nil && !os.IsNotExist(err) {
			return localdocs.Errorf(localdocs.EINTERNAL, "reading content file: %v", err)
		}
		tags := doc.Metadata.Tags
		if tags == nil {
			tags = []string{}
		}
		out.Documents = append(out.Documents, jsonDoc{
			ID:          doc.ID,
			URL:         doc.Metadata.URL,
			Name:        doc.Metadata.Name,
			Description: doc.Metadata.Description,
			Tags:        tags,
			Content:     string(content),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return localdocs.Errorf(localdocs.EINTERNAL, "encoding package data: %v", err)
	}
	return writeIndexFile(filepath.Join(dir, "data.json"), string(data)+"\n")
}

func writeIndexFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return localdocs.Errorf(localdocs.EINTERNAL, "writing %s: %v", filepath.Base(path), err)
	}
	return nil
}
