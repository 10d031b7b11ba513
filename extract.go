package localdocs

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ListFields enumerates the selectable output fields, in display order.
var ListFields = []string{"id", "name", "description", "tags", "url"}

// ListOptions filters and orders registry listings for the extract command.
type ListOptions struct {
	// Tags filters with OR logic: a document matches if it carries any of
	// the tags. Selecting every available tag matches everything,
	// including untagged documents.
	Tags []string

	HasTags      bool
	NoTags       bool
	NameContains string
	DescContains string

	// SortBy is one of id, name, url, tags. Unknown values sort by id.
	SortBy  string
	Reverse bool
	Limit   int
}

// AvailableTags returns the sorted set of tags present in the collection.
func AvailableTags(docs map[string]Metadata) []string {
	set := make(map[string]bool)
	for _, m := range docs {
		for _, t := range m.Tags {
			set[t] = true
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// FilterByTags filters documents with OR logic. An empty tag list leaves
// the collection unfiltered. If the tag list covers every available tag,
// the full collection is returned unchanged so that untagged documents
// stay visible.
func FilterByTags(docs map[string]Metadata, tags []string) map[string]Metadata {
	if len(tags) == 0 {
		return docs
	}

	selected := make(map[string]bool, len(tags))
	for _, t := range tags {
		selected[t] = true
	}

	available := AvailableTags(docs)
	if len(selected) == len(available) {
		full := true
		for _, t := range available {
			if !selected[t] {
				full = false
				break
			}
		}
		if full {
			return docs
		}
	}

	filtered := make(map[string]Metadata)
	for id, m := range docs {
		for _, t := range m.Tags {
			if selected[t] {
				filtered[id] = m
				break
			}
		}
	}
	return filtered
}

// ListDocuments applies the options to a registry snapshot and returns an
// ordered slice of documents.
func ListDocuments(docs map[string]Metadata, opts ListOptions) []Document {
	filtered := FilterByTags(docs, opts.Tags)

	items := make([]Document, 0, len(filtered))
	for id, m := range filtered {
		if opts.HasTags && len(m.Tags) == 0 {
			continue
		}
		if opts.NoTags && len(m.Tags) > 0 {
			continue
		}
		if opts.NameContains != "" &&
			!strings.Contains(strings.ToLower(m.Name), strings.ToLower(opts.NameContains)) {
			continue
		}
		if opts.DescContains != "" &&
			!strings.Contains(strings.ToLower(m.Description), strings.ToLower(opts.DescContains)) {
			continue
		}
		items = append(items, Document{ID: id, Metadata: m})
	}

	key := func(d Document) string {
		switch opts.SortBy {
		case "name":
			return d.Metadata.Name
		case "url":
			return d.Metadata.URL
		case "tags":
			return strings.Join(d.Metadata.Tags, ",")
		}
		return d.ID
	}
	sort.Slice(items, func(i, j int) bool {
		ki, kj := key(items[i]), key(items[j])
		if ki == kj {
			return items[i].ID < items[j].ID
		}
		if opts.Reverse {
			return ki > kj
		}
		return ki < kj
	})

	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items
}

// selectFields validates a requested field list, falling back to all fields.
func selectFields(fields []string) []string {
	if len(fields) == 0 {
		return ListFields
	}
	valid := make(map[string]bool, len(ListFields))
	for _, f := range ListFields {
		valid[f] = true
	}
	selected := make([]string, 0, len(fields))
	for _, f := range fields {
		if valid[f] {
			selected = append(selected, f)
		}
	}
	if len(selected) == 0 {
		return ListFields
	}
	return selected
}

func fieldValue(d Document, field string) string {
	switch field {
	case "id":
		return d.ID
	case "name":
		return d.Metadata.Name
	case "description":
		return d.Metadata.Description
	case "tags":
		return strings.Join(d.Metadata.Tags, ",")
	case "url":
		return d.Metadata.URL
	}
	return ""
}

// FormatTable renders documents as fixed-width columns. The 20-character
// column format is stable output consumed by scripts.
func FormatTable(docs []Document, fields []string, quiet bool) string {
	fields = selectFields(fields)
	headers := map[string]string{
		"id": "ID", "name": "Name", "description": "Description",
		"tags": "Tags", "url": "URL",
	}

	var lines []string
	if !quiet {
		cells := make([]string, len(fields))
		for i, f := range fields {
			cells[i] = fmt.Sprintf("%-20s", headers[f])
		}
		header := strings.Join(cells, " ")
		lines = append(lines, header, strings.Repeat("-", len(header)))
	}

	for _, d := range docs {
		cells := make([]string, len(fields))
		for i, f := range fields {
			v := fieldValue(d, f)
			if len(v) > 18 {
				v = v[:15] + "..."
			}
			cells[i] = fmt.Sprintf("%-20s", v)
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	if !quiet {
		lines = append(lines, fmt.Sprintf("\nTotal: %d documents", len(docs)))
	}
	return strings.Join(lines, "\n")
}

// FormatJSON renders documents as an indented JSON array.
func FormatJSON(docs []Document, fields []string) (string, error) {
	fields = selectFields(fields)
	data := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		row := map[string]any{"id": d.ID}
		for _, f := range fields {
			switch f {
			case "id":
				// always present
			case "tags":
				tags := d.Metadata.Tags
				if tags == nil {
					tags = []string{}
				}
				row[f] = tags
			default:
				row[f] = fieldValue(d, f)
			}
		}
		data = append(data, row)
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FormatCSV renders documents as CSV, with a header row unless quiet.
func FormatCSV(docs []Document, fields []string, quiet bool) (string, error) {
	fields = selectFields(fields)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if !quiet {
		if err := w.Write(fields); err != nil {
			return "", err
		}
	}
	for _, d := range docs {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = fieldValue(d, f)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// FormatIDs renders one document ID per line.
func FormatIDs(docs []Document) string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return strings.Join(ids, "\n")
}

// FormatDocuments dispatches to the named output format: table, json, csv,
// or ids.
func FormatDocuments(docs []Document, format string, fields []string, quiet bool) (string, error) {
	switch format {
	case "", "table":
		return FormatTable(docs, fields, quiet), nil
	case "json":
		return FormatJSON(docs, fields)
	case "csv":
		return FormatCSV(docs, fields, quiet)
	case "ids":
		return FormatIDs(docs), nil
	}
	return "", Errorf(EINVALID, "unknown output format: %s", format)
}
