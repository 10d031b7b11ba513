package localdocs

import (
	"context"
	"regexp"
	"strings"
)

// Metadata limits, shared by the CLI and the interactive manager.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
	MaxTags              = 10
	MaxTagLength         = 20
)

// Placeholders shown wherever an optional field is empty.
const (
	UnnamedPlaceholder       = "[unnamed]"
	NoDescriptionPlaceholder = "[no description]"
)

// Metadata holds the user-editable fields tracked for a document in the
// registry. The URL is set when the document is added.
type Metadata struct {
	URL         string   `json:"url"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
}

// DisplayName returns the name or a placeholder if unset.
func (m Metadata) DisplayName() string {
	if m.Name == "" {
		return UnnamedPlaceholder
	}
	return m.Name
}

// DisplayDescription returns the description or a placeholder if unset.
func (m Metadata) DisplayDescription() string {
	if m.Description == "" {
		return NoDescriptionPlaceholder
	}
	return m.Description
}

// HasTag reports whether the document carries the given tag.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Document pairs a registry hash ID with its metadata.
type Document struct {
	ID       string   `json:"id"`
	Metadata Metadata `json:"metadata"`
}

// MetadataUpdate represents fields that can be updated on a document.
// Nil fields are left unchanged.
type MetadataUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

var tagPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// controlChars matches ASCII control characters stripped from metadata.
var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// SanitizeName strips control characters and truncates to MaxNameLength.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return controlChars.ReplaceAllString(name, "")
}

// SanitizeDescription strips control characters and truncates to
// MaxDescriptionLength.
func SanitizeDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if len(desc) > MaxDescriptionLength {
		desc = desc[:MaxDescriptionLength]
	}
	return controlChars.ReplaceAllString(desc, "")
}

// CleanTags parses a comma-separated tag string into a deduplicated list of
// valid tags. Tags are lowercased; entries that are empty, longer than
// MaxTagLength, or contain characters outside [a-z0-9-] are dropped
// silently. At most MaxTags tags are returned.
func CleanTags(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}

	tags := []string{}
	seen := make(map[string]bool)
	for _, raw := range strings.Split(input, ",") {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" || len(tag) > MaxTagLength || !tagPattern.MatchString(tag) {
			continue
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

// ExportFormat selects the layout of an exported package.
type ExportFormat string

// Export formats and the main file each one produces.
const (
	ExportTOC    ExportFormat = "toc"    // index.md
	ExportClaude ExportFormat = "claude" // claude-refs.md
	ExportJSON   ExportFormat = "json"   // data.json with embedded content
)

// DefaultExportFormat is used when no format is chosen.
const DefaultExportFormat = ExportTOC

// ParseExportFormat validates a format string.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case ExportTOC, ExportClaude, ExportJSON:
		return ExportFormat(s), nil
	}
	return "", Errorf(EINVALID, "unknown format: %s", s)
}

// packageNamePattern restricts package names to filesystem-safe characters.
var packageNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// reservedNames are disallowed package names for Windows compatibility.
var reservedNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true,
}

// ValidatePackageName returns an error if the package name is empty,
// contains path traversal, uses unsafe characters, or collides with a
// reserved filesystem name.
func ValidatePackageName(name string) error {
	if name == "" || len(name) > 255 {
		return Errorf(EINVALID, "invalid package name %q", name)
	}
	if strings.Contains(name, "..") || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return Errorf(EINVALID, "invalid package name %q", name)
	}
	if !packageNamePattern.MatchString(name) {
		return Errorf(EINVALID,
			"invalid package name %q: use only alphanumeric characters, hyphens, underscores, and dots", name)
	}
	if reservedNames[strings.ToLower(name)] {
		return Errorf(EINVALID, "invalid package name %q: reserved name", name)
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return Errorf(EINVALID, "invalid package name %q", name)
	}
	return nil
}

// DocumentStore is the registry of tracked documents. The interactive
// manager consumes exactly this surface; fs.Store is the production
// implementation.
type DocumentStore interface {
	// ListAll returns a snapshot of every document keyed by hash ID.
	ListAll(ctx context.Context) (map[string]Metadata, error)

	// Delete removes a document and its content file.
	// Returns ENOTFOUND if the ID is unknown.
	Delete(ctx context.Context, id string) error

	// Update re-fetches content from the document's stored URL.
	// Returns ENOTFOUND if the ID is unknown.
	Update(ctx context.Context, id string) error

	// SetMetadata applies a metadata update.
	// Returns ENOTFOUND if the ID is unknown.
	SetMetadata(ctx context.Context, id string, upd MetadataUpdate) error

	// ExportSelected writes a package directory containing the given
	// documents. With absolutePaths the package references content files
	// in the store instead of copying them.
	ExportSelected(ctx context.Context, packageName string, ids []string, format ExportFormat, absolutePaths bool) error
}
