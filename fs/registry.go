// Package fs provides file-based document storage. A JSON registry file
// maps document IDs to metadata; document content lives beside it as
// markdown files named after the ID.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jubalm/localdocs"
)

// ConfigFileName is the registry file name searched for in the working
// directory and in the user config directory.
const ConfigFileName = "localdocs.config.json"

// ConfigEnvVar overrides registry discovery when set.
const ConfigEnvVar = "LOCALDOCS_CONFIG"

// userConfigDir is the fallback registry location under the home directory.
const userConfigDir = ".localdocs"

// FindConfigPath locates the registry file. Order: the LOCALDOCS_CONFIG
// environment variable, the working directory, then ~/.localdocs/. When no
// file exists yet the working directory path is returned so a new registry
// is created there.
func FindConfigPath() (string, error) {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p, nil
	}

	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName, nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		p := filepath.Join(home, userConfigDir, ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return ConfigFileName, nil
}

// Registry is the in-memory form of the registry file.
type Registry struct {
	path             string
	StorageDirectory string
	Documents        map[string]localdocs.Metadata
}

type registryFile struct {
	StorageDirectory string                    `json:"storage_directory"`
	Documents        map[string]documentRecord `json:"documents"`
}

type documentRecord struct {
	URL         string   `json:"url"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// OpenRegistry reads the registry at path. A missing file yields an empty
// registry that will be created at path on the first Save.
func OpenRegistry(path string) (*Registry, error) {
	r := &Registry{
		path:             path,
		StorageDirectory: ".",
		Documents:        make(map[string]localdocs.Metadata),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, localdocs.Errorf(localdocs.EINTERNAL, "reading registry: %v", err)
	}

	var f registryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, localdocs.Errorf(localdocs.EINVALID, "registry file %s is not valid JSON: %v", path, err)
	}

	if f.StorageDirectory != "" {
		r.StorageDirectory = f.StorageDirectory
	}
	for id, rec := range f.Documents {
		r.Documents[id] = localdocs.Metadata{
			URL:         rec.URL,
			Name:        rec.Name,
			Description: rec.Description,
			Tags:        rec.Tags,
		}
	}

	return r, nil
}

// Save writes the registry to its path, creating parent directories as
// needed. The file is written to a temporary name and renamed so readers
// never observe a partial registry.
func (r *Registry) Save() error {
	f := registryFile{
		StorageDirectory: r.StorageDirectory,
		Documents:        make(map[string]documentRecord, len(r.Documents)),
	}
	for id, md := range r.Documents {
		f.Documents[id] = documentRecord{
			URL:         md.URL,
			Name:        md.Name,
			Description: md.Description,
			Tags:        md.Tags,
		}
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return localdocs.Errorf(localdocs.EINTERNAL, "encoding registry: %v", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return localdocs.Errorf(localdocs.EINTERNAL, "creating registry directory: %v", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return localdocs.Errorf(localdocs.EINTERNAL, "writing registry: %v", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return localdocs.Errorf(localdocs.EINTERNAL, "replacing registry: %v", err)
	}

	return nil
}

// StorageDir resolves the storage directory relative to the registry file.
func (r *Registry) StorageDir() string {
	if filepath.IsAbs(r.StorageDirectory) {
		return r.StorageDirectory
	}
	return filepath.Join(filepath.Dir(r.path), r.StorageDirectory)
}
