// Package manifest reads TAXONOMIES.toml, a declaration file that names the
// taxonomy entry points a project works with so CLI commands can refer to
// them by name instead of by path.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// ManifestFile is the default filename for taxonomy declarations
const ManifestFile = "TAXONOMIES.toml"

// TaxonomyDeclaration represents one declared taxonomy entry point
type TaxonomyDeclaration struct {
	// Name is the handle CLI commands refer to the taxonomy by
	Name string `toml:"name"`

	// Schema is the root schema file, relative to the manifest
	Schema string `toml:"schema"`

	// Namespace is the expected target namespace (optional, informational)
	Namespace string `toml:"namespace,omitempty"`

	// Description is a one-line description of the taxonomy
	Description string `toml:"description,omitempty"`

	// Tags are classification tags
	Tags []string `toml:"tags,omitempty"`
}

// Manifest represents the root structure of TAXONOMIES.toml
type Manifest struct {
	// Version is the schema version
	Version int `toml:"version"`

	// Taxonomies is the list of declared entry points
	Taxonomies []TaxonomyDeclaration `toml:"taxonomy"`

	dir string
}

// Parse parses a TAXONOMIES.toml file from the given path
func Parse(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	if m.Version < 1 {
		m.Version = 1
	}
	m.dir = filepath.Dir(filePath)

	for _, t := range m.Taxonomies {
		if t.Name == "" || t.Schema == "" {
			return nil, fmt.Errorf("taxonomy declaration missing required 'name' or 'schema' field")
		}
	}
	return &m, nil
}

// Load loads the manifest from <root>/TAXONOMIES.toml. It returns (nil, nil)
// when no manifest exists.
func Load(root string) (*Manifest, error) {
	filePath := filepath.Join(root, ManifestFile)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, nil
	}
	return Parse(filePath)
}

// Resolve returns the schema path of a declared taxonomy, or "" when the
// name is unknown.
func (m *Manifest) Resolve(name string) string {
	for _, t := range m.Taxonomies {
		if t.Name == name {
			return filepath.Join(m.dir, t.Schema)
		}
	}
	return ""
}
