package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file written by WriteManifest.
const ManifestName = "_manifest.yaml"

// ManifestEntry describes one generated file.
type ManifestEntry struct {
	File   string `yaml:"file"`
	Title  string `yaml:"title"`
	Source string `yaml:"source,omitempty"`
	Lines  int    `yaml:"lines"`
	Kind   string `yaml:"kind,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// Manifest lists the files produced by one divide run.
type Manifest struct {
	Input   string          `yaml:"input"`
	Pattern string          `yaml:"pattern"`
	Files   []ManifestEntry `yaml:"files"`
}

// LineCount returns the number of lines in query.
func LineCount(query string) int {
	if query == "" {
		return 0
	}
	return strings.Count(query, "\n") + 1
}

// WriteManifest writes m as YAML into the target directory.
func (w *Writer) WriteManifest(m Manifest) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(w.dir, ManifestName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
