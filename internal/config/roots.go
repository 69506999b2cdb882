package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// Root declares one corpus directory. Type is optional: when empty, item
// types are inferred from filenames and extensions during scanning.
type Root struct {
	Path string `yaml:"path"`
	Type string `yaml:"type,omitempty"`
}

// Roots is the on-disk corpus declaration, usually corpus.yaml
type Roots struct {
	Roots []Root `yaml:"roots"`
}

// LoadRoots reads and validates a corpus roots file
func LoadRoots(path string) (*Roots, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roots file %s: %w", path, err)
	}

	var roots Roots
	if err := yaml.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("failed to parse roots file %s: %w", path, err)
	}

	if err := roots.Validate(); err != nil {
		return nil, fmt.Errorf("invalid roots file %s: %w", path, err)
	}

	return &roots, nil
}

// SaveRoots writes a corpus roots file
func SaveRoots(path string, roots *Roots) error {
	data, err := yaml.Marshal(roots)
	if err != nil {
		return fmt.Errorf("failed to marshal roots: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create roots dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write roots file %s: %w", path, err)
	}

	return nil
}

// DefaultRoots returns the scaffold written by the init command
func DefaultRoots() *Roots {
	return &Roots{
		Roots: []Root{
			{Path: "corpus/style", Type: string(domain.ContentTypeStyleGuide)},
			{Path: "corpus/transcripts", Type: string(domain.ContentTypeTranscript)},
			{Path: "corpus/blog", Type: string(domain.ContentTypeBlogPost)},
			{Path: "corpus/misc"},
		},
	}
}

// Validate checks every declared root
func (r *Roots) Validate() error {
	if len(r.Roots) == 0 {
		return fmt.Errorf("at least one corpus root is required")
	}

	for i, root := range r.Roots {
		if root.Path == "" {
			return fmt.Errorf("root %d: path is required", i)
		}
		if root.Type != "" {
			if _, err := domain.ParseContentType(root.Type); err != nil {
				return fmt.Errorf("root %d (%s): %w", i, root.Path, err)
			}
		}
	}

	return nil
}
