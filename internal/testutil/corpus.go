// Package testutil builds throwaway corpus fixtures for tests: a roots file,
// typed corpus directories and content files under a t.TempDir.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/draftsmith-ai/draftsmith/internal/config"
)

// CorpusFixture is a temporary corpus rooted in a test directory
type CorpusFixture struct {
	T *testing.T
	// BaseDir holds everything: corpus roots, roots file and data dir.
	BaseDir   string
	DataDir   string
	RootsFile string
	roots     []config.Root
}

// NewCorpusFixture creates an empty corpus fixture under a fresh temp dir
func NewCorpusFixture(t *testing.T) *CorpusFixture {
	t.Helper()
	base := t.TempDir()
	return &CorpusFixture{
		T:         t,
		BaseDir:   base,
		DataDir:   filepath.Join(base, "data"),
		RootsFile: filepath.Join(base, "corpus.yaml"),
	}
}

// AddRoot declares a corpus root directory. contentType may be empty to let
// the scanner infer types from filenames.
func (f *CorpusFixture) AddRoot(name, contentType string) string {
	f.T.Helper()
	dir := filepath.Join(f.BaseDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		f.T.Fatalf("failed to create corpus root %s: %v", dir, err)
	}
	f.roots = append(f.roots, config.Root{Path: dir, Type: contentType})
	return dir
}

// WriteFile writes one corpus file under a previously added root
func (f *CorpusFixture) WriteFile(rootDir, name, content string) string {
	f.T.Helper()
	path := filepath.Join(rootDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		f.T.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		f.T.Fatalf("failed to write corpus file %s: %v", path, err)
	}
	return path
}

// RemoveFile deletes a corpus file, simulating an operator removing source
// material between ingestion runs
func (f *CorpusFixture) RemoveFile(path string) {
	f.T.Helper()
	if err := os.Remove(path); err != nil {
		f.T.Fatalf("failed to remove corpus file %s: %v", path, err)
	}
}

// SaveRoots writes the declared roots to the fixture's roots file
func (f *CorpusFixture) SaveRoots() {
	f.T.Helper()
	if err := config.SaveRoots(f.RootsFile, &config.Roots{Roots: f.roots}); err != nil {
		f.T.Fatalf("failed to save roots file: %v", err)
	}
}

// Roots returns the declared corpus roots
func (f *CorpusFixture) Roots() []config.Root {
	return f.roots
}
