// Package state persists the engine's working files: the fingerprint ledger,
// the index, the per-item content cache, the embedding cache and the ingest
// lock. Everything lives under one data directory as plain JSON so an
// operator can inspect or delete state by hand.
package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the well-known file locations inside a data directory
type Paths struct {
	DataDir string
}

func NewPaths(dataDir string) Paths {
	return Paths{DataDir: dataDir}
}

func (p Paths) Ledger() string {
	return filepath.Join(p.DataDir, "ledger.json")
}

func (p Paths) Index() string {
	return filepath.Join(p.DataDir, "index.json")
}

func (p Paths) Vectors() string {
	return filepath.Join(p.DataDir, "vectors.json")
}

func (p Paths) CacheDir() string {
	return filepath.Join(p.DataDir, "cache")
}

func (p Paths) ArchiveDir() string {
	return filepath.Join(p.DataDir, "archive")
}

func (p Paths) Lock() string {
	return filepath.Join(p.DataDir, "ingest.lock")
}

// Ensure creates the data directory tree
func (p Paths) Ensure() error {
	if err := os.MkdirAll(p.CacheDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a sibling temp file and renames it into
// place, so readers never observe a half-written file.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}
