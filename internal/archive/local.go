// Package archive keeps the uncapped original of every truncated corpus
// item, addressable by item ID. The cache holds the capped working copy used
// for scoring and generation; the archive is where the full text survives.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists uncapped archival copies keyed by item ID
type Store interface {
	Put(ctx context.Context, id string, data []byte) error
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// LocalStore writes archival copies to a directory, one file per item
type LocalStore struct {
	dir string
}

// NewLocalStore creates a local archive rooted at dir
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) entryPath(id string) string {
	return filepath.Join(s.dir, id+".txt")
}

// Put writes one archival copy via temp file and rename
func (s *LocalStore) Put(_ context.Context, id string, data []byte) error {
	path := s.entryPath(id)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", id, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to rename archive entry %s: %w", id, err)
	}
	return nil
}

// Get reads one archival copy
func (s *LocalStore) Get(_ context.Context, id string) ([]byte, error) {
	data, err := os.ReadFile(s.entryPath(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read archive entry %s: %w", id, err)
	}
	return data, nil
}

// Delete removes one archival copy. Items below the truncation cap are
// never archived, so a missing entry is not an error.
func (s *LocalStore) Delete(_ context.Context, id string) error {
	if err := os.Remove(s.entryPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete archive entry %s: %w", id, err)
	}
	return nil
}
