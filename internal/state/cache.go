package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// CacheStore persists full content items, one JSON file per item, addressed
// by item ID
type CacheStore struct {
	dir string
}

func NewCacheStore(dir string) *CacheStore {
	return &CacheStore{dir: dir}
}

func (s *CacheStore) entryPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Put writes one item atomically
func (s *CacheStore) Put(item *domain.ContentItem) error {
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal item %s: %w", item.ID, err)
	}
	return writeFileAtomic(s.entryPath(item.ID), data)
}

// Get loads one item. Missing and unreadable entries both surface as a
// cache miss so callers can fall back to the stored preview.
func (s *CacheStore) Get(id string) (*domain.ContentItem, error) {
	data, err := os.ReadFile(s.entryPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheEntryMissing
		}
		return nil, domain.ErrCacheEntryMissing.WithCause(err)
	}

	var item domain.ContentItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeCacheMiss, "cached content unreadable for index record", err)
	}

	return &item, nil
}

// Delete removes one item; deleting an absent entry is not an error
func (s *CacheStore) Delete(id string) error {
	err := os.Remove(s.entryPath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache entry %s: %w", id, err)
	}
	return nil
}

// Records projects every cached item down to its index record, ordered by
// most recently processed first (ties broken by source path). Individual
// unreadable entries are skipped and reported, never fatal.
func (s *CacheStore) Records() ([]domain.IndexRecord, []domain.ItemError, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read cache dir %s: %w", s.dir, err)
	}

	var records []domain.IndexRecord
	var skipped []domain.ItemError
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(".json")]
		item, err := s.Get(id)
		if err != nil {
			skipped = append(skipped, domain.NewItemError(entry.Name(), err))
			continue
		}
		records = append(records, item.Record())
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].LastProcessedAt.Equal(records[j].LastProcessedAt) {
			return records[i].LastProcessedAt.After(records[j].LastProcessedAt)
		}
		return records[i].SourcePath < records[j].SourcePath
	})

	return records, skipped, nil
}
