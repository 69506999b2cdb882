package state

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// indexFile is the on-disk shape of the index
type indexFile struct {
	Records []domain.IndexRecord `json:"records"`
}

// IndexStore persists the ordered index as a single JSON file. The index is
// a derived artifact: ingestion rebuilds it from the content cache, queries
// only ever read it.
type IndexStore struct {
	path string
}

func NewIndexStore(path string) *IndexStore {
	return &IndexStore{path: path}
}

// Path returns the on-disk location of the index file.
func (s *IndexStore) Path() string {
	return s.path
}

// Load reads the index records in stored order. A missing file yields an
// empty index; an unparseable file is state corruption.
func (s *IndexStore) Load() ([]domain.IndexRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read index %s: %w", s.path, err)
	}

	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, domain.ErrIndexCorrupted.WithCause(err)
	}

	return f.Records, nil
}

// Save writes the index atomically
func (s *IndexStore) Save(records []domain.IndexRecord) error {
	data, err := json.MarshalIndent(indexFile{Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
