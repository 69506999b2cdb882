package state

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// VectorEntry is one cached preview embedding, stamped with the fingerprint
// of the content it was computed from
type VectorEntry struct {
	Fingerprint string    `json:"fingerprint"`
	Values      []float32 `json:"values"`
}

// Vectors maps item IDs to their cached embeddings
type Vectors map[string]VectorEntry

// Lookup returns the cached vector for an item if it is still valid for the
// given fingerprint. A stale vector counts as a miss.
func (v Vectors) Lookup(id, fingerprint string) ([]float32, bool) {
	entry, ok := v[id]
	if !ok || entry.Fingerprint != fingerprint {
		return nil, false
	}
	return entry.Values, true
}

// VectorStore persists the embedding cache as a single JSON file
type VectorStore struct {
	path string
}

func NewVectorStore(path string) *VectorStore {
	return &VectorStore{path: path}
}

// Load reads the embedding cache. A missing file yields an empty cache; an
// unparseable file is reported as corruption so the caller can degrade to
// lexical scoring instead of aborting.
func (s *VectorStore) Load() (Vectors, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(Vectors), nil
		}
		return nil, fmt.Errorf("failed to read vectors %s: %w", s.path, err)
	}

	var vectors Vectors
	if err := json.Unmarshal(data, &vectors); err != nil {
		return nil, domain.ErrVectorsCorrupted.WithCause(err)
	}
	if vectors == nil {
		vectors = make(Vectors)
	}

	return vectors, nil
}

// Save writes the embedding cache atomically
func (s *VectorStore) Save(vectors Vectors) error {
	data, err := json.Marshal(vectors)
	if err != nil {
		return fmt.Errorf("failed to marshal vectors: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
