package state

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// LedgerStore persists the fingerprint ledger as a single JSON file
type LedgerStore struct {
	path string
}

func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// Load reads the ledger. A missing file yields an empty ledger; an
// unparseable file is state corruption and aborts the caller.
func (s *LedgerStore) Load() (*domain.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewLedger(), nil
		}
		return nil, fmt.Errorf("failed to read ledger %s: %w", s.path, err)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, domain.ErrLedgerCorrupted.WithCause(err)
	}
	if ledger.Entries == nil {
		ledger.Entries = make(map[string]domain.LedgerEntry)
	}

	return &ledger, nil
}

// Save writes the ledger atomically
func (s *LedgerStore) Save(ledger *domain.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
