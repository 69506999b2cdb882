package domain

import "time"

// ChangeStatus classifies a discovered file against the fingerprint ledger
type ChangeStatus string

const (
	ChangeStatusNew       ChangeStatus = "new"
	ChangeStatusModified  ChangeStatus = "modified"
	ChangeStatusUnchanged ChangeStatus = "unchanged"
)

// LedgerEntry records the last known fingerprint of one source path
type LedgerEntry struct {
	Fingerprint string      `json:"fingerprint"`
	Type        ContentType `json:"type"`
	ModifiedAt  time.Time   `json:"modified_at"`
	ProcessedAt time.Time   `json:"processed_at"`
}

// Ledger maps source paths to their last processed fingerprints. Entries for
// paths that have disappeared from disk are kept until an explicit prune; the
// index never references a path the ledger does not know about.
type Ledger struct {
	Entries   map[string]LedgerEntry `json:"entries"`
	LastRunAt time.Time              `json:"last_run_at"`
}

// NewLedger creates an empty Ledger
func NewLedger() *Ledger {
	return &Ledger{
		Entries: make(map[string]LedgerEntry),
	}
}

// Classify compares a fingerprint against the ledger entry for the path
func (l *Ledger) Classify(sourcePath, fingerprint string) ChangeStatus {
	entry, ok := l.Entries[sourcePath]
	if !ok {
		return ChangeStatusNew
	}
	if entry.Fingerprint != fingerprint {
		return ChangeStatusModified
	}
	return ChangeStatusUnchanged
}

// Upsert records the latest fingerprint for a path
func (l *Ledger) Upsert(sourcePath string, entry LedgerEntry) {
	if l.Entries == nil {
		l.Entries = make(map[string]LedgerEntry)
	}
	l.Entries[sourcePath] = entry
}
