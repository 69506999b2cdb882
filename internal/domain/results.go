package domain

import "time"

// ItemError records a non-fatal failure scoped to one corpus item. Per-item
// failures are isolated and reported; they never abort the surrounding run.
type ItemError struct {
	SourcePath string `json:"source_path,omitempty"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// NewItemError builds an ItemError from a path and an error, preserving the
// domain error code when one is present
func NewItemError(sourcePath string, err error) ItemError {
	ie := ItemError{
		SourcePath: sourcePath,
		Code:       ErrCodeInternalError,
	}
	if err == nil {
		return ie
	}
	ie.Message = err.Error()
	var de *DomainError
	if AsDomainError(err, &de) {
		ie.Code = de.Code
		ie.Message = de.Message
		if de.Err != nil {
			ie.Message = de.Message + ": " + de.Err.Error()
		}
	}
	return ie
}

// IngestResult summarizes one ingestion run
type IngestResult struct {
	Success    bool        `json:"success"`
	RunID      string      `json:"run_id"`
	Scanned    int         `json:"scanned"`
	Processed  int         `json:"processed"`
	Unchanged  int         `json:"unchanged"`
	Failed     int         `json:"failed"`
	Truncated  int         `json:"truncated"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Errors     []ItemError `json:"errors,omitempty"`
}

// ContextResult wraps a bundle with the non-fatal errors met while building it
type ContextResult struct {
	Success bool           `json:"success"`
	Bundle  *ContextBundle `json:"bundle,omitempty"`
	Errors  []ItemError    `json:"errors,omitempty"`
}

// ComposeResult carries a generated draft together with the bundle that
// grounded it
type ComposeResult struct {
	Success bool           `json:"success"`
	Draft   string         `json:"draft,omitempty"`
	Bundle  *ContextBundle `json:"bundle,omitempty"`
	Errors  []ItemError    `json:"errors,omitempty"`
}

// StatusReport describes the current state of the corpus index
type StatusReport struct {
	ItemCount     int                 `json:"item_count"`
	LedgerCount   int                 `json:"ledger_count"`
	TypeCounts    map[ContentType]int `json:"type_counts"`
	EmbeddedCount int                 `json:"embedded_count"`
	LastRunAt     *time.Time          `json:"last_run_at,omitempty"`
	DataDir       string              `json:"data_dir"`
}

// PruneResult summarizes an explicit maintenance prune
type PruneResult struct {
	Success         bool        `json:"success"`
	RemovedEntries  int         `json:"removed_entries"`
	RemovedRecords  int         `json:"removed_records"`
	RemovedCaches   int         `json:"removed_caches"`
	RemovedArchives int         `json:"removed_archives"`
	DryRun          bool        `json:"dry_run"`
	Errors          []ItemError `json:"errors,omitempty"`
}
