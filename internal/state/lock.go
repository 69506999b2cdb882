package state

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// IngestLock serializes ingestion runs across processes with an exclusive
// lock file in the data directory. A second writer fails fast instead of
// racing the first one's batch commits.
type IngestLock struct {
	path string
}

func NewIngestLock(path string) *IngestLock {
	return &IngestLock{path: path}
}

// Acquire takes the lock, recording who holds it. Returns ErrIngestLocked
// when another run already holds it.
func (l *IngestLock) Acquire(runID string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			holder := "unknown holder"
			if data, readErr := os.ReadFile(l.path); readErr == nil {
				holder = strings.TrimSpace(string(data))
			}
			return fmt.Errorf("%w: %s", domain.ErrIngestLocked, holder)
		}
		return fmt.Errorf("failed to create lock %s: %w", l.path, err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "pid=%d run=%s at=%s", os.Getpid(), runID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write lock %s: %w", l.path, err)
	}

	return nil
}

// Release removes the lock file
func (l *IngestLock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock %s: %w", l.path, err)
	}
	return nil
}
