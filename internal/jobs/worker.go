// Package jobs runs background ingestion for the daemon: a poll-loop
// scheduler that re-ingests the corpus on a fixed interval, optionally gated
// on a dirty flag set by the filesystem watcher.
package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// Ingestor runs one ingestion pass over the corpus
type Ingestor interface {
	Ingest(ctx context.Context, force bool) (*domain.IngestResult, error)
}

// DirtyFlag reports whether the corpus changed since the last check. Consume
// resets the flag.
type DirtyFlag interface {
	Consume() bool
}

// IngestWorker re-ingests the corpus on a fixed interval. When a dirty flag
// is attached, ticks with an untouched corpus are skipped; without one every
// tick ingests, relying on fingerprints to make unchanged runs cheap.
type IngestWorker struct {
	ingestor     Ingestor
	dirty        DirtyFlag
	pollInterval time.Duration
	stopChan     chan struct{}
	doneChan     chan struct{}
}

// NewIngestWorker creates a new IngestWorker. dirty may be nil.
func NewIngestWorker(ingestor Ingestor, dirty DirtyFlag, pollInterval time.Duration) *IngestWorker {
	return &IngestWorker{
		ingestor:     ingestor,
		dirty:        dirty,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// Start begins the worker's polling loop
func (w *IngestWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	defer close(w.doneChan)

	log.Printf("ingest worker started with poll interval: %v", w.pollInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("ingest worker stopped: context cancelled")
			return
		case <-w.stopChan:
			log.Println("ingest worker stopped: stop signal received")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick runs one scheduled ingestion if the corpus is dirty (or no watcher is
// attached). A run that loses the ingest lock to a concurrent operator
// command is skipped, not an error worth alarming on.
func (w *IngestWorker) tick(ctx context.Context) {
	if w.dirty != nil && !w.dirty.Consume() {
		return
	}

	result, err := w.ingestor.Ingest(ctx, false)
	if err != nil {
		if errors.Is(err, domain.ErrIngestLocked) {
			log.Println("ingest worker: run skipped, another writer holds the lock")
			return
		}
		log.Printf("ingest worker: run failed: %v", err)
		return
	}

	if result.Processed > 0 || result.Failed > 0 {
		log.Printf("ingest worker: processed=%d unchanged=%d failed=%d",
			result.Processed, result.Unchanged, result.Failed)
	}
}

// Stop gracefully stops the worker
func (w *IngestWorker) Stop() {
	close(w.stopChan)
	<-w.doneChan
	log.Println("ingest worker shutdown complete")
}
