package service

import (
	"context"
	"log"
	"os"
	"sort"
	"time"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/pagination"
	"github.com/draftsmith-ai/draftsmith/internal/telemetry"
)

// defaultItemsPageSize bounds index listings when the caller gives no limit.
const defaultItemsPageSize = 20

// ArchiveRemover drops the uncapped archival copy of a pruned item
type ArchiveRemover interface {
	Delete(ctx context.Context, id string) error
}

// MaintenanceService reports on and repairs corpus state. Pruning is the
// only way entries leave the ledger: a deleted source file keeps its stale
// ledger entry until an operator prunes explicitly.
type MaintenanceService struct {
	ledgerStore LedgerStoreInterface
	indexStore  IndexStoreInterface
	cacheStore  CacheStoreInterface
	vectorStore VectorStoreInterface
	lock        IngestLockInterface
	archive     ArchiveRemover
	dataDir     string
	uuidGen     UUIDGenerator
}

// NewMaintenanceService creates a new MaintenanceService instance.
// archive may be nil when no archive backend is configured.
func NewMaintenanceService(
	ledgerStore LedgerStoreInterface,
	indexStore IndexStoreInterface,
	cacheStore CacheStoreInterface,
	vectorStore VectorStoreInterface,
	lock IngestLockInterface,
	archive ArchiveRemover,
	dataDir string,
) *MaintenanceService {
	return &MaintenanceService{
		ledgerStore: ledgerStore,
		indexStore:  indexStore,
		cacheStore:  cacheStore,
		vectorStore: vectorStore,
		lock:        lock,
		archive:     archive,
		dataDir:     dataDir,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

// Status summarizes the current corpus state
func (s *MaintenanceService) Status(ctx context.Context) (*domain.StatusReport, error) {
	_, span := telemetry.StartSpan(ctx, "MaintenanceService.Status", telemetry.SpanAttributes{
		Operation: "status",
	})
	defer span.End()

	ledger, err := s.ledgerStore.Load()
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	records, err := s.indexStore.Load()
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	report := &domain.StatusReport{
		ItemCount:   len(records),
		LedgerCount: len(ledger.Entries),
		TypeCounts:  make(map[domain.ContentType]int),
		DataDir:     s.dataDir,
	}

	vectors, err := s.vectorStore.Load()
	if err != nil {
		vectors = nil
	}
	for _, rec := range records {
		report.TypeCounts[rec.Type]++
		if _, ok := vectors.Lookup(rec.ID, rec.Fingerprint); ok {
			report.EmbeddedCount++
		}
	}

	if !ledger.LastRunAt.IsZero() {
		t := ledger.LastRunAt
		report.LastRunAt = &t
	}

	return report, nil
}

// ListItems pages through the index, most recently processed first
func (s *MaintenanceService) ListItems(ctx context.Context, cursor string, limit int) (*pagination.PageResult[domain.IndexRecord], error) {
	_, span := telemetry.StartSpan(ctx, "MaintenanceService.ListItems", telemetry.SpanAttributes{
		Operation: "list_items",
	})
	defer span.End()

	decoded, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid cursor", err)
	}

	records, err := s.indexStore.Load()
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if limit <= 0 {
		limit = defaultItemsPageSize
	}

	page := pagination.Page(records, decoded, limit,
		func(r domain.IndexRecord) string { return r.ID },
		func(r domain.IndexRecord) time.Time { return r.LastProcessedAt })
	return &page, nil
}

// Prune removes ledger entries, cache files, index records, cached vectors
// and archival copies for source paths that no longer exist on disk.
// Pruning takes the ingest lock: it is a state writer like ingestion.
func (s *MaintenanceService) Prune(ctx context.Context, dryRun bool) (*domain.PruneResult, error) {
	runID := s.uuidGen.NewString()
	_, span := telemetry.StartSpan(ctx, "MaintenanceService.Prune", telemetry.SpanAttributes{
		RunID:     runID,
		Operation: "prune",
	})
	defer span.End()

	result := &domain.PruneResult{DryRun: dryRun}

	if !dryRun {
		if err := s.lock.Acquire(runID); err != nil {
			return nil, err
		}
		defer func() {
			if err := s.lock.Release(); err != nil {
				log.Printf("prune %s: releasing lock: %v", runID, err)
			}
		}()
	}

	ledger, err := s.ledgerStore.Load()
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	vectors, err := s.vectorStore.Load()
	if err != nil {
		result.Errors = append(result.Errors, domain.NewItemError("", err))
		vectors = nil
	}

	paths := make([]string, 0, len(ledger.Entries))
	for path := range ledger.Entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, domain.NewItemError(path,
				domain.ErrCorpusFileUnreadable.WithCause(err)))
			continue
		}

		result.RemovedEntries++
		if dryRun {
			continue
		}

		id := domain.DeriveItemID(path)
		delete(ledger.Entries, path)
		if vectors != nil {
			delete(vectors, id)
		}
		if err := s.cacheStore.Delete(id); err != nil {
			result.Errors = append(result.Errors, domain.NewItemError(path, err))
		} else {
			result.RemovedCaches++
		}
		if s.archive != nil {
			// Archive copies track the ledger: a pruned item keeps no
			// orphaned original behind.
			if err := s.archive.Delete(ctx, id); err != nil {
				result.Errors = append(result.Errors, domain.NewItemError(path, err))
			} else {
				result.RemovedArchives++
			}
		}
	}

	if dryRun {
		result.RemovedRecords = result.RemovedEntries
		result.Success = true
		return result, nil
	}

	if result.RemovedEntries > 0 {
		if vectors != nil {
			if err := s.vectorStore.Save(vectors); err != nil {
				span.SetError(err)
				return nil, err
			}
		}
		ledger.LastRunAt = time.Now().UTC()
		if err := s.ledgerStore.Save(ledger); err != nil {
			span.SetError(err)
			return nil, err
		}

		before, _ := s.indexStore.Load()
		records, skipped, err := s.cacheStore.Records()
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		result.Errors = append(result.Errors, skipped...)
		if err := s.indexStore.Save(records); err != nil {
			span.SetError(err)
			return nil, err
		}
		result.RemovedRecords = len(before) - len(records)
		if result.RemovedRecords < 0 {
			result.RemovedRecords = 0
		}
	}

	result.Success = true
	log.Printf("prune %s: removed entries=%d caches=%d records=%d archives=%d dry_run=%t",
		runID, result.RemovedEntries, result.RemovedCaches, result.RemovedRecords, result.RemovedArchives, dryRun)
	return result, nil
}
