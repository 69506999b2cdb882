package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/state"
	"github.com/draftsmith-ai/draftsmith/internal/telemetry"
	"github.com/google/uuid"
)

// truncationMarker is appended whenever content is capped, so a truncated
// working copy is never mistaken for the full text.
const truncationMarker = "\n\n[truncated]"

// LedgerStoreInterface defines the persistence interface for the fingerprint ledger
type LedgerStoreInterface interface {
	Load() (*domain.Ledger, error)
	Save(ledger *domain.Ledger) error
}

// IndexStoreInterface defines the persistence interface for the index
type IndexStoreInterface interface {
	Load() ([]domain.IndexRecord, error)
	Save(records []domain.IndexRecord) error
}

// CacheStoreInterface defines the persistence interface for full content items
type CacheStoreInterface interface {
	Put(item *domain.ContentItem) error
	Get(id string) (*domain.ContentItem, error)
	Delete(id string) error
	Records() ([]domain.IndexRecord, []domain.ItemError, error)
}

// VectorStoreInterface defines the persistence interface for cached embeddings
type VectorStoreInterface interface {
	Load() (state.Vectors, error)
	Save(vectors state.Vectors) error
}

// ArchiveWriter stores uncapped copies of ingested content
type ArchiveWriter interface {
	Put(ctx context.Context, id string, data []byte) error
}

// IngestLockInterface serializes ingestion runs
type IngestLockInterface interface {
	Acquire(runID string) error
	Release() error
}

// CorpusScanner discovers candidate corpus files
type CorpusScanner interface {
	Scan(ctx context.Context) ([]DiscoveredFile, []domain.ItemError)
}

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

// NewString generates a new UUID string
func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

// IngestConfig tunes the ingestion pipeline
type IngestConfig struct {
	// MaxContentChars caps the cached working copy, marker included.
	MaxContentChars int
	// PreviewChars bounds the preview prefix used for scoring and display.
	PreviewChars int
	// BatchSize fixes how many changed files are processed between
	// checkpoint commits.
	BatchSize int
}

// DefaultIngestConfig returns the tuned defaults
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		MaxContentChars: 24000,
		PreviewChars:    480,
		BatchSize:       25,
	}
}

// IngestService runs change-aware ingestion: scan, classify against the
// ledger, process changed files in checkpointed batches, and rebuild the
// index. It is the only writer of ledger, index, cache and vector state.
type IngestService struct {
	scanner     CorpusScanner
	ledgerStore LedgerStoreInterface
	indexStore  IndexStoreInterface
	cacheStore  CacheStoreInterface
	vectorStore VectorStoreInterface
	archive     ArchiveWriter
	embedder    EmbeddingClient
	lock        IngestLockInterface
	cfg         IngestConfig
	uuidGen     UUIDGenerator
}

// NewIngestService creates a new IngestService. archive and embedder may be
// nil; archiving and embedding are then skipped.
func NewIngestService(
	scanner CorpusScanner,
	ledgerStore LedgerStoreInterface,
	indexStore IndexStoreInterface,
	cacheStore CacheStoreInterface,
	vectorStore VectorStoreInterface,
	archive ArchiveWriter,
	embedder EmbeddingClient,
	lock IngestLockInterface,
	cfg IngestConfig,
) *IngestService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultIngestConfig().BatchSize
	}
	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = DefaultIngestConfig().MaxContentChars
	}
	if cfg.PreviewChars <= 0 {
		cfg.PreviewChars = DefaultIngestConfig().PreviewChars
	}
	return &IngestService{
		scanner:     scanner,
		ledgerStore: ledgerStore,
		indexStore:  indexStore,
		cacheStore:  cacheStore,
		vectorStore: vectorStore,
		archive:     archive,
		embedder:    embedder,
		lock:        lock,
		cfg:         cfg,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

// classified is one discovered file with its change classification
type classified struct {
	file        DiscoveredFile
	fingerprint string
	modifiedAt  time.Time
}

// Ingest runs one ingestion pass. force treats every discovered file as
// modified. The run takes the ingest lock for its whole duration; a
// concurrent run fails fast with ErrIngestLocked.
func (s *IngestService) Ingest(ctx context.Context, force bool) (*domain.IngestResult, error) {
	runID := s.uuidGen.NewString()
	ctx, span := telemetry.StartSpan(ctx, "IngestService.Ingest", telemetry.SpanAttributes{
		RunID:     runID,
		Operation: "ingest",
	})
	defer span.End()

	if err := s.lock.Acquire(runID); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.lock.Release(); err != nil {
			log.Printf("ingest %s: releasing lock: %v", runID, err)
		}
	}()

	result := &domain.IngestResult{
		RunID:     runID,
		StartedAt: time.Now().UTC(),
	}

	ledger, err := s.ledgerStore.Load()
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	vectors, err := s.vectorStore.Load()
	if err != nil {
		// The embedding cache is derived state: a corrupt file degrades
		// scoring until vectors are recomputed, it does not block ingestion.
		log.Printf("ingest %s: resetting embedding cache: %v", runID, err)
		result.Errors = append(result.Errors, domain.NewItemError("", err))
		vectors = make(state.Vectors)
	}

	files, warnings := s.scanner.Scan(ctx)
	result.Scanned = len(files)
	result.Errors = append(result.Errors, warnings...)

	var changed []classified
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ingest interrupted during classification: %w", err)
		}

		fingerprint, modifiedAt, err := fingerprintFile(f.SourcePath)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.NewItemError(f.SourcePath,
				domain.ErrCorpusFileUnreadable.WithCause(err)))
			continue
		}

		status := ledger.Classify(f.SourcePath, fingerprint)
		if force {
			status = domain.ChangeStatusModified
		}
		if status == domain.ChangeStatusUnchanged {
			result.Unchanged++
			continue
		}
		changed = append(changed, classified{file: f, fingerprint: fingerprint, modifiedAt: modifiedAt})
	}

	log.Printf("ingest %s: scanned=%d changed=%d unchanged=%d", runID, result.Scanned, len(changed), result.Unchanged)

	for start := 0; start < len(changed); start += s.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ingest interrupted between batches: %w", err)
		}

		end := start + s.cfg.BatchSize
		if end > len(changed) {
			end = len(changed)
		}

		for _, c := range changed[start:end] {
			s.processOne(ctx, c, ledger, vectors, result)
		}

		ledger.LastRunAt = time.Now().UTC()
		if err := s.commit(ledger, vectors, result); err != nil {
			span.SetError(err)
			return nil, err
		}
	}

	if len(changed) == 0 {
		// Nothing was processed but the run still counts: commit so
		// LastRunAt and any healed state land on disk.
		ledger.LastRunAt = time.Now().UTC()
		if err := s.commit(ledger, vectors, result); err != nil {
			span.SetError(err)
			return nil, err
		}
	}

	result.FinishedAt = time.Now().UTC()
	result.Success = result.Failed == 0
	log.Printf("ingest %s: processed=%d failed=%d truncated=%d in %s",
		runID, result.Processed, result.Failed, result.Truncated, result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
	return result, nil
}

// processOne ingests a single changed file. Failures are isolated: they are
// recorded on the result and the batch moves on.
func (s *IngestService) processOne(
	ctx context.Context,
	c classified,
	ledger *domain.Ledger,
	vectors state.Vectors,
	result *domain.IngestResult,
) {
	data, err := os.ReadFile(c.file.SourcePath)
	if err != nil {
		// The file vanished or broke between classification and processing.
		result.Failed++
		result.Errors = append(result.Errors, domain.NewItemError(c.file.SourcePath,
			domain.ErrCorpusFileUnreadable.WithCause(err)))
		return
	}

	// Hash the bytes actually read, in case the file changed since
	// classification; the ledger then matches what is cached.
	sum := sha256.Sum256(data)
	fingerprint := hex.EncodeToString(sum[:])

	now := time.Now().UTC()
	rawText, truncated := capContent(string(data), s.cfg.MaxContentChars)
	if truncated {
		result.Truncated++
	}

	item := &domain.ContentItem{
		ID:              domain.DeriveItemID(c.file.SourcePath),
		SourcePath:      c.file.SourcePath,
		DisplayName:     c.file.DisplayName,
		Type:            c.file.Type,
		Priority:        domain.PriorityFor(c.file.Type),
		RawText:         rawText,
		Preview:         previewOf(rawText, s.cfg.PreviewChars),
		Fingerprint:     fingerprint,
		Truncated:       truncated,
		LastModifiedAt:  c.modifiedAt.UTC(),
		LastProcessedAt: now,
	}

	if err := domain.ValidateContentItem(item); err != nil {
		result.Failed++
		result.Errors = append(result.Errors, domain.NewItemError(c.file.SourcePath, err))
		return
	}

	if s.archive != nil && truncated {
		// Keep the uncapped original reachable by item ID.
		if err := s.archive.Put(ctx, item.ID, data); err != nil {
			result.Errors = append(result.Errors, domain.NewItemError(c.file.SourcePath,
				domain.ErrArchiveWriteFail.WithCause(err)))
		}
	}

	if err := s.cacheStore.Put(item); err != nil {
		result.Failed++
		result.Errors = append(result.Errors, domain.NewItemError(c.file.SourcePath, err))
		return
	}

	if s.embedder != nil {
		vec, err := s.embedder.GenerateEmbedding(ctx, item.Preview)
		if err != nil {
			// The item stays indexed; scoring degrades to lexical until a
			// later run embeds it.
			delete(vectors, item.ID)
			result.Errors = append(result.Errors, domain.NewItemError(c.file.SourcePath,
				domain.ErrEmbeddingUnavailable.WithCause(err)))
		} else {
			vectors[item.ID] = state.VectorEntry{Fingerprint: fingerprint, Values: vec}
		}
	}

	ledger.Upsert(c.file.SourcePath, domain.LedgerEntry{
		Fingerprint: fingerprint,
		Type:        item.Type,
		ModifiedAt:  item.LastModifiedAt,
		ProcessedAt: now,
	})
	result.Processed++
}

// commit persists one checkpoint. Write order is load-bearing: cache files
// are already on disk, vectors and ledger land next, and the index is
// rebuilt from the cache last. An interruption at any point leaves the index
// a subset of the ledger, and the next run converges.
func (s *IngestService) commit(ledger *domain.Ledger, vectors state.Vectors, result *domain.IngestResult) error {
	if err := s.vectorStore.Save(vectors); err != nil {
		return fmt.Errorf("commit vectors: %w", err)
	}
	if err := s.ledgerStore.Save(ledger); err != nil {
		return fmt.Errorf("commit ledger: %w", err)
	}

	records, skipped, err := s.cacheStore.Records()
	if err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	result.Errors = append(result.Errors, skipped...)

	if err := s.indexStore.Save(records); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

// fingerprintFile hashes a file's content without holding it in memory
func fingerprintFile(path string) (string, time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", time.Time{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", time.Time{}, err
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", time.Time{}, err
	}

	return hex.EncodeToString(h.Sum(nil)), info.ModTime(), nil
}

// capContent bounds text to maxChars runes, marker included. Truncation is
// always explicit, never silent.
func capContent(text string, maxChars int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, false
	}

	keep := maxChars - len([]rune(truncationMarker))
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + truncationMarker, true
}

// previewOf takes the preview prefix of the working copy
func previewOf(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
