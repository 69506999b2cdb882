package service

import (
	"context"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/pagination"
)

// Engine bundles the four public operations behind one facade so the CLI,
// the daemon handlers and the background worker all drive the same wiring.
type Engine struct {
	ingest      *IngestService
	contexts    *ContextService
	compose     *ComposeService
	maintenance *MaintenanceService
}

// NewEngine creates an Engine over already-wired services. compose may be
// nil when no generation client is configured.
func NewEngine(
	ingest *IngestService,
	contexts *ContextService,
	compose *ComposeService,
	maintenance *MaintenanceService,
) *Engine {
	return &Engine{
		ingest:      ingest,
		contexts:    contexts,
		compose:     compose,
		maintenance: maintenance,
	}
}

// Ingest runs one change-aware ingestion pass
func (e *Engine) Ingest(ctx context.Context, force bool) (*domain.IngestResult, error) {
	return e.ingest.Ingest(ctx, force)
}

// GetContext builds a grounding bundle for a topic
func (e *Engine) GetContext(ctx context.Context, query domain.ContextQuery) (*domain.ContextResult, error) {
	return e.contexts.GetContext(ctx, query)
}

// Compose produces a generated draft grounded in a fresh bundle. Returns
// ErrGenerationUnavailable when no generation client is configured.
func (e *Engine) Compose(ctx context.Context, input ComposeInput) (*domain.ComposeResult, error) {
	if e.compose == nil {
		return nil, domain.ErrGenerationUnavailable
	}
	return e.compose.Compose(ctx, input)
}

// Status summarizes the current corpus state
func (e *Engine) Status(ctx context.Context) (*domain.StatusReport, error) {
	return e.maintenance.Status(ctx)
}

// ListItems pages through the index, most recently processed first
func (e *Engine) ListItems(ctx context.Context, cursor string, limit int) (*pagination.PageResult[domain.IndexRecord], error) {
	return e.maintenance.ListItems(ctx, cursor, limit)
}

// Prune drops state for source files that no longer exist
func (e *Engine) Prune(ctx context.Context, dryRun bool) (*domain.PruneResult, error) {
	return e.maintenance.Prune(ctx, dryRun)
}

// CanCompose reports whether a generation client is configured
func (e *Engine) CanCompose() bool {
	return e.compose != nil
}
