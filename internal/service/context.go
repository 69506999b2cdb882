package service

import (
	"context"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/state"
	"github.com/draftsmith-ai/draftsmith/internal/telemetry"
)

// ContextService answers topic queries: score the whole index, select a
// balanced subset, assemble the bundle. The query path only reads state;
// ingestion is the sole writer.
type ContextService struct {
	indexStore      IndexStoreInterface
	vectorStore     VectorStoreInterface
	scorer          *Scorer
	selector        *Selector
	assembler       *Assembler
	defaultMaxItems int
}

// NewContextService creates a new ContextService instance
func NewContextService(
	indexStore IndexStoreInterface,
	vectorStore VectorStoreInterface,
	scorer *Scorer,
	selector *Selector,
	assembler *Assembler,
	defaultMaxItems int,
) *ContextService {
	if defaultMaxItems <= 0 {
		defaultMaxItems = 8
	}
	return &ContextService{
		indexStore:      indexStore,
		vectorStore:     vectorStore,
		scorer:          scorer,
		selector:        selector,
		assembler:       assembler,
		defaultMaxItems: defaultMaxItems,
	}
}

// GetContext builds the grounding bundle for a topic. An empty index yields
// an empty bundle, not an error; per-item degradations are reported in the
// result's error list. Only unusable persistent state aborts the call.
func (s *ContextService) GetContext(ctx context.Context, query domain.ContextQuery) (*domain.ContextResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ContextService.GetContext", telemetry.SpanAttributes{
		Topic:     query.Topic,
		Operation: "get_context",
	})
	defer span.End()

	if query.MaxItems <= 0 {
		query.MaxItems = s.defaultMaxItems
	}
	if err := domain.ValidateContextQuery(query); err != nil {
		return nil, err
	}

	records, err := s.indexStore.Load()
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	var itemErrors []domain.ItemError
	vectors, err := s.vectorStore.Load()
	if err != nil {
		// Degrade to lexical scoring rather than refusing the query.
		itemErrors = append(itemErrors, domain.NewItemError("", err))
		vectors = make(state.Vectors)
	}

	candidates, scoreErrors := s.scorer.ScoreAll(ctx, query, records, vectors)
	itemErrors = append(itemErrors, scoreErrors...)

	selected := s.selector.Select(candidates, query.MaxItems)

	bundle, assembleErrors := s.assembler.Assemble(query.Topic, selected)
	itemErrors = append(itemErrors, assembleErrors...)
	bundle.Errors = itemErrors

	return &domain.ContextResult{
		Success: true,
		Bundle:  bundle,
		Errors:  itemErrors,
	}, nil
}
