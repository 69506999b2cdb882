package service

import (
	"fmt"
	"time"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// CacheReader loads full content items for assembly
type CacheReader interface {
	Get(id string) (*domain.ContentItem, error)
}

// Assembler renders selected candidates into a context bundle, pulling full
// text from the content cache
type Assembler struct {
	cache CacheReader
}

// NewAssembler creates a new Assembler
func NewAssembler(cache CacheReader) *Assembler {
	return &Assembler{cache: cache}
}

// Assemble builds the bundle in selection order. A missing cache entry
// degrades that block to the index preview and is reported as a warning;
// assembly itself never fails.
func (a *Assembler) Assemble(topic string, selected []domain.ScoredCandidate) (*domain.ContextBundle, []domain.ItemError) {
	bundle := &domain.ContextBundle{
		Topic:     topic,
		CreatedAt: time.Now().UTC(),
		Blocks:    make([]domain.ContextBlock, 0, len(selected)),
	}

	var warnings []domain.ItemError
	for _, c := range selected {
		text := c.Record.Preview
		item, err := a.cache.Get(c.Record.ID)
		if err != nil {
			warnings = append(warnings, domain.NewItemError(c.Record.SourcePath, err))
		} else {
			text = item.RawText
		}

		bundle.Blocks = append(bundle.Blocks, domain.ContextBlock{
			Type:        c.Record.Type,
			SourceLabel: sourceLabel(c.Record),
			Text:        text,
			Score:       c.Score,
			Reason:      c.Reason,
		})
	}

	bundle.Errors = warnings
	return bundle, warnings
}

// sourceLabel renders human-readable provenance for a block
func sourceLabel(rec domain.IndexRecord) string {
	return fmt.Sprintf("%s (%s)", rec.DisplayName, rec.SourcePath)
}
