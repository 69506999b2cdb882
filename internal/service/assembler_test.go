package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// MockCacheReader is a mock implementation of CacheReader
type MockCacheReader struct {
	mock.Mock
}

func (m *MockCacheReader) Get(id string) (*domain.ContentItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentItem), args.Error(1)
}

func TestAssemblerAssemble(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	selected := []domain.ScoredCandidate{
		{
			Record: domain.IndexRecord{
				ID:          "aaa",
				SourcePath:  "/corpus/style/brand.md",
				DisplayName: "brand.md",
				Type:        domain.ContentTypeStyleGuide,
				Preview:     "short preview of brand",
				LastProcessedAt: at,
			},
			Score:  anchorSentinelScore,
			Reason: domain.ReasonAnchor,
		},
		{
			Record: domain.IndexRecord{
				ID:          "bbb",
				SourcePath:  "/corpus/blog/launch.md",
				DisplayName: "launch.md",
				Type:        domain.ContentTypeBlogPost,
				Preview:     "short preview of launch",
				LastProcessedAt: at,
			},
			Score:  0.7,
			Reason: domain.ReasonFill,
		},
	}

	t.Run("emits blocks with full text in selection order", func(t *testing.T) {
		cache := new(MockCacheReader)
		cache.On("Get", "aaa").Return(&domain.ContentItem{ID: "aaa", RawText: "full brand guide"}, nil)
		cache.On("Get", "bbb").Return(&domain.ContentItem{ID: "bbb", RawText: "full launch post"}, nil)
		assembler := NewAssembler(cache)

		bundle, warnings := assembler.Assemble("launch voice", selected)

		require.Empty(t, warnings)
		require.Len(t, bundle.Blocks, 2)
		assert.Equal(t, "launch voice", bundle.Topic)
		assert.Equal(t, "full brand guide", bundle.Blocks[0].Text)
		assert.Equal(t, "brand.md (/corpus/style/brand.md)", bundle.Blocks[0].SourceLabel)
		assert.Equal(t, domain.ReasonAnchor, bundle.Blocks[0].Reason)
		assert.Equal(t, anchorSentinelScore, bundle.Blocks[0].Score)
		assert.Equal(t, "full launch post", bundle.Blocks[1].Text)
		cache.AssertExpectations(t)
	})

	t.Run("missing cache entry falls back to the preview with a warning", func(t *testing.T) {
		cache := new(MockCacheReader)
		cache.On("Get", "aaa").Return(&domain.ContentItem{ID: "aaa", RawText: "full brand guide"}, nil)
		cache.On("Get", "bbb").Return(nil, domain.ErrCacheEntryMissing)
		assembler := NewAssembler(cache)

		bundle, warnings := assembler.Assemble("launch voice", selected)

		require.Len(t, bundle.Blocks, 2)
		assert.Equal(t, "short preview of launch", bundle.Blocks[1].Text)
		require.Len(t, warnings, 1)
		assert.Equal(t, domain.ErrCodeCacheMiss, warnings[0].Code)
		assert.Equal(t, "/corpus/blog/launch.md", warnings[0].SourcePath)
	})

	t.Run("empty selection assembles an empty bundle", func(t *testing.T) {
		assembler := NewAssembler(new(MockCacheReader))

		bundle, warnings := assembler.Assemble("anything", nil)

		require.NotNil(t, bundle)
		assert.Empty(t, bundle.Blocks)
		assert.Empty(t, warnings)
	})
}
