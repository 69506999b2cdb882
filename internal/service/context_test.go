package service

import (
	"context"
	"testing"
	"time"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIndexStore struct {
	mock.Mock
}

func (m *MockIndexStore) Load() ([]domain.IndexRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IndexRecord), args.Error(1)
}

func (m *MockIndexStore) Save(records []domain.IndexRecord) error {
	args := m.Called(records)
	return args.Error(0)
}

type MockVectorStore struct {
	mock.Mock
}

func (m *MockVectorStore) Load() (state.Vectors, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(state.Vectors), args.Error(1)
}

func (m *MockVectorStore) Save(vectors state.Vectors) error {
	args := m.Called(vectors)
	return args.Error(0)
}

func newContextServiceForTest(indexStore *MockIndexStore, vectorStore *MockVectorStore, cache *MockCacheReader) *ContextService {
	scorer := NewScorer(nil)
	selector := NewSelector(DefaultSelectionConfig())
	assembler := NewAssembler(cache)
	return NewContextService(indexStore, vectorStore, scorer, selector, assembler, 8)
}

func indexedRecord(path string, ct domain.ContentType, preview string) domain.IndexRecord {
	id := domain.DeriveItemID(path)
	return domain.IndexRecord{
		ID:              id,
		SourcePath:      path,
		DisplayName:     path,
		Type:            ct,
		Priority:        domain.PriorityFor(ct),
		Preview:         preview,
		CacheRef:        id + ".json",
		Fingerprint:     "fp-" + id,
		LastProcessedAt: time.Now().UTC(),
	}
}

func TestContextService_GetContext_EmptyIndex(t *testing.T) {
	indexStore := new(MockIndexStore)
	vectorStore := new(MockVectorStore)
	cache := new(MockCacheReader)
	svc := newContextServiceForTest(indexStore, vectorStore, cache)

	indexStore.On("Load").Return([]domain.IndexRecord{}, nil)
	vectorStore.On("Load").Return(state.Vectors{}, nil)

	result, err := svc.GetContext(context.Background(), domain.ContextQuery{Topic: "pricing strategy"})

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Bundle)
	assert.Empty(t, result.Bundle.Blocks)
	assert.Empty(t, result.Errors)
}

func TestContextService_GetContext_MissingTopic(t *testing.T) {
	indexStore := new(MockIndexStore)
	vectorStore := new(MockVectorStore)
	cache := new(MockCacheReader)
	svc := newContextServiceForTest(indexStore, vectorStore, cache)

	_, err := svc.GetContext(context.Background(), domain.ContextQuery{})

	require.Error(t, err)
	indexStore.AssertNotCalled(t, "Load")
}

func TestContextService_GetContext_LexicalSelection(t *testing.T) {
	indexStore := new(MockIndexStore)
	vectorStore := new(MockVectorStore)
	cache := new(MockCacheReader)
	svc := newContextServiceForTest(indexStore, vectorStore, cache)

	onTopic := indexedRecord("blog/pricing.md", domain.ContentTypeBlogPost, "Pricing strategy for annual plans and upgrade paths.")
	offTopic := indexedRecord("blog/hiring.md", domain.ContentTypeBlogPost, "Notes about hiring a support team.")

	indexStore.On("Load").Return([]domain.IndexRecord{onTopic, offTopic}, nil)
	vectorStore.On("Load").Return(state.Vectors{}, nil)
	cache.On("Get", onTopic.ID).Return(&domain.ContentItem{
		ID:      onTopic.ID,
		RawText: "Pricing strategy for annual plans and upgrade paths. Full text.",
	}, nil)
	cache.On("Get", offTopic.ID).Return(&domain.ContentItem{
		ID:      offTopic.ID,
		RawText: "Notes about hiring a support team. Full text.",
	}, nil)

	result, err := svc.GetContext(context.Background(), domain.ContextQuery{
		Topic:    "pricing strategy",
		MaxItems: 2,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Bundle)
	require.NotEmpty(t, result.Bundle.Blocks)
	assert.Equal(t, "blog/pricing.md", result.Bundle.Blocks[0].SourceLabel)
}

func TestContextService_GetContext_AppliesDefaultMaxItems(t *testing.T) {
	indexStore := new(MockIndexStore)
	vectorStore := new(MockVectorStore)
	cache := new(MockCacheReader)
	scorer := NewScorer(nil)
	selector := NewSelector(DefaultSelectionConfig())
	assembler := NewAssembler(cache)
	svc := NewContextService(indexStore, vectorStore, scorer, selector, assembler, 2)

	var records []domain.IndexRecord
	for _, path := range []string{"blog/a.md", "blog/b.md", "blog/c.md", "blog/d.md"} {
		rec := indexedRecord(path, domain.ContentTypeBlogPost, "Launch checklist for the product launch.")
		records = append(records, rec)
		cache.On("Get", rec.ID).Return(&domain.ContentItem{ID: rec.ID, RawText: rec.Preview}, nil)
	}

	indexStore.On("Load").Return(records, nil)
	vectorStore.On("Load").Return(state.Vectors{}, nil)

	result, err := svc.GetContext(context.Background(), domain.ContextQuery{Topic: "product launch"})

	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Bundle.Blocks), 2)
}

func TestContextService_GetContext_IndexLoadError(t *testing.T) {
	indexStore := new(MockIndexStore)
	vectorStore := new(MockVectorStore)
	cache := new(MockCacheReader)
	svc := newContextServiceForTest(indexStore, vectorStore, cache)

	stateErr := domain.NewDomainError(domain.ErrCodeStateCorruption, "index file unreadable")
	indexStore.On("Load").Return(nil, stateErr)

	_, err := svc.GetContext(context.Background(), domain.ContextQuery{Topic: "pricing"})

	require.Error(t, err)
	assert.ErrorIs(t, err, stateErr)
}

func TestContextService_GetContext_VectorLoadErrorDegrades(t *testing.T) {
	indexStore := new(MockIndexStore)
	vectorStore := new(MockVectorStore)
	cache := new(MockCacheReader)
	svc := newContextServiceForTest(indexStore, vectorStore, cache)

	rec := indexedRecord("blog/pricing.md", domain.ContentTypeBlogPost, "Pricing strategy notes.")
	indexStore.On("Load").Return([]domain.IndexRecord{rec}, nil)
	vectorStore.On("Load").Return(nil, domain.NewDomainError(domain.ErrCodeStateCorruption, "vectors file unreadable"))
	cache.On("Get", rec.ID).Return(&domain.ContentItem{ID: rec.ID, RawText: "Pricing strategy notes."}, nil)

	result, err := svc.GetContext(context.Background(), domain.ContextQuery{Topic: "pricing strategy"})

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, domain.ErrCodeStateCorruption, result.Errors[0].Code)
	assert.NotEmpty(t, result.Bundle.Blocks)
}

func TestContextService_GetContext_CacheMissDegradesToPreview(t *testing.T) {
	indexStore := new(MockIndexStore)
	vectorStore := new(MockVectorStore)
	cache := new(MockCacheReader)
	svc := newContextServiceForTest(indexStore, vectorStore, cache)

	rec := indexedRecord("blog/pricing.md", domain.ContentTypeBlogPost, "Pricing strategy preview.")
	indexStore.On("Load").Return([]domain.IndexRecord{rec}, nil)
	vectorStore.On("Load").Return(state.Vectors{}, nil)
	cache.On("Get", rec.ID).Return(nil, domain.NewDomainError(domain.ErrCodeCacheMiss, "cache entry missing"))

	result, err := svc.GetContext(context.Background(), domain.ContextQuery{
		Topic:    "pricing strategy",
		MaxItems: 1,
	})

	require.NoError(t, err)
	require.Len(t, result.Bundle.Blocks, 1)
	assert.Equal(t, "Pricing strategy preview.", result.Bundle.Blocks[0].Text)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, domain.ErrCodeCacheMiss, result.Errors[0].Code)
}
