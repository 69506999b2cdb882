package service

import (
	"context"
	"math"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/draftsmith-ai/draftsmith/internal/state"
)

const (
	// Composite score weights. When no semantic signal is available for an
	// item, the semantic weight is redistributed onto the lexical overlap so
	// scores stay comparable across degraded and healthy items.
	semanticWeight = 0.8
	lexicalWeight  = 0.2

	// typeAffinityBoost rewards items whose type matches the caller's hint.
	typeAffinityBoost = 1.2
)

// priorityMultipliers fix the per-class relevance boost. Strictly
// decreasing: very_high > high > medium > low.
var priorityMultipliers = map[domain.PriorityClass]float64{
	domain.PriorityVeryHigh: 1.5,
	domain.PriorityHigh:     1.3,
	domain.PriorityMedium:   1.15,
	domain.PriorityLow:      1.0,
}

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Scorer computes composite relevance scores for index records against a
// topic. The embedder is optional: a nil embedder runs the scorer in
// lexical-only mode.
type Scorer struct {
	embedder EmbeddingClient
}

// NewScorer creates a new Scorer. embedder may be nil.
func NewScorer(embedder EmbeddingClient) *Scorer {
	return &Scorer{embedder: embedder}
}

// ScoreAll scores every record against the topic. The topic is embedded at
// most once; item vectors come from the ingest-time embedding cache and are
// only trusted when their fingerprint still matches the record. Items
// without a usable vector degrade to lexical-only scoring; scoring never
// fails a query outright.
func (s *Scorer) ScoreAll(
	ctx context.Context,
	query domain.ContextQuery,
	records []domain.IndexRecord,
	vectors state.Vectors,
) ([]domain.ScoredCandidate, []domain.ItemError) {
	words := topicWords(query.Topic)

	var itemErrors []domain.ItemError
	var topicVec []float32
	embedderDown := false
	if s.embedder != nil {
		vec, err := s.embedder.GenerateEmbedding(ctx, query.Topic)
		if err != nil {
			embedderDown = true
			itemErrors = append(itemErrors, domain.NewItemError("",
				domain.ErrEmbeddingUnavailable.WithCause(err)))
		} else {
			topicVec = vec
		}
	}

	candidates := make([]domain.ScoredCandidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, s.scoreOne(query, rec, words, topicVec, embedderDown, vectors))
	}

	return candidates, itemErrors
}

func (s *Scorer) scoreOne(
	query domain.ContextQuery,
	rec domain.IndexRecord,
	words []string,
	topicVec []float32,
	embedderDown bool,
	vectors state.Vectors,
) domain.ScoredCandidate {
	breakdown := domain.ScoreBreakdown{
		PriorityMult: priorityMultipliers[rec.Priority],
		AffinityMult: 1.0,
	}
	if breakdown.PriorityMult == 0 {
		breakdown.PriorityMult = priorityMultipliers[domain.PriorityLow]
	}
	if query.TypeHint != "" && rec.Type == query.TypeHint {
		breakdown.AffinityMult = typeAffinityBoost
	}

	breakdown.Lexical = lexicalOverlap(words, rec.Preview+" "+rec.DisplayName)

	if topicVec != nil {
		if itemVec, ok := vectors.Lookup(rec.ID, rec.Fingerprint); ok {
			breakdown.Semantic = cosineSimilarity(topicVec, itemVec)
			breakdown.SemanticUsed = true
		} else {
			breakdown.Degraded = true
			breakdown.DegradedWhy = "no cached embedding"
		}
	} else if s.embedder != nil && embedderDown {
		breakdown.Degraded = true
		breakdown.DegradedWhy = "topic embedding failed"
	}

	var base float64
	if breakdown.SemanticUsed {
		base = semanticWeight*breakdown.Semantic + lexicalWeight*breakdown.Lexical
	} else {
		base = (semanticWeight + lexicalWeight) * breakdown.Lexical
	}

	return domain.ScoredCandidate{
		Record:    rec,
		Score:     base * breakdown.PriorityMult * breakdown.AffinityMult,
		Breakdown: breakdown,
	}
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Zero-length, mismatched and zero-norm vectors all score 0 rather than NaN.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
