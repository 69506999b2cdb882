package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

func candidate(id string, t domain.ContentType, score float64, processedAt time.Time) domain.ScoredCandidate {
	return domain.ScoredCandidate{
		Record: domain.IndexRecord{
			ID:              id,
			SourcePath:      "/corpus/" + id + ".md",
			DisplayName:     id + ".md",
			Type:            t,
			Priority:        domain.PriorityFor(t),
			LastProcessedAt: processedAt,
		},
		Score: score,
	}
}

// mixedCorpus mirrors a small creator corpus: one style guide, three
// transcripts, two blog posts.
func mixedCorpus() []domain.ScoredCandidate {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.ScoredCandidate{
		candidate("style", domain.ContentTypeStyleGuide, 0.30, at),
		candidate("t1", domain.ContentTypeTranscript, 0.90, at),
		candidate("t2", domain.ContentTypeTranscript, 0.80, at),
		candidate("t3", domain.ContentTypeTranscript, 0.70, at),
		candidate("b1", domain.ContentTypeBlogPost, 0.60, at),
		candidate("b2", domain.ContentTypeBlogPost, 0.50, at),
	}
}

func mixedConfig() SelectionConfig {
	return SelectionConfig{
		AnchorTypes: []domain.ContentType{domain.ContentTypeStyleGuide},
		Quotas: []domain.TypeQuota{
			{Type: domain.ContentTypeTranscript, Count: 2},
			{Type: domain.ContentTypeBlogPost, Count: 1},
		},
	}
}

func selectedIDs(selected []domain.ScoredCandidate) []string {
	ids := make([]string, 0, len(selected))
	for _, c := range selected {
		ids = append(ids, c.Record.ID)
	}
	return ids
}

func TestSelectorSelect(t *testing.T) {
	t.Run("balances anchors and quotas across a mixed corpus", func(t *testing.T) {
		selector := NewSelector(mixedConfig())

		selected := selector.Select(mixedCorpus(), 4)

		require.Len(t, selected, 4)
		assert.Equal(t, []string{"style", "t1", "t2", "b1"}, selectedIDs(selected))
		assert.Equal(t, domain.ReasonAnchor, selected[0].Reason)
		assert.Equal(t, domain.QuotaReason(domain.ContentTypeTranscript), selected[1].Reason)
		assert.Equal(t, domain.QuotaReason(domain.ContentTypeTranscript), selected[2].Reason)
		assert.Equal(t, domain.QuotaReason(domain.ContentTypeBlogPost), selected[3].Reason)
	})

	t.Run("tight budget keeps the anchor plus the first quota pick", func(t *testing.T) {
		selector := NewSelector(mixedConfig())

		selected := selector.Select(mixedCorpus(), 2)

		require.Len(t, selected, 2)
		assert.Equal(t, []string{"style", "t1"}, selectedIDs(selected))
		assert.Equal(t, domain.ReasonAnchor, selected[0].Reason)
		assert.Equal(t, domain.QuotaReason(domain.ContentTypeTranscript), selected[1].Reason)
	})

	t.Run("never exceeds the budget", func(t *testing.T) {
		selector := NewSelector(mixedConfig())

		for _, budget := range []int{1, 2, 3, 4, 5, 6, 10} {
			selected := selector.Select(mixedCorpus(), budget)
			assert.LessOrEqual(t, len(selected), budget)
		}
	})

	t.Run("anchor is included regardless of score", func(t *testing.T) {
		selector := NewSelector(mixedConfig())

		selected := selector.Select(mixedCorpus(), 4)

		require.NotEmpty(t, selected)
		assert.Equal(t, "style", selected[0].Record.ID)
		assert.Equal(t, anchorSentinelScore, selected[0].Score)
	})

	t.Run("anchors exceeding the budget are taken best first", func(t *testing.T) {
		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		candidates := []domain.ScoredCandidate{
			candidate("s1", domain.ContentTypeStyleGuide, 0.9, at),
			candidate("s2", domain.ContentTypeStyleGuide, 0.5, at),
			candidate("s3", domain.ContentTypeStyleGuide, 0.7, at),
		}
		selector := NewSelector(mixedConfig())

		selected := selector.Select(candidates, 2)

		assert.Equal(t, []string{"s1", "s3"}, selectedIDs(selected))
	})

	t.Run("unfilled quota slots flow to the fill pass", func(t *testing.T) {
		cfg := SelectionConfig{
			AnchorTypes: []domain.ContentType{domain.ContentTypeStyleGuide},
			Quotas: []domain.TypeQuota{
				{Type: domain.ContentTypeCourse, Count: 2},
				{Type: domain.ContentTypeTranscript, Count: 1},
			},
		}
		selector := NewSelector(cfg)

		selected := selector.Select(mixedCorpus(), 4)

		require.Len(t, selected, 4)
		assert.Equal(t, []string{"style", "t1", "t2", "b1"}, selectedIDs(selected))
		assert.Equal(t, domain.QuotaReason(domain.ContentTypeTranscript), selected[1].Reason)
		assert.Equal(t, domain.ReasonFill, selected[2].Reason)
		assert.Equal(t, domain.ReasonFill, selected[3].Reason)
	})

	t.Run("fill pass takes the global best leftovers", func(t *testing.T) {
		selector := NewSelector(mixedConfig())

		selected := selector.Select(mixedCorpus(), 6)

		require.Len(t, selected, 6)
		assert.Equal(t, []string{"style", "t1", "t2", "b1", "t3", "b2"}, selectedIDs(selected))
		assert.Equal(t, domain.ReasonFill, selected[4].Reason)
		assert.Equal(t, domain.ReasonFill, selected[5].Reason)
	})

	t.Run("equal scores break by recency then path", func(t *testing.T) {
		newer := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
		older := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		candidates := []domain.ScoredCandidate{
			candidate("za", domain.ContentTypeBlogPost, 0.5, older),
			candidate("ab", domain.ContentTypeBlogPost, 0.5, older),
			candidate("mm", domain.ContentTypeBlogPost, 0.5, newer),
		}
		selector := NewSelector(SelectionConfig{})

		selected := selector.Select(candidates, 3)

		assert.Equal(t, []string{"mm", "ab", "za"}, selectedIDs(selected))
	})

	t.Run("selection is deterministic across input orderings", func(t *testing.T) {
		selector := NewSelector(mixedConfig())
		forward := mixedCorpus()
		reversed := mixedCorpus()
		for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
			reversed[i], reversed[j] = reversed[j], reversed[i]
		}

		a := selector.Select(forward, 4)
		b := selector.Select(reversed, 4)

		assert.Equal(t, a, b)
	})

	t.Run("empty candidates yield an empty selection", func(t *testing.T) {
		selector := NewSelector(mixedConfig())
		assert.Empty(t, selector.Select(nil, 4))
	})

	t.Run("non-positive budget yields an empty selection", func(t *testing.T) {
		selector := NewSelector(mixedConfig())
		assert.Empty(t, selector.Select(mixedCorpus(), 0))
	})
}
