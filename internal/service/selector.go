package service

import (
	"sort"

	"github.com/draftsmith-ai/draftsmith/internal/domain"
)

// anchorSentinelScore ranks anchor selections above any achievable
// composite score.
const anchorSentinelScore = 1000.0

// SelectionConfig fixes which types are always represented and which get
// guaranteed slots. Quotas are applied in declared order.
type SelectionConfig struct {
	AnchorTypes []domain.ContentType
	Quotas      []domain.TypeQuota
}

// DefaultSelectionConfig anchors style guides and reserves slots for the
// long-form types most useful as grounding material
func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{
		AnchorTypes: []domain.ContentType{domain.ContentTypeStyleGuide},
		Quotas: []domain.TypeQuota{
			{Type: domain.ContentTypeTranscript, Count: 2},
			{Type: domain.ContentTypeBlogPost, Count: 2},
			{Type: domain.ContentTypeFramework, Count: 1},
			{Type: domain.ContentTypeSOP, Count: 1},
		},
	}
}

// Selector picks a bounded, type-balanced subset of scored candidates
type Selector struct {
	cfg SelectionConfig
}

// NewSelector creates a new Selector
func NewSelector(cfg SelectionConfig) *Selector {
	return &Selector{cfg: cfg}
}

// Select runs the three passes over the candidates: anchors first, then
// per-type quotas in declared order, then a global best-score fill. Every
// pass respects the remaining budget and no candidate is picked twice. The
// returned slice is in selection order and never exceeds maxItems.
func (s *Selector) Select(candidates []domain.ScoredCandidate, maxItems int) []domain.ScoredCandidate {
	if maxItems <= 0 || len(candidates) == 0 {
		return nil
	}

	sorted := make([]domain.ScoredCandidate, len(candidates))
	copy(sorted, candidates)
	sortCandidates(sorted)

	anchorTypes := make(map[domain.ContentType]bool, len(s.cfg.AnchorTypes))
	for _, t := range s.cfg.AnchorTypes {
		anchorTypes[t] = true
	}

	selected := make([]domain.ScoredCandidate, 0, maxItems)
	picked := make(map[string]bool, maxItems)

	// Anchor pass: anchor types are always represented when present, best
	// candidates first, still counting against the budget.
	for _, c := range sorted {
		if len(selected) >= maxItems {
			break
		}
		if !anchorTypes[c.Record.Type] || picked[c.Record.ID] {
			continue
		}
		c.Score = anchorSentinelScore
		c.Reason = domain.ReasonAnchor
		picked[c.Record.ID] = true
		selected = append(selected, c)
	}

	// Quota pass: guaranteed slots per type. A quota for a type with no
	// remaining candidates simply leaves its slots to the fill pass.
	for _, q := range s.cfg.Quotas {
		taken := 0
		for _, c := range sorted {
			if len(selected) >= maxItems || taken >= q.Count {
				break
			}
			if c.Record.Type != q.Type || picked[c.Record.ID] {
				continue
			}
			c.Reason = domain.QuotaReason(q.Type)
			picked[c.Record.ID] = true
			selected = append(selected, c)
			taken++
		}
	}

	// Fill pass: whatever budget remains goes to the best unselected
	// candidates regardless of type.
	for _, c := range sorted {
		if len(selected) >= maxItems {
			break
		}
		if picked[c.Record.ID] {
			continue
		}
		c.Reason = domain.ReasonFill
		picked[c.Record.ID] = true
		selected = append(selected, c)
	}

	return selected
}

// sortCandidates orders by score descending, breaking ties by most recently
// processed first and then by source path, so equal inputs always rank
// identically.
func sortCandidates(cands []domain.ScoredCandidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		if !cands[i].Record.LastProcessedAt.Equal(cands[j].Record.LastProcessedAt) {
			return cands[i].Record.LastProcessedAt.After(cands[j].Record.LastProcessedAt)
		}
		return cands[i].Record.SourcePath < cands[j].Record.SourcePath
	})
}
