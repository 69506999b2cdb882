package domain

import (
	"fmt"
	"time"
)

// SelectionReason explains why a block made it into a bundle
type SelectionReason string

const (
	ReasonAnchor SelectionReason = "anchor"
	ReasonFill   SelectionReason = "fill"
)

// QuotaReason builds the reason for a quota-pass selection, e.g. "quota:transcript"
func QuotaReason(t ContentType) SelectionReason {
	return SelectionReason(fmt.Sprintf("quota:%s", t))
}

// ScoreBreakdown records how a composite relevance score was produced
type ScoreBreakdown struct {
	Semantic     float64 `json:"semantic"`
	Lexical      float64 `json:"lexical"`
	PriorityMult float64 `json:"priority_mult"`
	AffinityMult float64 `json:"affinity_mult"`
	SemanticUsed bool    `json:"semantic_used"`
	Degraded     bool    `json:"degraded"`
	DegradedWhy  string  `json:"degraded_why,omitempty"`
}

// ScoredCandidate pairs an index record with its relevance score for one
// query. Candidates are query-scoped and never persisted.
type ScoredCandidate struct {
	Record    IndexRecord
	Score     float64
	Breakdown ScoreBreakdown
	Reason    SelectionReason
}

// ContextBlock is one selected item rendered into a bundle
type ContextBlock struct {
	Type        ContentType     `json:"type"`
	SourceLabel string          `json:"source_label"`
	Text        string          `json:"text"`
	Score       float64         `json:"score"`
	Reason      SelectionReason `json:"reason"`
}

// ContextBundle is the assembled grounding context for one topic query.
// A bundle is immutable once produced and is persisted alongside any
// generated output so the grounding can be reproduced later.
type ContextBundle struct {
	Topic     string         `json:"topic"`
	CreatedAt time.Time      `json:"created_at"`
	Blocks    []ContextBlock `json:"blocks"`
	Errors    []ItemError    `json:"errors,omitempty"`
}

// ContextQuery is the input to a context selection run
type ContextQuery struct {
	Topic    string
	TypeHint ContentType
	MaxItems int
}

// ValidateContextQuery validates a ContextQuery instance. Failures are
// validation-coded domain errors so callers map them to caller faults.
func ValidateContextQuery(q ContextQuery) error {
	if q.Topic == "" {
		return ErrEmptyTopic
	}

	if q.MaxItems <= 0 {
		return NewDomainError(ErrCodeValidation, "context query MaxItems must be greater than 0")
	}

	if q.TypeHint != "" && !isValidContentType(q.TypeHint) {
		return ErrInvalidContentType.WithCause(fmt.Errorf("context query TypeHint: %q", q.TypeHint))
	}

	return nil
}

// TypeQuota fixes how many slots one content type is guaranteed during the
// quota pass. Quotas are an ordered slice so the pass order is deterministic.
type TypeQuota struct {
	Type  ContentType `json:"type"`
	Count int         `json:"count"`
}
