package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ContentType classifies a corpus item by the kind of source it came from
type ContentType string

const (
	ContentTypeStyleGuide  ContentType = "style_guide"
	ContentTypeFramework   ContentType = "framework"
	ContentTypeSOP         ContentType = "sop"
	ContentTypeCourse      ContentType = "course"
	ContentTypeBlogPost    ContentType = "blog_post"
	ContentTypeTranscript  ContentType = "transcript"
	ContentTypeSocialMedia ContentType = "social_media"
	ContentTypeOther       ContentType = "other"
)

// PriorityClass represents the editorial weight of a content type
type PriorityClass string

const (
	PriorityVeryHigh PriorityClass = "very_high"
	PriorityHigh     PriorityClass = "high"
	PriorityMedium   PriorityClass = "medium"
	PriorityLow      PriorityClass = "low"
)

// AllContentTypes lists every valid content type in declaration order
func AllContentTypes() []ContentType {
	return []ContentType{
		ContentTypeStyleGuide,
		ContentTypeFramework,
		ContentTypeSOP,
		ContentTypeCourse,
		ContentTypeBlogPost,
		ContentTypeTranscript,
		ContentTypeSocialMedia,
		ContentTypeOther,
	}
}

// PriorityFor derives the priority class for a content type. The mapping is
// fixed: style guides outrank frameworks and SOPs, which outrank long-form
// content, which outranks social posts and unclassified files.
func PriorityFor(t ContentType) PriorityClass {
	switch t {
	case ContentTypeStyleGuide:
		return PriorityVeryHigh
	case ContentTypeFramework, ContentTypeSOP:
		return PriorityHigh
	case ContentTypeCourse, ContentTypeBlogPost, ContentTypeTranscript:
		return PriorityMedium
	}
	return PriorityLow
}

// DeriveItemID computes the stable item identifier for a source path.
// The same path always yields the same ID across runs.
func DeriveItemID(sourcePath string) string {
	sum := sha256.Sum256([]byte(sourcePath))
	return hex.EncodeToString(sum[:])[:16]
}

// ContentItem is the full working copy of one ingested corpus file
type ContentItem struct {
	ID              string        `json:"id"`
	SourcePath      string        `json:"source_path"`
	DisplayName     string        `json:"display_name"`
	Type            ContentType   `json:"type"`
	Priority        PriorityClass `json:"priority"`
	RawText         string        `json:"raw_text"`
	Preview         string        `json:"preview"`
	Fingerprint     string        `json:"fingerprint"`
	Truncated       bool          `json:"truncated"`
	LastModifiedAt  time.Time     `json:"last_modified_at"`
	LastProcessedAt time.Time     `json:"last_processed_at"`
}

// IndexRecord is the lightweight projection of a ContentItem used for
// scanning and scoring without loading the full cached text
type IndexRecord struct {
	ID              string        `json:"id"`
	SourcePath      string        `json:"source_path"`
	DisplayName     string        `json:"display_name"`
	Type            ContentType   `json:"type"`
	Priority        PriorityClass `json:"priority"`
	Preview         string        `json:"preview"`
	CacheRef        string        `json:"cache_ref"`
	Fingerprint     string        `json:"fingerprint"`
	LastProcessedAt time.Time     `json:"last_processed_at"`
}

// Record projects the item down to its index form
func (c *ContentItem) Record() IndexRecord {
	return IndexRecord{
		ID:              c.ID,
		SourcePath:      c.SourcePath,
		DisplayName:     c.DisplayName,
		Type:            c.Type,
		Priority:        c.Priority,
		Preview:         c.Preview,
		CacheRef:        c.ID + ".json",
		Fingerprint:     c.Fingerprint,
		LastProcessedAt: c.LastProcessedAt,
	}
}

// ValidateContentItem validates a ContentItem instance. Failures are
// validation-coded domain errors so per-item ingest reports carry the
// right code.
func ValidateContentItem(c *ContentItem) error {
	if c == nil {
		return ErrMissingRequiredField.WithCause(errors.New("content item is nil"))
	}

	if c.ID == "" {
		return ErrMissingRequiredField.WithCause(errors.New("content item ID"))
	}

	if c.SourcePath == "" {
		return ErrMissingRequiredField.WithCause(errors.New("content item SourcePath"))
	}

	if c.Fingerprint == "" {
		return ErrMissingRequiredField.WithCause(errors.New("content item Fingerprint"))
	}

	if !isValidContentType(c.Type) {
		return ErrInvalidContentType.WithCause(fmt.Errorf("content item Type: %q", c.Type))
	}

	if !isValidPriorityClass(c.Priority) {
		return ErrInvalidPriorityClass.WithCause(fmt.Errorf("content item Priority: %q", c.Priority))
	}

	if c.LastProcessedAt.Before(c.LastModifiedAt) {
		return NewDomainError(ErrCodeValidation, "content item LastProcessedAt precedes LastModifiedAt")
	}

	return nil
}

// isValidContentType checks if a ContentType is valid
func isValidContentType(t ContentType) bool {
	switch t {
	case ContentTypeStyleGuide, ContentTypeFramework, ContentTypeSOP,
		ContentTypeCourse, ContentTypeBlogPost, ContentTypeTranscript,
		ContentTypeSocialMedia, ContentTypeOther:
		return true
	}
	return false
}

// isValidPriorityClass checks if a PriorityClass is valid
func isValidPriorityClass(p PriorityClass) bool {
	switch p {
	case PriorityVeryHigh, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParseContentType converts a string into a ContentType, rejecting unknown values
func ParseContentType(s string) (ContentType, error) {
	t := ContentType(s)
	if !isValidContentType(t) {
		return "", ErrInvalidContentType.WithCause(fmt.Errorf("unknown content type: %q", s))
	}
	return t, nil
}
