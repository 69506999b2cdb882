package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithCause returns a copy of the error carrying an underlying cause. The
// shared sentinels stay immutable; callers match on Code.
func (e *DomainError) WithCause(err error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// AsDomainError unwraps err into target, reporting whether it found one
func AsDomainError(err error, target **DomainError) bool {
	return errors.As(err, target)
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
	ErrCodeTransientService = "TRANSIENT_SERVICE"
	ErrCodeCorpusRead       = "CORPUS_READ"
	ErrCodeCacheMiss        = "CACHE_MISS"
	ErrCodeStateCorruption  = "STATE_CORRUPTION"
)

// Validation errors
var (
	ErrInvalidContentType   = NewDomainError(ErrCodeValidation, "invalid content type")
	ErrInvalidPriorityClass = NewDomainError(ErrCodeValidation, "invalid priority class")
	ErrEmptyTopic           = NewDomainError(ErrCodeValidation, "topic cannot be empty")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
)

// Not found errors
var (
	ErrItemNotFound = NewDomainError(ErrCodeNotFound, "content item not found")
	ErrRootNotFound = NewDomainError(ErrCodeNotFound, "corpus root not found")
)

// Transient service errors. External collaborators were unreachable or
// misbehaving; the operation degrades instead of failing outright.
var (
	ErrEmbeddingUnavailable  = NewDomainError(ErrCodeTransientService, "embedding service unavailable")
	ErrGenerationUnavailable = NewDomainError(ErrCodeTransientService, "generation service unavailable")
)

// Corpus read errors. A source file vanished or became unreadable mid-run;
// the affected item is skipped and reported.
var (
	ErrCorpusFileUnreadable = NewDomainError(ErrCodeCorpusRead, "corpus file unreadable")
	ErrCorpusRootUnreadable = NewDomainError(ErrCodeCorpusRead, "corpus root unreadable")
)

// Cache errors. An index record points at a cache entry that is gone; the
// caller falls back to the stored preview.
var (
	ErrCacheEntryMissing = NewDomainError(ErrCodeCacheMiss, "cached content missing for index record")
)

// State corruption errors. Persistent state failed to parse; the run aborts
// and the operator re-ingests with force to rebuild.
var (
	ErrLedgerCorrupted  = NewDomainError(ErrCodeStateCorruption, "fingerprint ledger is corrupted")
	ErrIndexCorrupted   = NewDomainError(ErrCodeStateCorruption, "index file is corrupted")
	ErrVectorsCorrupted = NewDomainError(ErrCodeStateCorruption, "embedding cache is corrupted")
)

// Operation errors
var (
	ErrIngestLocked     = NewDomainError(ErrCodeInvalidOperation, "another ingestion run holds the lock")
	ErrArchiveWriteFail = NewDomainError(ErrCodeInternalError, "archive write failed")
)

// Authorization errors
var (
	ErrInvalidAPIToken = NewDomainError(ErrCodeUnauthorized, "invalid api token")
)
