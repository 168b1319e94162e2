package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core taxonomy. Callers match them with errors.Is.
var (
	// ErrNotFound indicates a referenced world, content item, or tag does
	// not exist. It is always surfaced, never defaulted to a zero result.
	ErrNotFound = errors.New("not found")

	// ErrSelfLink indicates a link whose endpoints are identical.
	ErrSelfLink = errors.New("content cannot link to itself")

	// ErrDanglingReference indicates a link endpoint that does not resolve
	// to an existing content item in the world.
	ErrDanglingReference = errors.New("link endpoint not found in world")

	// ErrConflictRetryable indicates a transient uniqueness race under
	// concurrent writes. The request was valid; the caller should retry.
	ErrConflictRetryable = errors.New("conflicting concurrent write, retry")
)

// NotFoundf wraps ErrNotFound with a description of the missing resource.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// ValidationError describes a rejected request: a missing or malformed field,
// or a violated limit. It carries enough structure for a presentation layer
// to render a specific message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// TagLimitExceeded reports that a content item already holds the maximum
// number of tags.
func TagLimitExceeded(limit int) *ValidationError {
	return &ValidationError{
		Field:  "tags",
		Reason: fmt.Sprintf("content already holds the maximum of %d tags", limit),
	}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
