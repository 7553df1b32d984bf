// Package errors provides structured error types for the skycat library.
// All errors include a category, code, message, and retryable flag for
// consistent error handling across components. Collaborator failures are
// wrapped, never replaced: the original cause stays on the chain.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by library component.
type ErrorCategory string

const (
	ErrCategoryValidation ErrorCategory = "VALIDATION"
	ErrCategoryQuery      ErrorCategory = "QUERY"
	ErrCategoryStorage    ErrorCategory = "STORAGE"
	ErrCategoryFormat     ErrorCategory = "FORMAT"
	ErrCategoryInternal   ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Validation codes
	CodeShapeMismatch   = "SHAPE_MISMATCH"
	CodeInvalidBand     = "INVALID_BAND"
	CodeIndexOutOfRange = "INDEX_OUT_OF_RANGE"
	CodeUnknownClass    = "UNKNOWN_CLASS"

	// Query codes
	CodeQueryFailed = "QUERY_FAILED"

	// Storage codes
	CodeObjectNotFound    = "OBJECT_NOT_FOUND"
	CodeRemoteUnreachable = "REMOTE_UNREACHABLE"
	CodeRemoteTimeout     = "REMOTE_TIMEOUT"

	// Format codes
	CodeFormatError = "FORMAT_ERROR"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// SkycatError is the structured error type used throughout the library.
type SkycatError struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Cause     error
	Retryable bool
}

// Error returns a formatted error string. The cause, when present, is
// rendered verbatim so collaborator messages survive to the caller.
func (e *SkycatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *SkycatError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *SkycatError) Is(target error) bool {
	var t *SkycatError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new SkycatError.
func New(category ErrorCategory, code, message string) *SkycatError {
	return &SkycatError{
		Category:  category,
		Code:      code,
		Message:   message,
		Retryable: isRetryable(category, code),
	}
}

// Wrap creates a new SkycatError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *SkycatError {
	return &SkycatError{
		Category:  category,
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: isRetryable(category, code),
	}
}

// IsRetryable checks whether an error (or its chain) is retryable.
// The library never retries on its own; this is advisory for callers.
func IsRetryable(err error) bool {
	var se *SkycatError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a SkycatError.
func GetCategory(err error) ErrorCategory {
	var se *SkycatError
	if errors.As(err, &se) {
		return se.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a SkycatError.
func GetCode(err error) string {
	var se *SkycatError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// isRetryable determines if an error code is worth retrying. Only transient
// remote conditions qualify; validation and format errors never do.
func isRetryable(category ErrorCategory, code string) bool {
	switch {
	case category == ErrCategoryStorage && code == CodeRemoteUnreachable:
		return true
	case category == ErrCategoryStorage && code == CodeRemoteTimeout:
		return true
	default:
		return false
	}
}

// Convenience constructors for common errors.

// NewShapeMismatch reports batch columns whose lengths disagree.
func NewShapeMismatch(message string) *SkycatError {
	return New(ErrCategoryValidation, CodeShapeMismatch, message)
}

// NewInvalidBand reports an unrecognized photometric band.
func NewInvalidBand(band string) *SkycatError {
	return New(ErrCategoryValidation, CodeInvalidBand, fmt.Sprintf("unknown band %q (want one of u,g,r,i,z)", band))
}

// NewIndexOutOfRange reports a fiber or row index outside valid bounds.
func NewIndexOutOfRange(message string) *SkycatError {
	return New(ErrCategoryValidation, CodeIndexOutOfRange, message)
}

// NewFormatError reports a structurally incomplete or malformed file.
func NewFormatError(message string, cause error) *SkycatError {
	return Wrap(ErrCategoryFormat, CodeFormatError, message, cause)
}

// NewQueryError reports a failed SkyServer query.
func NewQueryError(message string, cause error) *SkycatError {
	return Wrap(ErrCategoryQuery, CodeQueryFailed, message, cause)
}

// NewStorageError reports a storage collaborator failure with the given code.
func NewStorageError(code, message string, cause error) *SkycatError {
	return Wrap(ErrCategoryStorage, code, message, cause)
}

// NewInternalError reports an unexpected internal failure.
func NewInternalError(message string, cause error) *SkycatError {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}
