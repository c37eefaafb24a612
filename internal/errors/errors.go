package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// UnsupportedInput indicates the normalizer received a value matching no recognized shape
	UnsupportedInput ErrorCode = "UNSUPPORTED_INPUT"
	// ModeMismatch indicates a binary combinator received operands in different modes
	ModeMismatch ErrorCode = "MODE_MISMATCH"
	// UnsupportedMode indicates an operation received a mode it structurally cannot handle
	UnsupportedMode ErrorCode = "UNSUPPORTED_MODE"
	// InvalidMode indicates the metadata facade required fields-mode input and got something else
	InvalidMode ErrorCode = "INVALID_MODE"
	// NodeNotFound indicates an identifier does not exist in the catalog
	NodeNotFound ErrorCode = "NODE_NOT_FOUND"
	// TableNotFound indicates a table name does not exist in the catalog
	TableNotFound ErrorCode = "TABLE_NOT_FOUND"
	// AnnotationNotFound indicates an annotation id does not exist in the store
	AnnotationNotFound ErrorCode = "ANNOTATION_NOT_FOUND"
	// CatalogInvalid indicates a catalog declaration failed validation
	CatalogInvalid ErrorCode = "CATALOG_INVALID"
	// StoreUnavailable indicates the persistence layer is not reachable
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// DiscoError represents a disco error with a stable code and message
type DiscoError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new DiscoError
func New(code ErrorCode, message string) *DiscoError {
	return &DiscoError{Code: code, Message: message}
}

// Newf creates a new DiscoError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DiscoError {
	return &DiscoError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new DiscoError around an underlying cause
func Wrap(code ErrorCode, message string, cause error) *DiscoError {
	return &DiscoError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *DiscoError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DiscoError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *DiscoError) WithDetails(details interface{}) *DiscoError {
	e.Details = details
	return e
}

// IsCode reports whether err is a DiscoError carrying the given code
func IsCode(err error, code ErrorCode) bool {
	var de *DiscoError
	if stderrors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or InternalError for foreign errors
func CodeOf(err error) ErrorCode {
	var de *DiscoError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return InternalError
}
