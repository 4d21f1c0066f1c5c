// Package dberr defines the typed errors surfaced by query execution.
package dberr

import (
	"errors"
	"fmt"
)

// Kind categorizes an execution error.
type Kind string

const (
	// KindInvalidQuery covers malformed builder state and SQL the backend
	// rejected.
	KindInvalidQuery Kind = "INVALID_QUERY"

	// KindConnection covers an unreachable backend or failed
	// authentication. The cause is opaque to the query layer.
	KindConnection Kind = "CONNECTION_ERROR"

	// KindMapping covers a row that could not be written into its record
	// type. Only produced when strict mapping is enabled.
	KindMapping Kind = "MAPPING_ERROR"
)

// Error is the single error type returned to callers of Build/Execute.
//
// No partial result set is ever returned alongside an Error.
type Error struct {
	// Kind identifies the error category.
	Kind Kind

	// Message is a human-readable description.
	Message string

	// SQL is the statement that was being executed, if any.
	SQL string

	// Column names the offending column for mapping errors.
	Column string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Column != "" {
		msg = fmt.Sprintf("%s (column=%s)", msg, e.Column)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidQuery creates an error for malformed or rejected SQL.
func InvalidQuery(sql, message string, err error) *Error {
	return &Error{Kind: KindInvalidQuery, Message: message, SQL: sql, Err: err}
}

// Connection creates an error for an unreachable backend.
func Connection(message string, err error) *Error {
	return &Error{Kind: KindConnection, Message: message, Err: err}
}

// Mapping creates an error for a row that failed to populate.
func Mapping(column, message string, err error) *Error {
	return &Error{Kind: KindMapping, Message: message, Column: column, Err: err}
}

// IsInvalidQuery reports whether err wraps an InvalidQuery error.
func IsInvalidQuery(err error) bool {
	return hasKind(err, KindInvalidQuery)
}

// IsConnectionError reports whether err wraps a connection error.
func IsConnectionError(err error) bool {
	return hasKind(err, KindConnection)
}

// IsMappingError reports whether err wraps a mapping error.
func IsMappingError(err error) bool {
	return hasKind(err, KindMapping)
}

func hasKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
