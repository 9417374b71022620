package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can distinguish them
// mechanically without parsing messages.
type ErrorKind string

const (
	// KindValidation marks a malformed or incomplete request: blank
	// required fields, a role outside the catalog, an unparseable body.
	KindValidation ErrorKind = "validation"

	// KindForeignKey marks a reference to a project or user that does
	// not resolve to an existing record.
	KindForeignKey ErrorKind = "foreign_key"

	// KindNotFound marks a delete-by-id whose target is absent.
	KindNotFound ErrorKind = "not_found"

	// KindStorage marks a transaction or store failure, including a
	// reconciliation aborted mid-apply. The persisted state is
	// unchanged when this is reported.
	KindStorage ErrorKind = "storage"
)

// Error is the single error type crossing the usecase boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports a malformed request.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewForeignKeyError reports an unresolvable project or user reference.
func NewForeignKeyError(format string, args ...any) *Error {
	return &Error{Kind: KindForeignKey, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports an absent delete target.
func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewStorageError wraps a store failure.
func NewStorageError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, defaulting unknown errors to
// KindStorage so the HTTP layer never leaks driver details.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// MessageOf returns err's human-readable message without the kind
// prefix or wrapped cause.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
