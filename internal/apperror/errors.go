// Package apperror defines the error taxonomy shared by every layer of the
// reservation service.  Client-input faults (ValidationError and
// MissingFieldError) are resolved at the HTTP boundary and rendered as 400
// responses.  DatabaseError is produced by the persistence layer only, and
// ServerError is produced by the interceptor when it meets any fault it does
// not recognise.  Not-found outcomes travel as values, never as errors.
package apperror

import (
	"errors"
	"fmt"
)

// ValidationError reports a field that violates a Reservation invariant.
// Message is the human readable rule, e.g. "name must be 2-20 characters".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError for the named field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MissingFieldError reports a required request key that was absent (or could
// not be read at all).  It is always rendered with the generic message
// "Invalid reservation".
type MissingFieldError struct {
	Fields []string
	Err    error
}

func (e *MissingFieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing or unreadable fields %v: %v", e.Fields, e.Err)
	}
	return fmt.Sprintf("missing fields %v", e.Fields)
}

func (e *MissingFieldError) Unwrap() error { return e.Err }

// DatabaseError wraps any failure of the underlying store.  Op names the
// gateway step that failed ("begin", "insert reservation", ...).
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// NewDatabaseError wraps err unless it is nil or already a DatabaseError.
func NewDatabaseError(op string, err error) error {
	if err == nil {
		return nil
	}
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}
	return &DatabaseError{Op: op, Err: err}
}

// ServerError is the opaque fault raised by the interceptor.  Its Error
// string never carries details; Trace returns the full diagnostic text that
// development deployments embed in the 500 response.
type ServerError struct {
	Op    string
	Cause error
	Stack []byte
}

func (e *ServerError) Error() string { return "Internal Error" }

func (e *ServerError) Unwrap() error { return e.Cause }

// Trace renders the failing operation, the cause chain and the captured
// stack.
func (e *ServerError) Trace() string {
	msg := e.Op
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	if len(e.Stack) > 0 {
		msg = fmt.Sprintf("%s\nStack trace:\n%s", msg, e.Stack)
	}
	return msg
}

// IsClientInput reports whether err is a fault caused by the request payload.
func IsClientInput(err error) bool {
	var vErr *ValidationError
	var mErr *MissingFieldError
	return errors.As(err, &vErr) || errors.As(err, &mErr)
}
