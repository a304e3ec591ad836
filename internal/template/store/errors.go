package store

import (
	"fmt"
	"strings"
)

// StoreErrorType categorizes template store errors.
type StoreErrorType int

const (
	// StoreNotInitialized indicates the templates root does not exist.
	StoreNotInitialized StoreErrorType = iota
	// StoreNotFound indicates no template matches the requested name.
	StoreNotFound
	// StoreAmbiguous indicates more than one template matches a prefix.
	StoreAmbiguous
	// StoreAlreadyExists indicates a template or root already exists.
	StoreAlreadyExists
	// StoreInvalidName indicates a name that cannot be a directory name.
	StoreInvalidName
	// StoreIOFailed indicates a filesystem operation failed.
	StoreIOFailed
)

// String returns the string representation of the error type.
func (t StoreErrorType) String() string {
	switch t {
	case StoreNotInitialized:
		return "NotInitialized"
	case StoreNotFound:
		return "NotFound"
	case StoreAmbiguous:
		return "AmbiguousName"
	case StoreAlreadyExists:
		return "AlreadyExists"
	case StoreInvalidName:
		return "InvalidName"
	case StoreIOFailed:
		return "IOFailed"
	default:
		return "Unknown"
	}
}

// StoreError is returned by Store operations.
type StoreError struct {
	// Type categorizes the error.
	Type StoreErrorType
	// Message is the error message.
	Message string
	// Name is the requested template name, if any.
	Name string
	// Candidates lists the matches of an ambiguous name.
	Candidates []string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	msg := e.Message
	if len(e.Candidates) > 0 {
		msg = fmt.Sprintf("%s (matches: %s)", msg, strings.Join(e.Candidates, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

func newStoreError(typ StoreErrorType, name, message string, cause error) *StoreError {
	return &StoreError{Type: typ, Name: name, Message: message, Cause: cause}
}
