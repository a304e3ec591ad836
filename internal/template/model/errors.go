package model

import (
	"fmt"
	"strings"
)

// VarErrorType classifies variable placeholder errors.
type VarErrorType int

const (
	// VarInvalidValue indicates a value outside an enumerated option set or a
	// malformed assignment.
	VarInvalidValue VarErrorType = iota
	// VarMissingValue indicates placeholders left unset after resolution.
	VarMissingValue
	// VarPromptFailed indicates the interactive prompt could not be read.
	VarPromptFailed
)

// String returns the string representation of the error type.
func (t VarErrorType) String() string {
	switch t {
	case VarInvalidValue:
		return "InvalidValue"
	case VarMissingValue:
		return "MissingValue"
	case VarPromptFailed:
		return "PromptFailed"
	default:
		return "Unknown"
	}
}

// VarError is returned by VarCollection operations.
type VarError struct {
	// Type is the error classification.
	Type VarErrorType
	// Names lists the offending placeholder names.
	Names []string
	// Value is the rejected value, for VarInvalidValue.
	Value string
	// Message is the human-readable message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *VarError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *VarError) Unwrap() error {
	return e.Cause
}

func newInvalidValueError(name, value string, options []string) *VarError {
	msg := fmt.Sprintf("invalid value for %s: %s", name, value)
	if len(options) > 0 {
		msg = fmt.Sprintf("%s (allowed: %s)", msg, strings.Join(options, ", "))
	}
	return &VarError{Type: VarInvalidValue, Names: []string{name}, Value: value, Message: msg}
}

func newMissingValueError(names []string) *VarError {
	return &VarError{
		Type:    VarMissingValue,
		Names:   names,
		Message: "missing value for: " + strings.Join(names, ", "),
	}
}
