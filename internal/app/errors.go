package app

import (
	"errors"
	"fmt"

	"github.com/tacogips/tpy/internal/config"
	"github.com/tacogips/tpy/internal/template/generator"
	"github.com/tacogips/tpy/internal/template/model"
	"github.com/tacogips/tpy/internal/template/provider"
	"github.com/tacogips/tpy/internal/template/store"
)

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// Internal covers I/O failures and programming errors.
	Internal AppErrorType = iota
	// NotInitialized indicates the project has no templates root.
	NotInitialized
	// NotFound indicates a missing template or remote path.
	NotFound
	// AmbiguousName indicates a template prefix matching several templates.
	AmbiguousName
	// AlreadyExists indicates a target that exists and force is not set.
	AlreadyExists
	// InvalidValue indicates a rejected user-supplied value.
	InvalidValue
	// MissingValue indicates variables left without a value.
	MissingValue
	// NetworkFailure indicates the network is unavailable or a request failed.
	NetworkFailure
	// DecodeFailure indicates a remote response could not be decoded.
	DecodeFailure
	// NoProvenance indicates a reload of a template without a recorded source.
	NoProvenance
	// UnsupportedProvider indicates a URL of an unknown hosting service.
	UnsupportedProvider
)

// String returns the string representation of the error type.
func (t AppErrorType) String() string {
	switch t {
	case NotInitialized:
		return "NotInitialized"
	case NotFound:
		return "NotFound"
	case AmbiguousName:
		return "AmbiguousName"
	case AlreadyExists:
		return "AlreadyExists"
	case InvalidValue:
		return "InvalidValue"
	case MissingValue:
		return "MissingValue"
	case NetworkFailure:
		return "NetworkFailure"
	case DecodeFailure:
		return "DecodeFailure"
	case NoProvenance:
		return "NoProvenance"
	case UnsupportedProvider:
		return "UnsupportedProvider"
	default:
		return "Internal"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// wrapError attaches message to err, classifying it by its cause.
func wrapError(message string, err error) error {
	if err == nil {
		return nil
	}
	return NewAppError(KindOf(err), message, err)
}

// KindOf returns the application error type of err, looking through
// wrapping. Errors of unknown origin are Internal.
func KindOf(err error) AppErrorType {
	if err == nil {
		return Internal
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}

	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		switch storeErr.Type {
		case store.StoreNotInitialized:
			return NotInitialized
		case store.StoreNotFound:
			return NotFound
		case store.StoreAmbiguous:
			return AmbiguousName
		case store.StoreAlreadyExists:
			return AlreadyExists
		case store.StoreInvalidName:
			return InvalidValue
		}
		return Internal
	}

	var varErr *model.VarError
	if errors.As(err, &varErr) {
		if varErr.Type == model.VarInvalidValue {
			return InvalidValue
		}
		return MissingValue
	}

	var providerErr *provider.ProviderError
	if errors.As(err, &providerErr) {
		switch providerErr.Type {
		case provider.ProviderFetchFailed, provider.ProviderAuthFailed:
			return NetworkFailure
		case provider.ProviderNotFound:
			return NotFound
		case provider.ProviderDecodeFailed:
			return DecodeFailure
		case provider.ProviderUnsupported:
			return UnsupportedProvider
		case provider.ProviderAlreadyExists:
			return AlreadyExists
		case provider.ProviderNoProvenance:
			return NoProvenance
		}
		return Internal
	}

	var genErr *generator.GeneratorError
	if errors.As(err, &genErr) {
		switch genErr.Type {
		case generator.GeneratorConflict:
			return AlreadyExists
		case generator.GeneratorPathError:
			return InvalidValue
		}
		return Internal
	}

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return InvalidValue
	}

	return Internal
}
