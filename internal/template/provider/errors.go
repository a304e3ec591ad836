package provider

import "fmt"

// ProviderErrorType represents the type of provider error.
type ProviderErrorType int

const (
	// ProviderFetchFailed indicates a request failed or returned an error status.
	ProviderFetchFailed ProviderErrorType = iota
	// ProviderNotFound indicates the remote path does not exist.
	ProviderNotFound
	// ProviderAuthFailed indicates authentication failed (e.g., private repo).
	ProviderAuthFailed
	// ProviderDecodeFailed indicates a response or file content could not be decoded.
	ProviderDecodeFailed
	// ProviderUnsupported indicates a URL no provider can serve.
	ProviderUnsupported
	// ProviderAlreadyExists indicates a local target exists and force is not set.
	ProviderAlreadyExists
	// ProviderNoProvenance indicates a template without a recorded source.
	ProviderNoProvenance
	// ProviderWriteFailed indicates a local filesystem operation failed.
	ProviderWriteFailed
)

// String returns the string representation of the error type.
func (t ProviderErrorType) String() string {
	switch t {
	case ProviderFetchFailed:
		return "FetchFailed"
	case ProviderNotFound:
		return "NotFound"
	case ProviderAuthFailed:
		return "AuthFailed"
	case ProviderDecodeFailed:
		return "DecodeFailed"
	case ProviderUnsupported:
		return "UnsupportedProvider"
	case ProviderAlreadyExists:
		return "AlreadyExists"
	case ProviderNoProvenance:
		return "NoProvenance"
	case ProviderWriteFailed:
		return "WriteFailed"
	default:
		return "Unknown"
	}
}

// ProviderError represents a provider-specific error.
type ProviderError struct {
	// Type is the error type classification.
	Type ProviderErrorType
	// Message is the human-readable error message.
	Message string
	// Provider is the provider name (e.g., "github", "gitlab").
	Provider string
	// URL is the remote URL or local path that caused the error.
	URL string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	prefix := "provider error"
	if e.Provider != "" {
		prefix = e.Provider + " provider error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s [%s] for '%s': %s (caused by: %v)",
			prefix, e.Type.String(), e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s [%s] for '%s': %s",
		prefix, e.Type.String(), e.URL, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new ProviderError.
func NewProviderError(typ ProviderErrorType, provider, url, message string, cause error) *ProviderError {
	return &ProviderError{
		Type:     typ,
		Message:  message,
		Provider: provider,
		URL:      url,
		Cause:    cause,
	}
}

// NewFetchError creates a fetch failed error.
func NewFetchError(provider, url string, cause error) *ProviderError {
	return NewProviderError(ProviderFetchFailed, provider, url, "request failed", cause)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(provider, url string) *ProviderError {
	return NewProviderError(ProviderNotFound, provider, url, "remote path not found", nil)
}

// NewAuthError creates an authentication failed error.
func NewAuthError(provider, url string) *ProviderError {
	return NewProviderError(ProviderAuthFailed, provider, url, "authentication failed (private repository?)", nil)
}

// NewDecodeError creates a decode failed error.
func NewDecodeError(provider, url, message string, cause error) *ProviderError {
	return NewProviderError(ProviderDecodeFailed, provider, url, message, cause)
}

// NewUnsupportedError creates an unsupported provider error.
func NewUnsupportedError(url string) *ProviderError {
	return NewProviderError(ProviderUnsupported, "", url,
		"only templates from https://github.com and https://gitlab.com are supported", nil)
}

// NewAlreadyExistsError creates an already exists error for a local path.
func NewAlreadyExistsError(path string) *ProviderError {
	return NewProviderError(ProviderAlreadyExists, "", path, "already exists, use force to overwrite", nil)
}

// NewNoProvenanceError creates a no provenance error for a template.
func NewNoProvenanceError(name string) *ProviderError {
	return NewProviderError(ProviderNoProvenance, "", name, "template has no recorded source", nil)
}

// NewWriteError creates a local write failed error.
func NewWriteError(path string, cause error) *ProviderError {
	return NewProviderError(ProviderWriteFailed, "", path, "failed to write template", cause)
}
