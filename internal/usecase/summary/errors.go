package summary

import (
	"errors"
	"fmt"

	"tldr-summary/internal/domain/entity"
)

var (
	// ErrNoProviderAvailable is returned when no registered provider is usable.
	ErrNoProviderAvailable = errors.New("no AI provider available")
	// ErrNoModelAvailable is returned when the selected provider exposes no text-generation model.
	ErrNoModelAvailable = errors.New("no text-generation model available")
	// ErrInvocationFailed is matched by every *InvocationError.
	ErrInvocationFailed = errors.New("AI invocation failed")
	// ErrEmptyResponse is returned when the provider answered but no text could be extracted.
	ErrEmptyResponse = errors.New("AI returned an empty response")
	// ErrMissingContent is returned when a summary request carries neither content nor URL.
	ErrMissingContent = errors.New("content or url is required")
	// ErrContentUnavailable is returned when article content could not be fetched from its URL.
	ErrContentUnavailable = errors.New("article content unavailable")
)

// InvocationError wraps a provider failure with the selection that was used.
type InvocationError struct {
	Provider entity.ProviderSlug
	Model    string
	Cause    error
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke %s/%s: %v", e.Provider, e.Model, e.Cause)
}

// Unwrap returns the underlying provider error.
func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// Is matches ErrInvocationFailed.
func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocationFailed
}

// ErrorKind classifies pipeline failures for callers that map them to user messages.
type ErrorKind string

// Error kinds reported by KindOf.
const (
	KindNone             ErrorKind = ""
	KindNoProvider       ErrorKind = "no_provider"
	KindNoModel          ErrorKind = "no_model"
	KindInvocationFailed ErrorKind = "invocation_failed"
	KindEmptyResponse    ErrorKind = "empty_response"
	KindInvalidRequest   ErrorKind = "invalid_request"
	KindContentMissing   ErrorKind = "content_unavailable"
	KindUnknown          ErrorKind = "unknown"
)

// KindOf returns the kind of err. A nil error has KindNone.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNoProviderAvailable):
		return KindNoProvider
	case errors.Is(err, ErrNoModelAvailable):
		return KindNoModel
	case errors.Is(err, ErrEmptyResponse):
		return KindEmptyResponse
	case errors.Is(err, ErrInvocationFailed):
		return KindInvocationFailed
	case errors.Is(err, ErrContentUnavailable):
		return KindContentMissing
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput), errors.Is(err, ErrMissingContent):
		return KindInvalidRequest
	default:
		return KindUnknown
	}
}
