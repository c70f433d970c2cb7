package registry

import "errors"

var (
	// ErrDuplicateProvider indicates an attempt to register the same slug twice.
	ErrDuplicateProvider = errors.New("provider already registered")

	// ErrMissingCredentials indicates that no API key is configured for a provider.
	ErrMissingCredentials = errors.New("provider credentials missing")

	// ErrCircuitOpen indicates that the provider's circuit breaker rejected the call.
	ErrCircuitOpen = errors.New("provider unavailable: circuit breaker open")
)
