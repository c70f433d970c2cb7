// Package circuitbreaker guards AI provider, article fetch and preference
// store calls. It wraps github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"tldr-summary/internal/observability/metrics"
	"tldr-summary/internal/resilience/retry"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name labels the breaker in logs and the state gauge.
	Name string

	// MaxRequests is the number of probe calls allowed while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts; zero never clears them.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that opens the circuit (0.6 = 60%).
	FailureThreshold float64

	// MinRequests is the number of calls observed before the ratio applies.
	MinRequests uint32

	// CountsAsFailure decides which errors move the failure ratio.
	// Nil counts every error except context.Canceled.
	CountsAsFailure func(error) bool
}

// DefaultConfig returns the settings shared by every breaker.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// AIProviderConfig returns the breaker settings for a provider API.
// Rejected requests (bad model, missing key) say nothing about the provider's
// health, so only errors that retry.IsRetryable accepts, or errors without an
// HTTP status, count as failures.
func AIProviderConfig(name string) Config {
	cfg := DefaultConfig(name)
	cfg.CountsAsFailure = providerFailure
	return cfg
}

// StoreConfig returns the configuration for the preference store.
// It opens only after every one of five or more calls has failed.
func StoreConfig(name string) Config {
	cfg := DefaultConfig(name)
	cfg.Interval = time.Minute
	cfg.Timeout = 30 * time.Second
	cfg.FailureThreshold = 1.0
	return cfg
}

func providerFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}
	return true
}

func defaultFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// CircuitBreaker is a named gobreaker.CircuitBreaker that reports its state
// transitions to the log and to the circuit state gauge.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New builds a breaker from cfg and publishes its initial closed state.
func New(cfg Config) *CircuitBreaker {
	failure := cfg.CountsAsFailure
	if failure == nil {
		failure = defaultFailure
	}
	minRequests := max(cfg.MinRequests, 1)

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !failure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.RecordCircuitState(name, int(to))
		},
	}

	metrics.RecordCircuitState(cfg.Name, int(gobreaker.StateClosed))
	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn unless the circuit is open, in which case it returns
// gobreaker.ErrOpenState without calling fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen returns true if the circuit breaker is in the open state.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// IsRejection reports whether err came from the breaker refusing the call.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Run executes fn through cb and returns its typed result.
func Run[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	out, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}
