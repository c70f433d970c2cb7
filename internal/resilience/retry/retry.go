// Package retry retries transient provider and store failures with
// exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Config shapes the backoff schedule: delays start at InitialDelay and grow
// by Multiplier up to MaxDelay, each stretched by up to JitterFraction.
type Config struct {
	MaxAttempts    int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	Multiplier     float64
	JitterFraction float64
}

// DefaultConfig returns a default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2,
		JitterFraction: 0.1,
	}
}

// AIAPIConfig is used for generation calls. Attempts stay low since
// every call is billed.
func AIAPIConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialDelay = 2 * time.Second
	cfg.MaxDelay = 10 * time.Second
	return cfg
}

// StoreConfig is used for preference store reads.
func StoreConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialDelay = 100 * time.Millisecond
	cfg.MaxDelay = time.Second
	return cfg
}

// WithBackoff calls fn until it succeeds, fails with a non-retryable error,
// or MaxAttempts is reached. A provider's Retry-After hint replaces the
// computed delay when it is longer, up to MaxDelay.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.InfoContext(ctx, "call succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			slog.DebugContext(ctx, "non-retryable error, giving up",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		wait := delay
		if hint := retryAfter(lastErr); hint > wait {
			wait = min(hint, cfg.MaxDelay)
		}
		slog.WarnContext(ctx, "call failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", wait),
			slog.Any("error", lastErr))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = min(time.Duration(float64(delay)*cfg.Multiplier), cfg.MaxDelay)
		delay = addJitter(delay, cfg.JitterFraction)
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

func retryAfter(err error) time.Duration {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.RetryAfter
	}
	return 0
}

var transientErrnos = []error{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ETIMEDOUT,
	syscall.ENETUNREACH,
}

// IsRetryable reports whether err is a transient transport failure or a
// provider status worth another attempt. Context errors never are.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

// HTTPError carries the HTTP status of a failed provider call.
type HTTPError struct {
	StatusCode int
	Message    string
	// RetryAfter is the provider's requested wait, zero when absent.
	RetryAfter time.Duration
	// Err is the SDK error the status was read from.
	Err error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying SDK error.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the status is one IsRetryable retries: any 5xx
// (including Anthropic's 529 overloaded), 429 and 408.
func (e *HTTPError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	}
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an
// HTTP date. Missing, malformed and past values yield zero.
func ParseRetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

// addJitter stretches d by a random share of up to fraction (capped at 1).
func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return d
	}
	fraction = min(fraction, 1)
	// #nosec G404 -- jitter does not need a cryptographic source.
	return d + time.Duration(rand.Float64()*fraction*float64(d))
}
