package registry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tldr-summary/internal/resilience/circuitbreaker"
	"tldr-summary/internal/resilience/retry"
)

// guard runs provider calls through pacing, retry with backoff and a circuit breaker.
type guard struct {
	name    string
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
	pacer   *Pacer
	timeout time.Duration
}

func newGuard(name string, settings ProviderSettings) *guard {
	cbCfg := circuitbreaker.AIProviderConfig(name)
	retryCfg := retry.AIAPIConfig()
	if settings.MaxAttempts > 0 {
		retryCfg.MaxAttempts = settings.MaxAttempts
	}
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &guard{
		name:    name,
		breaker: circuitbreaker.New(cbCfg),
		retry:   retryCfg,
		pacer:   NewPacer(settings.RequestsPerSecond, settings.Burst),
		timeout: timeout,
	}
}

func (g *guard) do(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var result any
	err := retry.WithBackoff(ctx, g.retry, func() error {
		if err := g.pacer.Wait(ctx); err != nil {
			return fmt.Errorf("%s pacing: %w", g.name, err)
		}
		out, err := g.breaker.Execute(func() (interface{}, error) {
			return fn(ctx)
		})
		if err != nil {
			if circuitbreaker.IsRejection(err) {
				slog.WarnContext(ctx, "provider circuit breaker open, request rejected",
					slog.String("service", g.name),
					slog.String("state", g.breaker.State().String()))
				return ErrCircuitOpen
			}
			return err
		}
		result = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// statusError converts an SDK error carrying an HTTP status into a retry.HTTPError
// so retry.IsRetryable can classify it. header may be nil.
func statusError(status int, header http.Header, err error) error {
	if status == 0 {
		return err
	}
	httpErr := &retry.HTTPError{StatusCode: status, Message: err.Error(), Err: err}
	if header != nil {
		httpErr.RetryAfter = retry.ParseRetryAfter(header.Get("Retry-After"), time.Now())
	}
	return httpErr
}
