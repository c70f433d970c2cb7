package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tldr-summary/internal/observability/metrics"
	"tldr-summary/internal/resilience/retry"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      2,
		Interval:         10 * time.Second,
		Timeout:          100 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	require.NotNil(t, cb)
	assert.Equal(t, "test-circuit", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
}

func TestCircuitBreaker_TripsOpen(t *testing.T) {
	cb := New(testConfig())
	testErr := errors.New("provider 503")

	for i := 0; i < 4; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, testErr })
		assert.ErrorIs(t, err, testErr)
	}
	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	require.NoError(t, err)

	_, err = cb.Execute(func() (interface{}, error) { return nil, testErr })
	assert.ErrorIs(t, err, testErr)
	require.True(t, cb.IsOpen())

	_, err = cb.Execute(func() (interface{}, error) {
		t.Error("function should not be called when circuit is open")
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, IsRejection(err))
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := New(testConfig())
	testErr := errors.New("timeout")
	for i := 0; i < 6; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, testErr })
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	time.Sleep(150 * time.Millisecond)

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	require.NoError(t, err)
	assert.NotEqual(t, gobreaker.StateOpen, cb.State())
}

func TestCircuitBreaker_CanceledCallsDoNotTrip(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 10; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, context.Canceled })
		assert.ErrorIs(t, err, context.Canceled)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_MinRequests(t *testing.T) {
	cfg := testConfig()
	cfg.MinRequests = 10
	cb := New(cfg)

	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, errors.New("boom") })
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestRun(t *testing.T) {
	cb := New(testConfig())

	t.Run("typed result", func(t *testing.T) {
		got, err := Run(cb, func() (string, error) { return "claude-a", nil })
		require.NoError(t, err)
		assert.Equal(t, "claude-a", got)
	})

	t.Run("error returns zero value", func(t *testing.T) {
		got, err := Run(cb, func() ([]string, error) { return []string{"x"}, errors.New("fail") })
		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(gobreaker.ErrTooManyRequests))
	assert.False(t, IsRejection(errors.New("other")))
	assert.False(t, IsRejection(nil))
}

func TestConfigs(t *testing.T) {
	def := DefaultConfig("x")
	assert.Equal(t, "x", def.Name)
	assert.Equal(t, uint32(3), def.MaxRequests)
	assert.Equal(t, 30*time.Second, def.Interval)
	assert.Equal(t, 60*time.Second, def.Timeout)
	assert.Equal(t, 0.6, def.FailureThreshold)
	assert.Equal(t, uint32(5), def.MinRequests)

	ai := AIProviderConfig("anthropic-api")
	assert.Equal(t, "anthropic-api", ai.Name)
	require.NotNil(t, ai.CountsAsFailure)

	store := StoreConfig("preference-store")
	assert.Equal(t, 1.0, store.FailureThreshold)
	assert.Equal(t, 30*time.Second, store.Timeout)
}

func TestAIProviderConfig_ClientErrorsDoNotTrip(t *testing.T) {
	cfg := AIProviderConfig("openai")
	cfg.Timeout = 100 * time.Millisecond
	cb := New(cfg)

	badModel := &retry.HTTPError{StatusCode: http.StatusBadRequest, Message: "model not found"}
	for i := 0; i < 10; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, badModel })
		assert.ErrorIs(t, err, badModel)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	overloaded := fmt.Errorf("chat completion: %w", &retry.HTTPError{StatusCode: 529, Message: "overloaded"})
	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, overloaded })
	}
	assert.True(t, cb.IsOpen())
}

func TestProviderFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, false},
		{"unauthorized", &retry.HTTPError{StatusCode: http.StatusUnauthorized}, false},
		{"rate limited", &retry.HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{"server error", &retry.HTTPError{StatusCode: http.StatusBadGateway}, true},
		{"transport error", errors.New("connection reset"), true},
		{"deadline", context.DeadlineExceeded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, providerFailure(tt.err))
		})
	}
}

func TestNew_PublishesState(t *testing.T) {
	cfg := testConfig()
	cfg.Name = "gauge-circuit"
	cfg.MinRequests = 1
	cfg.FailureThreshold = 1
	cb := New(cfg)

	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CircuitState.WithLabelValues("gauge-circuit")))

	_, _ = cb.Execute(func() (interface{}, error) { return nil, errors.New("down") })
	require.True(t, cb.IsOpen())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CircuitState.WithLabelValues("gauge-circuit")))
}
