// Package resilience groups the fault tolerance used around AI provider and
// preference store calls.
//
//   - circuitbreaker: per-provider breakers over github.com/sony/gobreaker
//   - retry: exponential backoff with jitter for transient HTTP and network errors
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.AIProviderConfig("openai-api"))
//	err := retry.WithBackoff(ctx, retry.AIAPIConfig(), func() error {
//	    _, err := cb.Execute(call)
//	    return err
//	})
package resilience
