// Package metrics provides the Prometheus metrics of the summary service.
//
// This package centralizes:
//   - HTTP request metrics (duration, count, response size, rate limiting)
//   - Summary pipeline metrics (resolutions, generations, provider calls)
//   - Preference store read latency
//
// All metrics are registered with the Prometheus default registry and
// exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "tldr-summary/internal/observability/metrics"
//
//	start := time.Now()
//	raw, err := provider.Generate(ctx, req, prompt)
//	metrics.RecordProviderInvocation("anthropic", req.Feature, status(err), time.Since(start))
package metrics
