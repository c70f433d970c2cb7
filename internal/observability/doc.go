// Package observability groups logging, Prometheus metrics and OpenTelemetry
// tracing for the summary service.
//
// Subpackages:
//   - logging: slog loggers carried through the request context
//   - metrics: Prometheus collectors for HTTP and the summary pipeline
//   - tracing: OpenTelemetry middleware and the service tracer
package observability
