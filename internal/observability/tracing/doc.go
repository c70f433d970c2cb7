// Package tracing provides OpenTelemetry tracing for the summary service.
//
// Middleware opens a server span per HTTP request and returns the trace id
// in X-Trace-Id. The summary orchestrator and the provider registry open
// child spans (summary.GenerateSummary, summary.ResolveSelection,
// registry.Generate) through GetTracer. The tracer provider itself is
// installed by InstallProvider, called from cmd/api.
package tracing
