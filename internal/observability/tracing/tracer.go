package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans created by this service.
const TracerName = "tldr-summary"

var tracer = otel.Tracer(TracerName)

// GetTracer returns the service tracer.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "summary.GenerateSummary")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
