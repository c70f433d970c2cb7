package metrics

import (
	"time"
)

// RecordProviderInvocation records one raw provider call.
// Status should be either "success" or "error".
func RecordProviderInvocation(provider, feature, status string, duration time.Duration) {
	if feature == "" {
		feature = "unspecified"
	}
	ProviderInvocationsTotal.WithLabelValues(provider, feature, status).Inc()
	ProviderInvocationDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordStoreQuery records the duration of a preference store read.
func RecordStoreQuery(store string, duration time.Duration) {
	StoreQueryDuration.WithLabelValues(store).Observe(duration.Seconds())
}

// SummaryRecorder feeds orchestrator events into the tldr_* metrics.
type SummaryRecorder struct{}

// NewSummaryRecorder returns a recorder bound to the default registry.
func NewSummaryRecorder() SummaryRecorder {
	return SummaryRecorder{}
}

// RecordResolution counts a resolution result.
func (SummaryRecorder) RecordResolution(result string) {
	ResolutionTotal.WithLabelValues(result).Inc()
}

// RecordGeneration counts a generation outcome. Duration is only observed
// when a provider was actually called.
func (SummaryRecorder) RecordGeneration(provider, outcome string, duration time.Duration) {
	if provider == "" {
		provider = "none"
	}
	GenerationRequestsTotal.WithLabelValues(provider, outcome).Inc()
	if duration > 0 {
		GenerationDuration.WithLabelValues(provider).Observe(duration.Seconds())
	}
}

// RecordSummaryLength observes the rendered summary length.
func (SummaryRecorder) RecordSummaryLength(length int) {
	SummaryLength.Observe(float64(length))
}
