// Package summary resolves which AI provider and model serve a request,
// invokes generation, and turns the raw result into sanitized HTML.
package summary

import (
	"context"
	"time"

	"tldr-summary/internal/domain/entity"
)

// ProviderRegistry is the read side of the AI provider registry plus its
// invocation entry point. Implementations re-check credentials on every call.
type ProviderRegistry interface {
	// ListRegisteredProviders returns every known provider in registry order.
	// An unreachable registry yields an empty slice, never an error.
	ListRegisteredProviders(ctx context.Context) []entity.ProviderSlug

	// IsProviderUsable reports whether the provider is registered and
	// currently has valid credentials.
	IsProviderUsable(ctx context.Context, slug entity.ProviderSlug) bool

	// ListModels enumerates the provider's models. It fails with
	// entity.ErrProviderUnavailable when the provider is not usable.
	ListModels(ctx context.Context, slug entity.ProviderSlug) ([]entity.ModelDescriptor, error)

	// DisplayName returns a human-readable provider name.
	DisplayName(ctx context.Context, slug entity.ProviderSlug) string

	// Generate invokes the provider and returns its raw, provider-shaped result.
	Generate(ctx context.Context, slug entity.ProviderSlug, req entity.GenerationRequest, prompt string) (any, error)
}

// ModelFilterHelper is an optional registry utility that filters models by capability.
type ModelFilterHelper interface {
	FilterModelsByCapability(models []entity.ModelDescriptor, capability entity.Capability) []entity.ModelDescriptor
}

// CandidateTextHelper is an optional registry utility that extracts the
// first candidate's text from a raw result it knows how to read.
type CandidateTextHelper interface {
	FirstCandidateText(raw any) (string, bool)
}

// PreferenceStore is the read-only source of the operator's stored preference.
type PreferenceStore interface {
	Load(ctx context.Context) (entity.Preference, error)
}

// HTMLFormatter sanitizes HTML against an allow-list and wraps bare text in paragraphs.
type HTMLFormatter interface {
	Sanitize(fragment string) string
	AutoParagraph(fragment string) string
}

// ContentFetcher retrieves readable article text from a URL.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// ResponseFilter post-processes a normalized summary before it is returned.
type ResponseFilter func(ctx context.Context, summary string) string

// MetricsRecorder records orchestrator metrics.
type MetricsRecorder interface {
	RecordResolution(result string)
	RecordGeneration(provider, outcome string, duration time.Duration)
	RecordSummaryLength(length int)
}

type noopMetrics struct{}

func (noopMetrics) RecordResolution(string)                        {}
func (noopMetrics) RecordGeneration(string, string, time.Duration) {}
func (noopMetrics) RecordSummaryLength(int)                        {}
