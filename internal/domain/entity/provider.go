// Package entity defines the domain types shared by the summary pipeline:
// providers, models, stored preferences and the selection resolved from them.
package entity

import "slices"

// ProviderSlug identifies an AI backend inside the provider registry.
// Slugs are supplied by the registry and are never generated here.
type ProviderSlug string

// String returns the slug as a plain string.
func (s ProviderSlug) String() string {
	return string(s)
}

// Capability is a task tag attached to a model.
type Capability string

// CapabilityTextGeneration marks models that can produce free text.
const CapabilityTextGeneration Capability = "text_generation"

// ModelDescriptor describes one invocable model of a provider.
// Descriptors are enumerated per request and never persisted.
type ModelDescriptor struct {
	Slug         string       `json:"slug"`
	DisplayName  string       `json:"display_name"`
	Capabilities []Capability `json:"capabilities"`
}

// Supports reports whether the model carries the given capability.
func (m ModelDescriptor) Supports(c Capability) bool {
	return slices.Contains(m.Capabilities, c)
}

// Platform is a usable provider projected for listing screens.
type Platform struct {
	Slug        ProviderSlug `json:"slug"`
	DisplayName string       `json:"display_name"`
}

// GenerationRequest carries the invocation parameters passed to a provider.
// Feature tags the call for the provider's own usage accounting.
type GenerationRequest struct {
	Model        string
	Capabilities []Capability
	Feature      string
	Temperature  float64
	MaxTokens    int
}
