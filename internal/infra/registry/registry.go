// Package registry adapts concrete AI providers (Anthropic, OpenAI and a local
// echo provider) to the ordered provider registry used by the summary pipeline.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/observability/metrics"
	"tldr-summary/internal/observability/tracing"
)

// Provider is one AI backend.
type Provider interface {
	Slug() entity.ProviderSlug
	// DisplayName may be empty, in which case the registry derives one from the slug.
	DisplayName() string
	// HasCredentials reports whether a key is configured right now.
	HasCredentials(ctx context.Context) bool
	ListModels(ctx context.Context) ([]entity.ModelDescriptor, error)
	Generate(ctx context.Context, req entity.GenerationRequest, prompt string) (any, error)
}

type providerEntry struct {
	provider Provider
	catalog  []entity.ModelDescriptor
}

// Registry keeps providers in registration order.
type Registry struct {
	mu     sync.RWMutex
	order  []entity.ProviderSlug
	byName map[entity.ProviderSlug]providerEntry
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		byName: make(map[entity.ProviderSlug]providerEntry),
	}
}

// Register appends p to the registry. The optional catalog is served when the
// provider's live model listing fails or comes back empty.
func (r *Registry) Register(p Provider, catalog ...entity.ModelDescriptor) error {
	if p == nil {
		return errors.New("provider must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slug := p.Slug()
	if _, exists := r.byName[slug]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, slug)
	}
	r.byName[slug] = providerEntry{provider: p, catalog: slices.Clone(catalog)}
	r.order = append(r.order, slug)
	return nil
}

// ListRegisteredProviders returns every registered slug in registration order.
func (r *Registry) ListRegisteredProviders(context.Context) []entity.ProviderSlug {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// IsProviderUsable reports whether slug is registered and currently has credentials.
func (r *Registry) IsProviderUsable(ctx context.Context, slug entity.ProviderSlug) bool {
	entry, ok := r.lookup(slug)
	if !ok {
		return false
	}
	return entry.provider.HasCredentials(ctx)
}

// ListModels returns the provider's models, falling back to its catalog.
// It fails with entity.ErrProviderUnavailable when the provider is not usable.
func (r *Registry) ListModels(ctx context.Context, slug entity.ProviderSlug) ([]entity.ModelDescriptor, error) {
	entry, err := r.usable(ctx, slug)
	if err != nil {
		return nil, err
	}

	models, err := entry.provider.ListModels(ctx)
	if err == nil && len(models) > 0 {
		return models, nil
	}
	if len(entry.catalog) > 0 {
		if err != nil {
			slog.WarnContext(ctx, "live model listing failed, serving catalog",
				slog.String("provider", slug.String()),
				slog.Any("error", err))
		}
		return slices.Clone(entry.catalog), nil
	}
	if err != nil {
		return nil, fmt.Errorf("list models for provider %q: %w", slug, err)
	}
	return models, nil
}

// DisplayName returns the provider's own name or a title-cased slug.
func (r *Registry) DisplayName(_ context.Context, slug entity.ProviderSlug) string {
	if entry, ok := r.lookup(slug); ok {
		if name := strings.TrimSpace(entry.provider.DisplayName()); name != "" {
			return name
		}
	}
	words := strings.NewReplacer("-", " ", "_", " ").Replace(string(slug))
	// Casers are stateful, so one is built per call.
	return cases.Title(language.English).String(words)
}

// Generate invokes the provider after re-checking its credentials.
func (r *Registry) Generate(ctx context.Context, slug entity.ProviderSlug, req entity.GenerationRequest, prompt string) (any, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "registry.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("tldr.provider", slug.String()),
		attribute.String("tldr.model", req.Model),
		attribute.String("tldr.feature", req.Feature),
	)

	entry, err := r.usable(ctx, slug)
	if err != nil {
		span.SetStatus(codes.Error, "provider unavailable")
		return nil, err
	}

	start := time.Now()
	raw, err := entry.provider.Generate(ctx, req, prompt)
	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
	}
	metrics.RecordProviderInvocation(slug.String(), req.Feature, status, time.Since(start))
	return raw, err
}

func (r *Registry) lookup(slug entity.ProviderSlug) (providerEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.byName[slug]
	return entry, ok
}

func (r *Registry) usable(ctx context.Context, slug entity.ProviderSlug) (providerEntry, error) {
	entry, ok := r.lookup(slug)
	if !ok {
		return providerEntry{}, fmt.Errorf("%w: %s is not registered", entity.ErrProviderUnavailable, slug)
	}
	if !entry.provider.HasCredentials(ctx) {
		return providerEntry{}, fmt.Errorf("%w: %s has no credentials", entity.ErrProviderUnavailable, slug)
	}
	return entry, nil
}
