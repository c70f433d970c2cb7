package summary

import (
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/observability/logging"
)

// Resolver turns a stored preference and the live registry state into the
// provider/model pair for one request. Nothing is memoized between calls.
type Resolver struct {
	registry ProviderRegistry
	filter   ModelFilter
}

// NewResolver creates a Resolver. A nil filter selects the manual strategy.
func NewResolver(registry ProviderRegistry, filter ModelFilter) *Resolver {
	if filter == nil {
		filter = manualFilter{}
	}
	return &Resolver{registry: registry, filter: filter}
}

// AvailableProviders returns the usable providers in registry order.
// Credential checks run concurrently.
func (r *Resolver) AvailableProviders(ctx context.Context) []entity.ProviderSlug {
	registered := r.registry.ListRegisteredProviders(ctx)
	if len(registered) == 0 {
		return nil
	}

	usable := make([]bool, len(registered))
	var g errgroup.Group
	for i, slug := range registered {
		g.Go(func() error {
			usable[i] = r.registry.IsProviderUsable(ctx, slug)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]entity.ProviderSlug, 0, len(registered))
	for i, slug := range registered {
		if usable[i] {
			out = append(out, slug)
		}
	}
	return out
}

// TextModels returns the provider's text-generation models. A failed listing
// counts as zero models.
func (r *Resolver) TextModels(ctx context.Context, slug entity.ProviderSlug) []entity.ModelDescriptor {
	models, err := r.registry.ListModels(ctx, slug)
	if err != nil {
		logging.FromContext(ctx).DebugContext(ctx, "model listing failed, treating as empty",
			slog.String("provider", slug.String()),
			slog.Any("error", err))
		return nil
	}
	return r.filter.Filter(models, entity.CapabilityTextGeneration)
}

// Resolve computes the effective selection for pref.
//
// A stored provider or model is used only while it is still available;
// otherwise the first available entry wins. The result is fully empty when no
// provider is usable and carries an empty model when the chosen provider has
// no text-generation model.
func (r *Resolver) Resolve(ctx context.Context, pref entity.Preference) entity.EffectiveSelection {
	providers := r.AvailableProviders(ctx)
	if len(providers) == 0 {
		return entity.EffectiveSelection{}
	}

	provider := providers[0]
	if pref.Provider != "" && slices.Contains(providers, pref.Provider) {
		provider = pref.Provider
	}

	models := r.TextModels(ctx, provider)
	if len(models) == 0 {
		return entity.EffectiveSelection{Provider: provider}
	}

	model := models[0].Slug
	if pref.Model != "" && slices.ContainsFunc(models, func(m entity.ModelDescriptor) bool {
		return m.Slug == pref.Model
	}) {
		model = pref.Model
	}

	return entity.EffectiveSelection{Provider: provider, Model: model}
}
