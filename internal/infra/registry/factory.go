package registry

import (
	"fmt"
	"log/slog"

	"tldr-summary/internal/domain/entity"
)

// DefaultOrder is the registration order used when none is configured.
var DefaultOrder = []entity.ProviderSlug{SlugAnthropic, SlugOpenAI, SlugEcho}

// BuildOptions describes which providers to register and how.
type BuildOptions struct {
	// Order lists provider slugs in registration order. Empty uses DefaultOrder.
	Order []entity.ProviderSlug
	// EnableEcho registers the echo provider when it appears in Order.
	EnableEcho bool
	// Credentials supplies API keys. Nil uses DefaultEnvCredentials.
	Credentials CredentialSource
	// Providers holds per-provider settings keyed by slug.
	Providers map[entity.ProviderSlug]ProviderSettings
}

// Build registers the configured providers in order. Unknown slugs are an error.
func Build(opts BuildOptions) (*Registry, error) {
	order := opts.Order
	if len(order) == 0 {
		order = DefaultOrder
	}
	creds := opts.Credentials
	if creds == nil {
		creds = DefaultEnvCredentials()
	}

	reg := New()
	for _, slug := range order {
		settings := opts.Providers[slug]

		var p Provider
		switch slug {
		case SlugAnthropic:
			p = NewAnthropic(creds, settings)
		case SlugOpenAI:
			p = NewOpenAI(creds, settings)
		case SlugEcho:
			if !opts.EnableEcho {
				continue
			}
			p = NewEcho()
		default:
			return nil, fmt.Errorf("unknown provider %q", slug)
		}

		if err := reg.Register(p, settings.Catalog...); err != nil {
			return nil, err
		}
		slog.Info("provider registered",
			slog.String("provider", slug.String()),
			slog.Int("catalog_models", len(settings.Catalog)))
	}
	return reg, nil
}
