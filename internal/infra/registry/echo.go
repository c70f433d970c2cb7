package registry

import (
	"context"
	"strings"

	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/utils/text"
)

const (
	echoModel     = "echo-1"
	echoMaxLength = 500
)

// Echo is a credential-free provider for local development. It answers the
// connection check and otherwise returns the start of the submitted content.
type Echo struct{}

// NewEcho creates the echo provider.
func NewEcho() *Echo {
	return &Echo{}
}

// Slug implements Provider.
func (e *Echo) Slug() entity.ProviderSlug { return SlugEcho }

// DisplayName implements Provider.
func (e *Echo) DisplayName() string { return "" }

// HasCredentials implements Provider.
func (e *Echo) HasCredentials(context.Context) bool { return true }

// ListModels implements Provider.
func (e *Echo) ListModels(context.Context) ([]entity.ModelDescriptor, error) {
	return []entity.ModelDescriptor{{
		Slug:         echoModel,
		DisplayName:  "Echo",
		Capabilities: []entity.Capability{entity.CapabilityTextGeneration},
	}}, nil
}

// Generate implements Provider and returns an entity.GenerationResult.
func (e *Echo) Generate(ctx context.Context, _ entity.GenerationRequest, prompt string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.Contains(prompt, `"Connection successful"`) {
		return entity.TextResult("Connection successful"), nil
	}

	body := prompt
	if _, after, ok := strings.Cut(prompt, "Content to summarize:\n"); ok {
		body = after
	}
	body = strings.TrimSpace(body)
	if cut, truncated := text.TruncateRunes(body, echoMaxLength); truncated {
		body = cut + "..."
	}
	return entity.TextResult(body), nil
}
