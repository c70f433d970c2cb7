package registry

import (
	"context"
	"os"
	"strings"

	"tldr-summary/internal/domain/entity"
)

// CredentialSource returns the API key currently configured for a provider.
// It is consulted on every call so rotated keys apply without a restart.
type CredentialSource interface {
	APIKey(ctx context.Context, slug entity.ProviderSlug) (string, bool)
}

// EnvCredentials maps provider slugs to the environment variable holding their key.
type EnvCredentials map[entity.ProviderSlug]string

// DefaultEnvCredentials returns the standard key variables.
func DefaultEnvCredentials() EnvCredentials {
	return EnvCredentials{
		SlugAnthropic: "ANTHROPIC_API_KEY",
		SlugOpenAI:    "OPENAI_API_KEY",
	}
}

// APIKey implements CredentialSource.
func (e EnvCredentials) APIKey(_ context.Context, slug entity.ProviderSlug) (string, bool) {
	name, ok := e[slug]
	if !ok {
		return "", false
	}
	key := strings.TrimSpace(os.Getenv(name))
	return key, key != ""
}

// StaticCredentials is a fixed key set, mainly for tests and the CLI.
type StaticCredentials map[entity.ProviderSlug]string

// APIKey implements CredentialSource.
func (s StaticCredentials) APIKey(_ context.Context, slug entity.ProviderSlug) (string, bool) {
	key := strings.TrimSpace(s[slug])
	return key, key != ""
}
