package registry

import (
	"time"

	"tldr-summary/internal/domain/entity"
)

// Provider slugs known to this package.
const (
	SlugAnthropic entity.ProviderSlug = "anthropic"
	SlugOpenAI    entity.ProviderSlug = "openai"
	SlugEcho      entity.ProviderSlug = "echo"
)

// ProviderSettings configures one provider adapter.
type ProviderSettings struct {
	// DisplayName overrides the provider's built-in name when set.
	DisplayName string
	// BaseURL points the SDK client at a compatible endpoint. Empty uses the SDK default.
	BaseURL string
	// Timeout bounds a single call including retries. Default: 60s.
	Timeout time.Duration
	// MaxAttempts overrides the retry budget. 0 keeps the AI API default.
	MaxAttempts int
	// RequestsPerSecond paces outbound calls. 0 disables pacing.
	RequestsPerSecond float64
	// Burst is the pacing burst size.
	Burst int
	// Catalog is served when live model listing fails or is empty.
	Catalog []entity.ModelDescriptor
}
