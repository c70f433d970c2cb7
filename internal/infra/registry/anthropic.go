package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"tldr-summary/internal/domain/entity"
)

// Anthropic adapts the Claude Messages and Models APIs.
type Anthropic struct {
	creds    CredentialSource
	settings ProviderSettings
	guard    *guard
}

// NewAnthropic creates the Anthropic adapter.
func NewAnthropic(creds CredentialSource, settings ProviderSettings) *Anthropic {
	return &Anthropic{
		creds:    creds,
		settings: settings,
		guard:    newGuard("anthropic-api", settings),
	}
}

// Slug implements Provider.
func (a *Anthropic) Slug() entity.ProviderSlug { return SlugAnthropic }

// DisplayName implements Provider.
func (a *Anthropic) DisplayName() string {
	if a.settings.DisplayName != "" {
		return a.settings.DisplayName
	}
	return "Anthropic"
}

// HasCredentials implements Provider.
func (a *Anthropic) HasCredentials(ctx context.Context) bool {
	_, ok := a.creds.APIKey(ctx, SlugAnthropic)
	return ok
}

// client builds a client with the key configured at call time.
// SDK retries are disabled because the guard retries.
func (a *Anthropic) client(ctx context.Context) (anthropic.Client, error) {
	key, ok := a.creds.APIKey(ctx, SlugAnthropic)
	if !ok {
		return anthropic.Client{}, fmt.Errorf("%w: anthropic", ErrMissingCredentials)
	}
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	}
	if a.settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(a.settings.BaseURL))
	}
	return anthropic.NewClient(opts...), nil
}

// ListModels implements Provider. Every Claude model generates text.
func (a *Anthropic) ListModels(ctx context.Context) ([]entity.ModelDescriptor, error) {
	client, err := a.client(ctx)
	if err != nil {
		return nil, err
	}

	page, err := client.Models.List(ctx, anthropic.ModelListParams{Limit: anthropic.Int(100)})
	if err != nil {
		return nil, fmt.Errorf("anthropic list models: %w", anthropicStatus(err))
	}

	out := make([]entity.ModelDescriptor, 0, len(page.Data))
	for _, m := range page.Data {
		name := m.DisplayName
		if name == "" {
			name = m.ID
		}
		out = append(out, entity.ModelDescriptor{
			Slug:         m.ID,
			DisplayName:  name,
			Capabilities: []entity.Capability{entity.CapabilityTextGeneration},
		})
	}
	return out, nil
}

// Generate implements Provider and returns the native *anthropic.Message.
func (a *Anthropic) Generate(ctx context.Context, req entity.GenerationRequest, prompt string) (any, error) {
	client, err := a.client(ctx)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokensOrDefault(req.MaxTokens)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	out, err := a.guard.do(ctx, func(ctx context.Context) (any, error) {
		message, err := client.Messages.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("claude api error: %w", anthropicStatus(err))
		}
		return message, nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "anthropic generation failed",
			slog.String("model", req.Model),
			slog.String("feature", req.Feature),
			slog.Any("error", err))
		return nil, err
	}
	return out, nil
}

func anthropicStatus(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		var header http.Header
		if apiErr.Response != nil {
			header = apiErr.Response.Header
		}
		return statusError(apiErr.StatusCode, header, err)
	}
	return err
}

func maxTokensOrDefault(n int) int {
	if n <= 0 {
		return 1024
	}
	return n
}
