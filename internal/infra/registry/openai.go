package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"tldr-summary/internal/domain/entity"
)

// OpenAI adapts the OpenAI chat completion and model listing APIs.
// It also serves OpenAI-compatible endpoints through BaseURL.
type OpenAI struct {
	creds    CredentialSource
	settings ProviderSettings
	guard    *guard
}

// NewOpenAI creates the OpenAI adapter.
func NewOpenAI(creds CredentialSource, settings ProviderSettings) *OpenAI {
	return &OpenAI{
		creds:    creds,
		settings: settings,
		guard:    newGuard("openai-api", settings),
	}
}

// Slug implements Provider.
func (o *OpenAI) Slug() entity.ProviderSlug { return SlugOpenAI }

// DisplayName implements Provider.
func (o *OpenAI) DisplayName() string {
	if o.settings.DisplayName != "" {
		return o.settings.DisplayName
	}
	return "OpenAI"
}

// HasCredentials implements Provider.
func (o *OpenAI) HasCredentials(ctx context.Context) bool {
	_, ok := o.creds.APIKey(ctx, SlugOpenAI)
	return ok
}

func (o *OpenAI) client(ctx context.Context) (*openai.Client, error) {
	key, ok := o.creds.APIKey(ctx, SlugOpenAI)
	if !ok {
		return nil, fmt.Errorf("%w: openai", ErrMissingCredentials)
	}
	cfg := openai.DefaultConfig(key)
	if o.settings.BaseURL != "" {
		cfg.BaseURL = o.settings.BaseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

// ListModels implements Provider. Capabilities are inferred from the model id.
func (o *OpenAI) ListModels(ctx context.Context) ([]entity.ModelDescriptor, error) {
	client, err := o.client(ctx)
	if err != nil {
		return nil, err
	}

	list, err := client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("openai list models: %w", openAIStatus(err))
	}

	out := make([]entity.ModelDescriptor, 0, len(list.Models))
	for _, m := range list.Models {
		out = append(out, entity.ModelDescriptor{
			Slug:         m.ID,
			DisplayName:  m.ID,
			Capabilities: openAICapabilities(m.ID),
		})
	}
	return out, nil
}

// Generate implements Provider and returns the native openai.ChatCompletionResponse.
func (o *OpenAI) Generate(ctx context.Context, req entity.GenerationRequest, prompt string) (any, error) {
	client, err := o.client(ctx)
	if err != nil {
		return nil, err
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		MaxTokens:   maxTokensOrDefault(req.MaxTokens),
		Temperature: float32(req.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	out, err := o.guard.do(ctx, func(ctx context.Context) (any, error) {
		resp, err := client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return nil, fmt.Errorf("openai api error: %w", openAIStatus(err))
		}
		return resp, nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "openai generation failed",
			slog.String("model", req.Model),
			slog.String("feature", req.Feature),
			slog.Any("error", err))
		return nil, err
	}
	return out, nil
}

func openAIStatus(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(apiErr.HTTPStatusCode, nil, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(reqErr.HTTPStatusCode, nil, err)
	}
	return err
}

// openAICapabilities maps a model id onto capability tags.
func openAICapabilities(id string) []entity.Capability {
	id = strings.ToLower(id)
	switch {
	case strings.HasPrefix(id, "text-embedding"):
		return []entity.Capability{"embedding"}
	case strings.HasPrefix(id, "dall-e"), strings.HasPrefix(id, "gpt-image"):
		return []entity.Capability{"image_generation"}
	case strings.HasPrefix(id, "whisper"), strings.Contains(id, "transcribe"):
		return []entity.Capability{"speech_to_text"}
	case strings.HasPrefix(id, "tts"), strings.Contains(id, "-tts"):
		return []entity.Capability{"text_to_speech"}
	case strings.HasPrefix(id, "omni-moderation"), strings.HasPrefix(id, "text-moderation"):
		return []entity.Capability{"moderation"}
	case strings.Contains(id, "realtime"), strings.Contains(id, "audio"):
		return []entity.Capability{"audio"}
	case strings.HasPrefix(id, "gpt-"), strings.HasPrefix(id, "chatgpt-"),
		strings.HasPrefix(id, "o1"), strings.HasPrefix(id, "o3"), strings.HasPrefix(id, "o4"):
		return []entity.Capability{entity.CapabilityTextGeneration}
	default:
		return nil
	}
}
