package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/observability/logging"
	"tldr-summary/internal/observability/tracing"
	"tldr-summary/internal/utils/text"
)

// Config holds the generation parameters used by the Service.
type Config struct {
	// Feature tags every invocation for the provider's usage accounting.
	Feature string
	// Temperature is forwarded to providers that support it.
	Temperature float64
	// MaxTokens caps the length of the generated answer.
	MaxTokens int
	// DefaultInstruction replaces an empty instruction in Summarize.
	DefaultInstruction string
	// MaxContentChars truncates article content before prompting. 0 disables truncation.
	MaxContentChars int
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		Feature:            "tldr-summary",
		Temperature:        0.7,
		MaxTokens:          1024,
		DefaultInstruction: DefaultInstruction,
		MaxContentChars:    20000,
	}
}

// Summary is a normalized summary together with the selection that produced it.
type Summary struct {
	HTML     string              `json:"summary"`
	Provider entity.ProviderSlug `json:"provider"`
	Model    string              `json:"model"`
}

// SummarizeRequest is a caller's request to summarize one article.
// Content wins over URL when both are set.
type SummarizeRequest struct {
	Instruction string
	Content     string
	URL         string
}

// ConnectionResult reports the outcome of TestConnection.
type ConnectionResult struct {
	Success  bool                `json:"success"`
	Provider entity.ProviderSlug `json:"provider,omitempty"`
	Model    string              `json:"model,omitempty"`
	Kind     ErrorKind           `json:"kind,omitempty"`
	Message  string              `json:"message"`
	Response string              `json:"response,omitempty"`
}

// Option configures a Service.
type Option func(*Service)

// WithConfig overrides the generation parameters.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithModelFilterHelper enables the registry's capability filter.
func WithModelFilterHelper(h ModelFilterHelper) Option {
	return func(s *Service) { s.filterHelper = h }
}

// WithCandidateTextHelper enables the registry's result reader.
func WithCandidateTextHelper(h CandidateTextHelper) Option {
	return func(s *Service) { s.textHelper = h }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithContentFetcher enables summarizing by URL.
func WithContentFetcher(f ContentFetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// WithResponseFilters appends filters applied to every summary returned by Summarize.
func WithResponseFilters(filters ...ResponseFilter) Option {
	return func(s *Service) { s.filters = append(s.filters, filters...) }
}

// Service orchestrates resolution, invocation, unwrapping and normalization.
// It keeps no per-request state and is safe for concurrent use.
type Service struct {
	registry     ProviderRegistry
	prefs        PreferenceStore
	cfg          Config
	filterHelper ModelFilterHelper
	textHelper   CandidateTextHelper
	metrics      MetricsRecorder
	fetcher      ContentFetcher
	filters      []ResponseFilter

	resolver   *Resolver
	unwrapper  *Unwrapper
	normalizer *Normalizer
}

// NewService creates a Service. The filtering and unwrapping strategies are
// fixed here from the helpers passed as options.
func NewService(registry ProviderRegistry, prefs PreferenceStore, formatter HTMLFormatter, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		prefs:    prefs,
		cfg:      DefaultConfig(),
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = NewResolver(registry, NewModelFilter(s.filterHelper))
	s.unwrapper = NewUnwrapper(s.textHelper)
	s.normalizer = NewNormalizer(formatter)
	return s
}

// Preference loads the stored preference. A store failure is logged and
// treated as an empty preference so resolution can fall back.
func (s *Service) Preference(ctx context.Context) entity.Preference {
	if s.prefs == nil {
		return entity.Preference{}
	}
	pref, err := s.prefs.Load(ctx)
	if err != nil {
		s.logger(ctx).WarnContext(ctx, "preference load failed, using defaults",
			slog.Any("error", err))
		return entity.Preference{}
	}
	return pref
}

// ResolveSelection resolves the effective selection from the stored preference.
func (s *Service) ResolveSelection(ctx context.Context) entity.EffectiveSelection {
	return s.ResolveFor(ctx, s.Preference(ctx))
}

// ResolveFor resolves the effective selection for an explicit preference.
func (s *Service) ResolveFor(ctx context.Context, pref entity.Preference) entity.EffectiveSelection {
	ctx, span := tracing.GetTracer().Start(ctx, "summary.ResolveSelection")
	defer span.End()

	sel := s.resolver.Resolve(ctx, pref)

	result := "complete"
	switch {
	case sel.IsEmpty():
		result = "no_provider"
	case !sel.HasModel():
		result = "no_model"
	case sel.Provider != pref.Provider || sel.Model != pref.Model:
		result = "fallback"
	}
	s.metrics.RecordResolution(result)
	span.SetAttributes(
		attribute.String("tldr.provider", sel.Provider.String()),
		attribute.String("tldr.model", sel.Model),
		attribute.String("tldr.resolution", result),
	)
	return sel
}

// GenerateSummary runs the full pipeline for prompt and returns sanitized HTML.
func (s *Service) GenerateSummary(ctx context.Context, prompt string) (string, error) {
	sum, err := s.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return sum.HTML, nil
}

// Generate is GenerateSummary that also reports the provider and model used.
//
// Failures are one of ErrNoProviderAvailable, ErrNoModelAvailable,
// *InvocationError (matching ErrInvocationFailed) or ErrEmptyResponse.
func (s *Service) Generate(ctx context.Context, prompt string) (*Summary, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "summary.GenerateSummary")
	defer span.End()

	logger := s.logger(ctx)

	if strings.TrimSpace(prompt) == "" {
		return nil, &entity.ValidationError{Field: "prompt", Message: "prompt is required"}
	}

	sel := s.ResolveSelection(ctx)
	if sel.IsEmpty() {
		logger.WarnContext(ctx, "no AI provider available")
		span.SetStatus(codes.Error, string(KindNoProvider))
		s.metrics.RecordGeneration("", string(KindNoProvider), 0)
		return nil, ErrNoProviderAvailable
	}
	if !sel.HasModel() {
		logger.WarnContext(ctx, "selected provider has no text-generation model",
			slog.String("provider", sel.Provider.String()))
		span.SetStatus(codes.Error, string(KindNoModel))
		s.metrics.RecordGeneration(sel.Provider.String(), string(KindNoModel), 0)
		return nil, fmt.Errorf("%w: provider %s", ErrNoModelAvailable, sel.Provider)
	}

	logger = logger.With(
		slog.String("provider", sel.Provider.String()),
		slog.String("model", sel.Model),
		slog.String("feature", s.cfg.Feature))

	logger.InfoContext(ctx, "Starting generation",
		slog.Int("prompt_length", text.CountRunes(prompt)))

	start := time.Now()
	raw, err := s.invoke(ctx, sel, prompt)
	duration := time.Since(start)

	if err != nil {
		logger.ErrorContext(ctx, "Generation failed",
			slog.Duration("duration", duration),
			slog.String("error_kind", string(KindInvocationFailed)),
			slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, string(KindInvocationFailed))
		s.metrics.RecordGeneration(sel.Provider.String(), string(KindInvocationFailed), duration)
		return nil, &InvocationError{Provider: sel.Provider, Model: sel.Model, Cause: err}
	}

	extracted, err := s.unwrapper.ExtractText(raw)
	if err != nil {
		return nil, s.emptyResponse(ctx, logger, sel, duration)
	}

	normalized := s.normalizer.Normalize(extracted)
	if normalized == "" {
		return nil, s.emptyResponse(ctx, logger, sel, duration)
	}

	length := text.CountRunes(normalized)
	logger.InfoContext(ctx, "Generation completed",
		slog.Duration("duration", duration),
		slog.Int("summary_length", length))
	s.metrics.RecordGeneration(sel.Provider.String(), "success", duration)
	s.metrics.RecordSummaryLength(length)

	return &Summary{HTML: normalized, Provider: sel.Provider, Model: sel.Model}, nil
}

// Summarize builds the summary prompt for an article and generates its summary.
func (s *Service) Summarize(ctx context.Context, req SummarizeRequest) (*Summary, error) {
	instruction := strings.TrimSpace(req.Instruction)
	if instruction == "" {
		instruction = s.cfg.DefaultInstruction
	}

	content := strings.TrimSpace(req.Content)
	if content == "" && strings.TrimSpace(req.URL) != "" {
		fetched, err := s.fetchContent(ctx, strings.TrimSpace(req.URL))
		if err != nil {
			return nil, err
		}
		content = strings.TrimSpace(fetched)
	}
	if content == "" {
		return nil, ErrMissingContent
	}

	if truncated, cut := text.TruncateRunes(content, s.cfg.MaxContentChars); cut {
		s.logger(ctx).WarnContext(ctx, "content truncated before prompting",
			slog.Int("original_length", text.CountRunes(content)),
			slog.Int("limit", s.cfg.MaxContentChars))
		content = truncated
	}

	sum, err := s.Generate(ctx, BuildSummaryPrompt(instruction, content))
	if err != nil {
		return nil, err
	}
	for _, f := range s.filters {
		sum.HTML = f(ctx, sum.HTML)
	}
	return sum, nil
}

// TestConnection sends a fixed prompt through the pipeline. Failures are
// reported in the result rather than returned.
func (s *Service) TestConnection(ctx context.Context) ConnectionResult {
	sum, err := s.Generate(ctx, ConnectionTestPrompt)
	if err != nil {
		res := ConnectionResult{Kind: KindOf(err), Message: err.Error()}
		var inv *InvocationError
		if errors.As(err, &inv) {
			res.Provider = inv.Provider
			res.Model = inv.Model
		}
		return res
	}
	return ConnectionResult{
		Success:  true,
		Provider: sum.Provider,
		Model:    sum.Model,
		Message:  "Connection successful",
		Response: sum.HTML,
	}
}

// ListAvailablePlatforms returns the usable providers with display names, in registry order.
func (s *Service) ListAvailablePlatforms(ctx context.Context) []entity.Platform {
	providers := s.resolver.AvailableProviders(ctx)
	out := make([]entity.Platform, 0, len(providers))
	for _, slug := range providers {
		out = append(out, entity.Platform{Slug: slug, DisplayName: s.registry.DisplayName(ctx, slug)})
	}
	return out
}

// ListAvailableModels returns the text-generation models of slug. An empty
// slug means the currently resolved provider. Unusable providers yield an
// empty list.
func (s *Service) ListAvailableModels(ctx context.Context, slug entity.ProviderSlug) []entity.ModelDescriptor {
	if slug == "" {
		slug = s.ResolveSelection(ctx).Provider
		if slug == "" {
			return []entity.ModelDescriptor{}
		}
	}
	if !s.registry.IsProviderUsable(ctx, slug) {
		return []entity.ModelDescriptor{}
	}
	models := s.resolver.TextModels(ctx, slug)
	if models == nil {
		return []entity.ModelDescriptor{}
	}
	return models
}

// Ready reports whether at least one provider is usable.
func (s *Service) Ready(ctx context.Context) bool {
	return len(s.resolver.AvailableProviders(ctx)) > 0
}

func (s *Service) invoke(ctx context.Context, sel entity.EffectiveSelection, prompt string) (raw any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	req := entity.GenerationRequest{
		Model:        sel.Model,
		Capabilities: []entity.Capability{entity.CapabilityTextGeneration},
		Feature:      s.cfg.Feature,
		Temperature:  s.cfg.Temperature,
		MaxTokens:    s.cfg.MaxTokens,
	}
	return s.registry.Generate(ctx, sel.Provider, req, prompt)
}

func (s *Service) fetchContent(ctx context.Context, url string) (string, error) {
	if err := entity.ValidateURL(url); err != nil {
		return "", err
	}
	if s.fetcher == nil {
		return "", &entity.ValidationError{Field: "url", Message: "fetching content by url is disabled"}
	}
	content, err := s.fetcher.FetchContent(ctx, url)
	if err != nil {
		s.logger(ctx).WarnContext(ctx, "content fetch failed",
			slog.String("url", url),
			slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}
	return content, nil
}

func (s *Service) emptyResponse(ctx context.Context, logger *slog.Logger, sel entity.EffectiveSelection, duration time.Duration) error {
	logger.WarnContext(ctx, "Generation returned no usable text",
		slog.Duration("duration", duration),
		slog.String("error_kind", string(KindEmptyResponse)))
	s.metrics.RecordGeneration(sel.Provider.String(), string(KindEmptyResponse), duration)
	return ErrEmptyResponse
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	return logging.WithRequestID(ctx, logging.FromContext(ctx))
}
