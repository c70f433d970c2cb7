package summary

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"tldr-summary/internal/domain/entity"
)

// MockRegistry implements ProviderRegistry for testing.
type MockRegistry struct {
	providers []entity.ProviderSlug
	usable    map[entity.ProviderSlug]bool
	models    map[entity.ProviderSlug][]entity.ModelDescriptor
	listErr   map[entity.ProviderSlug]error
	names     map[entity.ProviderSlug]string

	generateFn func(ctx context.Context, slug entity.ProviderSlug, req entity.GenerationRequest, prompt string) (any, error)

	generateCalls atomic.Int32
	mu            sync.Mutex
	lastRequest   entity.GenerationRequest
	lastPrompt    string
}

func (m *MockRegistry) ListRegisteredProviders(context.Context) []entity.ProviderSlug {
	return m.providers
}

func (m *MockRegistry) IsProviderUsable(_ context.Context, slug entity.ProviderSlug) bool {
	return m.usable[slug]
}

func (m *MockRegistry) ListModels(_ context.Context, slug entity.ProviderSlug) ([]entity.ModelDescriptor, error) {
	if err := m.listErr[slug]; err != nil {
		return nil, err
	}
	if !m.usable[slug] {
		return nil, entity.ErrProviderUnavailable
	}
	return m.models[slug], nil
}

func (m *MockRegistry) DisplayName(_ context.Context, slug entity.ProviderSlug) string {
	if name, ok := m.names[slug]; ok {
		return name
	}
	return string(slug)
}

func (m *MockRegistry) Generate(ctx context.Context, slug entity.ProviderSlug, req entity.GenerationRequest, prompt string) (any, error) {
	m.generateCalls.Add(1)
	m.mu.Lock()
	m.lastRequest = req
	m.lastPrompt = prompt
	m.mu.Unlock()
	if m.generateFn != nil {
		return m.generateFn(ctx, slug, req, prompt)
	}
	return entity.TextResult("<p>generated</p>"), nil
}

// MockPreferences implements PreferenceStore for testing.
type MockPreferences struct {
	pref entity.Preference
	err  error
}

func (m *MockPreferences) Load(context.Context) (entity.Preference, error) {
	return m.pref, m.err
}

// MockFormatter implements HTMLFormatter without touching the markup.
type MockFormatter struct{}

func (MockFormatter) Sanitize(s string) string      { return s }
func (MockFormatter) AutoParagraph(s string) string { return s }

// MockFetcher implements ContentFetcher for testing.
type MockFetcher struct {
	fetchFn func(ctx context.Context, url string) (string, error)
}

func (m *MockFetcher) FetchContent(ctx context.Context, url string) (string, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, url)
	}
	return "", errors.New("not implemented")
}

// MockMetrics records calls to MetricsRecorder.
type MockMetrics struct {
	mu          sync.Mutex
	resolutions []string
	outcomes    []string
	lengths     []int
}

func (m *MockMetrics) RecordResolution(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutions = append(m.resolutions, result)
}

func (m *MockMetrics) RecordGeneration(_ string, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *MockMetrics) RecordSummaryLength(length int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lengths = append(m.lengths, length)
}

func textModel(slug string) entity.ModelDescriptor {
	return entity.ModelDescriptor{Slug: slug, DisplayName: slug, Capabilities: []entity.Capability{entity.CapabilityTextGeneration}}
}

func imageModel(slug string) entity.ModelDescriptor {
	return entity.ModelDescriptor{Slug: slug, DisplayName: slug, Capabilities: []entity.Capability{"image_generation"}}
}

// newTwoProviderRegistry returns a registry with two usable providers and one
// registered provider lacking credentials.
func newTwoProviderRegistry() *MockRegistry {
	return &MockRegistry{
		providers: []entity.ProviderSlug{"anthropic", "google", "openai"},
		usable: map[entity.ProviderSlug]bool{
			"anthropic": true,
			"google":    false,
			"openai":    true,
		},
		models: map[entity.ProviderSlug][]entity.ModelDescriptor{
			"anthropic": {imageModel("painter"), textModel("claude-a"), textModel("claude-b")},
			"openai":    {textModel("gpt-a"), textModel("gpt-b")},
		},
		names: map[entity.ProviderSlug]string{
			"anthropic": "Anthropic",
			"openai":    "OpenAI",
		},
	}
}
