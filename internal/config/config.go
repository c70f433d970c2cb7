// Package config loads the application configuration from an optional YAML
// file and the environment. Environment values override the file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tldr-summary/internal/domain/entity"
	envcfg "tldr-summary/pkg/config"
)

// Preference store kinds accepted by TLDR_PREFERENCE_STORE.
const (
	StoreEnv      = "env"
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config is the complete application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Providers  ProvidersConfig  `yaml:"providers"`
	Preference PreferenceConfig `yaml:"preference"`
	Generation GenerationConfig `yaml:"generation"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Fetch      FetchConfig      `yaml:"fetch"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	// TrustedProxies lists CIDRs whose X-Forwarded-For is honored.
	TrustedProxies []string `yaml:"trusted_proxies"`
	// TraceSampleRatio is the fraction of new traces recorded.
	TraceSampleRatio float64 `yaml:"trace_sample_ratio"`
	// JWTSecret signs admin tokens. Never read from the file.
	JWTSecret string `yaml:"-"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ProvidersConfig selects and tunes the registered AI providers.
type ProvidersConfig struct {
	// Order is the registration order, which is also the fallback order.
	Order      []string `yaml:"order"`
	EnableEcho bool     `yaml:"enable_echo"`
	// Timeout and RequestsPerSecond apply to providers without their own value.
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	// Settings holds per-provider overrides keyed by slug.
	Settings map[string]ProviderConfig `yaml:"settings"`
}

// ProviderConfig tunes one provider.
type ProviderConfig struct {
	DisplayName       string         `yaml:"display_name"`
	BaseURL           string         `yaml:"base_url"`
	Timeout           time.Duration  `yaml:"timeout"`
	MaxAttempts       int            `yaml:"max_attempts"`
	RequestsPerSecond float64        `yaml:"requests_per_second"`
	Burst             int            `yaml:"burst"`
	Catalog           []CatalogModel `yaml:"catalog"`
}

// CatalogModel is a statically declared model served when live listing fails.
type CatalogModel struct {
	Slug         string   `yaml:"slug"`
	DisplayName  string   `yaml:"display_name"`
	Capabilities []string `yaml:"capabilities"`
}

// Descriptor converts the entry to a domain model. Missing capabilities
// default to text generation.
func (m CatalogModel) Descriptor() entity.ModelDescriptor {
	d := entity.ModelDescriptor{Slug: m.Slug, DisplayName: m.DisplayName}
	if d.DisplayName == "" {
		d.DisplayName = m.Slug
	}
	for _, c := range m.Capabilities {
		d.Capabilities = append(d.Capabilities, entity.Capability(strings.TrimSpace(c)))
	}
	if len(d.Capabilities) == 0 {
		d.Capabilities = []entity.Capability{entity.CapabilityTextGeneration}
	}
	return d
}

// PreferenceConfig chooses where the operator's platform/model preference lives.
type PreferenceConfig struct {
	Store       string `yaml:"store"`
	File        string `yaml:"file"`
	DatabaseURL string `yaml:"-"`
}

// GenerationConfig holds the summary generation parameters.
type GenerationConfig struct {
	Feature         string  `yaml:"feature"`
	DefaultPrompt   string  `yaml:"default_prompt"`
	Temperature     float64 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
	MaxContentChars int     `yaml:"max_content_chars"`
}

// RateLimitConfig is the fixed-window limit on summary creation. Zero
// requests disables limiting.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// FetchConfig controls article fetching for summaries requested by URL.
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	MaxRedirects   int           `yaml:"max_redirects"`
	DenyPrivateIPs bool          `yaml:"deny_private_ips"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:             "8080",
			ShutdownTimeout:  10 * time.Second,
			MaxBodyBytes:     1 << 20,
			TraceSampleRatio: 1,
		},
		Log: LogConfig{Level: "info"},
		Providers: ProvidersConfig{
			Order:   []string{"anthropic", "openai", "echo"},
			Timeout: 60 * time.Second,
		},
		Preference: PreferenceConfig{
			Store: StoreEnv,
			File:  "tldr-preference.yaml",
		},
		Generation: GenerationConfig{
			Feature:         "tldr-summary",
			DefaultPrompt:   "Please provide a concise TL;DR summary of this article with a call-to-action at the end.",
			Temperature:     0.7,
			MaxTokens:       1024,
			MaxContentChars: 20000,
		},
		RateLimit: RateLimitConfig{
			Requests: 10,
			Window:   time.Hour,
		},
		Fetch: FetchConfig{
			Timeout:        10 * time.Second,
			MaxBodyBytes:   5 << 20,
			MaxRedirects:   5,
			DenyPrivateIPs: true,
		},
	}
}

// Load reads TLDR_CONFIG_FILE when set, applies environment overrides and
// validates the result.
func Load() (*Config, error) {
	return LoadFrom(envcfg.GetEnvString("TLDR_CONFIG_FILE", ""))
}

// LoadFrom is Load with an explicit file path. An empty path skips the file.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = envcfg.GetEnvString("PORT", cfg.Server.Port)
	cfg.Server.ShutdownTimeout = envcfg.GetEnvDuration("TLDR_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Server.TrustedProxies = envcfg.GetEnvStringList("TLDR_TRUSTED_PROXIES", cfg.Server.TrustedProxies)
	cfg.Server.TraceSampleRatio = envcfg.GetEnvFloat("TLDR_TRACE_SAMPLE_RATIO", cfg.Server.TraceSampleRatio)
	cfg.Server.JWTSecret = envcfg.GetEnvString("JWT_SECRET", cfg.Server.JWTSecret)

	cfg.Log.Level = envcfg.GetEnvString("LOG_LEVEL", cfg.Log.Level)

	cfg.Providers.Order = envcfg.GetEnvStringList("TLDR_PROVIDER_ORDER", cfg.Providers.Order)
	cfg.Providers.EnableEcho = envcfg.GetEnvBool("TLDR_ENABLE_ECHO_PROVIDER", cfg.Providers.EnableEcho)
	cfg.Providers.Timeout = envcfg.GetEnvDuration("TLDR_PROVIDER_TIMEOUT", cfg.Providers.Timeout)
	cfg.Providers.RequestsPerSecond = envcfg.GetEnvFloat("TLDR_PROVIDER_RPS", cfg.Providers.RequestsPerSecond)

	cfg.Preference.Store = strings.ToLower(envcfg.GetEnvString("TLDR_PREFERENCE_STORE", cfg.Preference.Store))
	cfg.Preference.File = envcfg.GetEnvString("TLDR_PREFERENCE_FILE", cfg.Preference.File)
	cfg.Preference.DatabaseURL = envcfg.GetEnvString("DATABASE_URL", cfg.Preference.DatabaseURL)

	cfg.Generation.Feature = envcfg.GetEnvString("TLDR_FEATURE", cfg.Generation.Feature)
	cfg.Generation.DefaultPrompt = envcfg.GetEnvString("TLDR_DEFAULT_PROMPT", cfg.Generation.DefaultPrompt)
	cfg.Generation.Temperature = envcfg.GetEnvFloat("TLDR_TEMPERATURE", cfg.Generation.Temperature)
	cfg.Generation.MaxTokens = envcfg.GetEnvInt("TLDR_MAX_TOKENS", cfg.Generation.MaxTokens)
	cfg.Generation.MaxContentChars = envcfg.GetEnvInt("TLDR_MAX_CONTENT_CHARS", cfg.Generation.MaxContentChars)

	cfg.RateLimit.Requests = envcfg.GetEnvInt("TLDR_RATE_LIMIT_REQUESTS", cfg.RateLimit.Requests)
	cfg.RateLimit.Window = envcfg.GetEnvDuration("TLDR_RATE_LIMIT_WINDOW", cfg.RateLimit.Window)

	cfg.Fetch.Timeout = envcfg.GetEnvDuration("TLDR_FETCH_TIMEOUT", cfg.Fetch.Timeout)
	cfg.Fetch.MaxBodyBytes = int64(envcfg.GetEnvInt("TLDR_FETCH_MAX_BODY_BYTES", int(cfg.Fetch.MaxBodyBytes)))
	cfg.Fetch.MaxRedirects = envcfg.GetEnvInt("TLDR_FETCH_MAX_REDIRECTS", cfg.Fetch.MaxRedirects)
	cfg.Fetch.DenyPrivateIPs = envcfg.GetEnvBool("TLDR_FETCH_DENY_PRIVATE_IPS", cfg.Fetch.DenyPrivateIPs)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	if c.Server.Port == "" {
		add("PORT cannot be empty")
	}
	if err := envcfg.ValidatePositiveDuration(c.Server.ShutdownTimeout); err != nil {
		add("TLDR_SHUTDOWN_TIMEOUT: %w", err)
	}
	if c.Server.MaxBodyBytes <= 0 {
		add("server.max_body_bytes must be positive")
	}
	if err := envcfg.ValidateRange(c.Server.TraceSampleRatio, 0, 1); err != nil {
		add("TLDR_TRACE_SAMPLE_RATIO: %w", err)
	}

	if len(c.Providers.Order) == 0 {
		add("TLDR_PROVIDER_ORDER cannot be empty")
	}
	seen := make(map[string]bool, len(c.Providers.Order))
	for _, slug := range c.Providers.Order {
		if err := entity.ValidateSlug(slug); err != nil {
			add("TLDR_PROVIDER_ORDER: %w", err)
		}
		if seen[slug] {
			add("TLDR_PROVIDER_ORDER: duplicate provider %q", slug)
		}
		seen[slug] = true
	}
	if err := envcfg.ValidatePositiveDuration(c.Providers.Timeout); err != nil {
		add("TLDR_PROVIDER_TIMEOUT: %w", err)
	}
	if c.Providers.RequestsPerSecond < 0 {
		add("TLDR_PROVIDER_RPS cannot be negative")
	}

	switch c.Preference.Store {
	case StoreEnv:
	case StoreFile:
		if c.Preference.File == "" {
			add("TLDR_PREFERENCE_FILE is required when TLDR_PREFERENCE_STORE=file")
		}
	case StorePostgres:
		if c.Preference.DatabaseURL == "" {
			add("DATABASE_URL is required when TLDR_PREFERENCE_STORE=postgres")
		}
	default:
		add("TLDR_PREFERENCE_STORE must be one of env, file, postgres; got %q", c.Preference.Store)
	}

	if strings.TrimSpace(c.Generation.DefaultPrompt) == "" {
		add("TLDR_DEFAULT_PROMPT cannot be empty")
	}
	if err := envcfg.ValidateRange(c.Generation.Temperature, 0, 2); err != nil {
		add("TLDR_TEMPERATURE: %w", err)
	}
	if c.Generation.MaxTokens <= 0 {
		add("TLDR_MAX_TOKENS must be positive")
	}
	if c.Generation.MaxContentChars < 0 {
		add("TLDR_MAX_CONTENT_CHARS cannot be negative")
	}

	if c.RateLimit.Requests < 0 {
		add("TLDR_RATE_LIMIT_REQUESTS cannot be negative")
	}
	if c.RateLimit.Requests > 0 {
		if err := envcfg.ValidatePositiveDuration(c.RateLimit.Window); err != nil {
			add("TLDR_RATE_LIMIT_WINDOW: %w", err)
		}
	}

	if err := envcfg.ValidatePositiveDuration(c.Fetch.Timeout); err != nil {
		add("TLDR_FETCH_TIMEOUT: %w", err)
	}

	return errors.Join(errs...)
}
