// Package app assembles the summary service from configuration. Both the HTTP
// server and the CLI start from here.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"tldr-summary/internal/config"
	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/infra/adapter/persistence/postgres"
	"tldr-summary/internal/infra/db"
	"tldr-summary/internal/infra/fetcher"
	"tldr-summary/internal/infra/htmltext"
	"tldr-summary/internal/infra/preference"
	"tldr-summary/internal/infra/registry"
	"tldr-summary/internal/observability/metrics"
	"tldr-summary/internal/usecase/summary"
)

// App holds the wired components.
type App struct {
	Config      *config.Config
	Registry    *registry.Registry
	Preferences preference.Store
	Service     *summary.Service

	db *sql.DB
}

// Option customizes New.
type Option func(*options)

type options struct {
	credentials registry.CredentialSource
	openDB      func(ctx context.Context, dsn string) (*sql.DB, error)
}

// WithCredentials replaces the environment credential source.
func WithCredentials(c registry.CredentialSource) Option {
	return func(o *options) { o.credentials = c }
}

// WithDBOpener replaces the PostgreSQL connection factory.
func WithDBOpener(open func(ctx context.Context, dsn string) (*sql.DB, error)) Option {
	return func(o *options) { o.openDB = open }
}

// New builds the registry, the preference store and the service.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := options{
		openDB: func(ctx context.Context, dsn string) (*sql.DB, error) {
			return db.Open(ctx, dsn, db.ConnectionConfigFromEnv())
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	reg, err := registry.Build(RegistryOptions(cfg, o.credentials))
	if err != nil {
		return nil, fmt.Errorf("build provider registry: %w", err)
	}

	a := &App{Config: cfg, Registry: reg}
	if err := a.openPreferences(ctx, o); err != nil {
		return nil, err
	}

	fetchCfg := fetcher.DefaultConfig()
	fetchCfg.Timeout = cfg.Fetch.Timeout
	fetchCfg.MaxBodySize = cfg.Fetch.MaxBodyBytes
	fetchCfg.MaxRedirects = cfg.Fetch.MaxRedirects
	fetchCfg.DenyPrivateIPs = cfg.Fetch.DenyPrivateIPs
	if err := fetchCfg.Validate(); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("invalid fetch configuration: %w", err)
	}

	a.Service = summary.NewService(reg, a.Preferences, htmltext.NewFormatter(),
		summary.WithConfig(summary.Config{
			Feature:            cfg.Generation.Feature,
			Temperature:        cfg.Generation.Temperature,
			MaxTokens:          cfg.Generation.MaxTokens,
			DefaultInstruction: cfg.Generation.DefaultPrompt,
			MaxContentChars:    cfg.Generation.MaxContentChars,
		}),
		summary.WithModelFilterHelper(reg),
		summary.WithCandidateTextHelper(reg),
		summary.WithMetrics(metrics.NewSummaryRecorder()),
		summary.WithContentFetcher(fetcher.NewReadabilityFetcher(fetchCfg)),
	)
	return a, nil
}

// RegistryOptions translates the provider configuration. A nil credential
// source reads API keys from the environment.
func RegistryOptions(cfg *config.Config, creds registry.CredentialSource) registry.BuildOptions {
	opts := registry.BuildOptions{
		EnableEcho:  cfg.Providers.EnableEcho,
		Credentials: creds,
		Providers:   make(map[entity.ProviderSlug]registry.ProviderSettings, len(cfg.Providers.Order)),
	}
	for _, s := range cfg.Providers.Order {
		slug := entity.ProviderSlug(s)
		opts.Order = append(opts.Order, slug)

		pc := cfg.Providers.Settings[s]
		settings := registry.ProviderSettings{
			DisplayName:       pc.DisplayName,
			BaseURL:           pc.BaseURL,
			Timeout:           pc.Timeout,
			MaxAttempts:       pc.MaxAttempts,
			RequestsPerSecond: pc.RequestsPerSecond,
			Burst:             pc.Burst,
		}
		if settings.Timeout == 0 {
			settings.Timeout = cfg.Providers.Timeout
		}
		if settings.RequestsPerSecond == 0 {
			settings.RequestsPerSecond = cfg.Providers.RequestsPerSecond
		}
		for _, m := range pc.Catalog {
			settings.Catalog = append(settings.Catalog, m.Descriptor())
		}
		opts.Providers[slug] = settings
	}
	return opts
}

func (a *App) openPreferences(ctx context.Context, o options) error {
	switch a.Config.Preference.Store {
	case config.StoreFile:
		a.Preferences = preference.NewFileStore(a.Config.Preference.File)
	case config.StorePostgres:
		conn, err := o.openDB(ctx, a.Config.Preference.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open preference database: %w", err)
		}
		if err := db.MigrateUp(ctx, conn); err != nil {
			_ = conn.Close()
			return fmt.Errorf("migrate preference database: %w", err)
		}
		a.db = conn
		a.Preferences = preference.NewDBStore(postgres.NewSettingsRepo(conn))
	default:
		a.Preferences = preference.EnvStore{}
	}
	slog.Info("preference store ready", slog.String("store", a.Config.Preference.Store))
	return nil
}

// StorePinger returns the preference store when it can be health-checked, or nil.
func (a *App) StorePinger() interface{ Ping(context.Context) error } {
	if p, ok := a.Preferences.(interface{ Ping(context.Context) error }); ok {
		return p
	}
	return nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("close preference database: %w", err)
	}
	return nil
}
