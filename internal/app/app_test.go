package app

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tldr-summary/internal/config"
	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/infra/preference"
	"tldr-summary/internal/infra/registry"
)

func echoConfig() *config.Config {
	cfg := config.Default()
	cfg.Providers.Order = []string{"echo"}
	cfg.Providers.EnableEcho = true
	return &cfg
}

func TestNew_EnvStoreWithEcho(t *testing.T) {
	t.Setenv("TLDR_AI_PLATFORM", "")
	t.Setenv("TLDR_AI_MODEL", "")

	a, err := New(context.Background(), echoConfig(), WithCredentials(registry.StaticCredentials{}))
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	assert.IsType(t, preference.EnvStore{}, a.Preferences)
	assert.Nil(t, a.StorePinger())

	sel := a.Service.ResolveSelection(context.Background())
	assert.Equal(t, entity.ProviderSlug("echo"), sel.Provider)

	res := a.Service.TestConnection(context.Background())
	assert.True(t, res.Success, res.Message)
}

func TestNew_FileStore(t *testing.T) {
	cfg := echoConfig()
	cfg.Preference.Store = config.StoreFile
	cfg.Preference.File = filepath.Join(t.TempDir(), "pref.yaml")

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, a.Preferences.Save(context.Background(), entity.Preference{Provider: "echo", Model: "echo-1"}))
	pref, err := a.Preferences.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderSlug("echo"), pref.Provider)
	assert.Equal(t, "echo-1", pref.Model)
}

func TestNew_PostgresStore(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS tldr_settings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_tldr_settings_updated_at").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT key, value FROM tldr_settings").
		WithArgs("selected_ai_platform", "selected_ai_model").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("selected_ai_platform", "Echo"))
	mock.ExpectClose()

	cfg := echoConfig()
	cfg.Preference.Store = config.StorePostgres
	cfg.Preference.DatabaseURL = "postgres://example/tldr"

	var gotDSN string
	a, err := New(context.Background(), cfg, WithDBOpener(func(_ context.Context, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return conn, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://example/tldr", gotDSN)
	assert.NotNil(t, a.StorePinger())

	pref, err := a.Preferences.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderSlug("echo"), pref.Provider)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close(), "second close is a no-op")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_Errors(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		cfg := echoConfig()
		cfg.Providers.Order = []string{"gemini"}
		_, err := New(context.Background(), cfg)
		assert.ErrorContains(t, err, "unknown provider")
	})

	t.Run("database unreachable", func(t *testing.T) {
		cfg := echoConfig()
		cfg.Preference.Store = config.StorePostgres
		cfg.Preference.DatabaseURL = "postgres://example/tldr"
		boom := errors.New("connection refused")
		_, err := New(context.Background(), cfg, WithDBOpener(func(context.Context, string) (*sql.DB, error) {
			return nil, boom
		}))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("migration failure closes the connection", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		mock.ExpectExec("CREATE TABLE").WillReturnError(sql.ErrConnDone)
		mock.ExpectClose()

		cfg := echoConfig()
		cfg.Preference.Store = config.StorePostgres
		cfg.Preference.DatabaseURL = "postgres://example/tldr"
		_, err = New(context.Background(), cfg, WithDBOpener(func(context.Context, string) (*sql.DB, error) {
			return conn, nil
		}))
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid fetch limits", func(t *testing.T) {
		cfg := echoConfig()
		cfg.Fetch.MaxBodyBytes = 1
		_, err := New(context.Background(), cfg)
		assert.ErrorContains(t, err, "fetch")
	})
}

func TestRegistryOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.Order = []string{"openai", "anthropic"}
	cfg.Providers.Timeout = 45 * time.Second
	cfg.Providers.RequestsPerSecond = 1.5
	cfg.Providers.Settings = map[string]config.ProviderConfig{
		"anthropic": {
			DisplayName: "Claude",
			Timeout:     90 * time.Second,
			Catalog:     []config.CatalogModel{{Slug: "claude-haiku-4-5"}},
		},
	}

	opts := RegistryOptions(&cfg, nil)

	assert.Equal(t, []entity.ProviderSlug{"openai", "anthropic"}, opts.Order)
	assert.Nil(t, opts.Credentials)

	openai := opts.Providers["openai"]
	assert.Equal(t, 45*time.Second, openai.Timeout)
	assert.InDelta(t, 1.5, openai.RequestsPerSecond, 1e-9)

	anthropic := opts.Providers["anthropic"]
	assert.Equal(t, "Claude", anthropic.DisplayName)
	assert.Equal(t, 90*time.Second, anthropic.Timeout)
	require.Len(t, anthropic.Catalog, 1)
	assert.Equal(t, "claude-haiku-4-5", anthropic.Catalog[0].DisplayName)
}
