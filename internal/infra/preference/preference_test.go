package preference

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/repository"
)

func TestEnvStore(t *testing.T) {
	t.Setenv(EnvPlatform, "  OpenAI ")
	t.Setenv(EnvModel, " gpt-4o-mini ")

	var store EnvStore
	pref, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Preference{Provider: "openai", Model: "gpt-4o-mini"}, pref)

	t.Setenv(EnvPlatform, "")
	t.Setenv(EnvModel, "")
	pref, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, pref.IsEmpty())

	assert.ErrorIs(t, store.Save(context.Background(), pref), ErrReadOnly)
}

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.yaml"))

	pref, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, pref.IsEmpty())
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preference.yaml")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.Preference{Provider: "anthropic", Model: "claude-test"}))

	pref, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Preference{Provider: "anthropic", Model: "claude-test"}, pref)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "selected_ai_platform: anthropic")
}

func TestFileStore_ReadsEditsWithoutRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preference.yaml")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(path, []byte("selected_ai_platform: openai\n"), 0o600))
	pref, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderSlug("openai"), pref.Provider)
	assert.Empty(t, pref.Model)

	require.NoError(t, os.WriteFile(path, []byte("selected_ai_platform: echo\nselected_ai_model: echo-1\n"), 0o600))
	pref, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Preference{Provider: "echo", Model: "echo-1"}, pref)
}

func TestFileStore_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preference.yaml")
	require.NoError(t, os.WriteFile(path, []byte("selected_ai_platform: [unclosed\n"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorContains(t, err, "parse preference file")
}

type fakeSettings struct {
	values  map[string]string
	getErr  error
	setErr  error
	pingErr error
}

func (f *fakeSettings) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make(map[string]string)
	for _, k := range keys {
		if v, ok := f.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (f *fakeSettings) Set(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if value == "" {
		delete(f.values, key)
		return nil
	}
	f.values[key] = value
	return nil
}

func (f *fakeSettings) Ping(context.Context) error { return f.pingErr }

func TestDBStore_Load(t *testing.T) {
	repo := &fakeSettings{values: map[string]string{
		repository.KeySelectedPlatform: "Anthropic",
		repository.KeySelectedModel:    "claude-test",
		"unrelated":                    "x",
	}}

	pref, err := NewDBStore(repo).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Preference{Provider: "anthropic", Model: "claude-test"}, pref)
}

func TestDBStore_LoadError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := NewDBStore(&fakeSettings{getErr: boom}).Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestDBStore_Save(t *testing.T) {
	repo := &fakeSettings{values: map[string]string{repository.KeySelectedModel: "old-model"}}
	store := NewDBStore(repo)

	require.NoError(t, store.Save(context.Background(), entity.Preference{Provider: "openai"}))
	assert.Equal(t, map[string]string{repository.KeySelectedPlatform: "openai"}, repo.values)
}

func TestDBStore_Ping(t *testing.T) {
	boom := errors.New("down")
	assert.ErrorIs(t, NewDBStore(&fakeSettings{pingErr: boom}).Ping(context.Background()), boom)
}
