package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tldr-summary/internal/config"
	"tldr-summary/internal/handler/http/auth"
	"tldr-summary/internal/infra/preference"
)

const cliSecret = "cli-test-secret-with-enough-entropy-42"

type harness struct {
	cfg *config.Config
	in  string
	out bytes.Buffer
	err bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("TLDR_AI_PLATFORM", "")
	t.Setenv("TLDR_AI_MODEL", "")

	cfg := config.Default()
	cfg.Providers.Order = []string{"echo"}
	cfg.Providers.EnableEcho = true
	cfg.Server.JWTSecret = cliSecret
	return &harness{cfg: &cfg}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	return Execute(context.Background(), Options{
		In:         strings.NewReader(h.in),
		Out:        &h.out,
		Err:        &h.err,
		LoadConfig: func(string) (*config.Config, error) { return h.cfg, nil },
	}, args)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr string
	}{
		{
			name: "content from arguments",
			args: []string{"summarize", "Widgets", "ship", "early."},
			want: "<p>Widgets ship early.</p>",
		},
		{
			name:  "content from stdin",
			args:  []string{"summarize", "--file", "-"},
			stdin: "Gadgets are delayed.\n",
			want:  "<p>Gadgets are delayed.</p>",
		},
		{
			name:    "no content",
			args:    []string{"summarize"},
			wantErr: "invalid_request",
		},
		{
			name:    "empty stdin",
			args:    []string{"summarize", "-f", "-"},
			stdin:   "   ",
			wantErr: "input is empty",
		},
		{
			name:    "missing file",
			args:    []string{"summarize", "-f", "/does/not/exist.txt"},
			wantErr: "read article",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.in = tt.stdin
			err := h.run(tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, h.out.String(), tt.want)
		})
	}
}

func TestSummarize_JSON(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("summarize", "--json", "Short article."))

	var got struct {
		Summary  string `json:"summary"`
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, "echo", got.Provider)
	assert.Equal(t, "echo-1", got.Model)
	assert.Contains(t, got.Summary, "Short article.")
}

func TestPlatformsAndModels(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("platforms"))
	assert.Contains(t, h.out.String(), "SLUG")
	assert.Contains(t, h.out.String(), "echo")
	assert.Contains(t, h.out.String(), "Echo")

	require.NoError(t, h.run("models", "--json"))
	assert.Contains(t, h.out.String(), `"slug": "echo-1"`)

	require.NoError(t, h.run("models", "openai"))
	assert.Contains(t, h.out.String(), "No text-generation model is available.")

	err := h.run("models", "Open.AI")
	assert.Error(t, err)
}

func TestPlatforms_NoneAvailable(t *testing.T) {
	h := newHarness(t)
	h.cfg.Providers.EnableEcho = false

	require.NoError(t, h.run("platforms"))
	assert.Equal(t, "No AI platform is available.\n", h.out.String())
}

func TestSelection_EnvStoreIsReadOnly(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("selection"))
	assert.Contains(t, h.out.String(), "stored:    (none)")
	assert.Contains(t, h.out.String(), "effective: echo / echo-1")

	err := h.run("selection", "set", "echo")
	assert.ErrorIs(t, err, preference.ErrReadOnly)
}

func TestSelection_FileStore(t *testing.T) {
	h := newHarness(t)
	h.cfg.Preference.Store = config.StoreFile
	h.cfg.Preference.File = filepath.Join(t.TempDir(), "pref.yaml")

	require.NoError(t, h.run("selection", "set", "ECHO", "echo-1"))
	assert.Contains(t, h.out.String(), "effective: echo / echo-1")

	require.NoError(t, h.run("selection", "--json"))
	var view struct {
		Preference struct {
			Platform string `json:"selected_ai_platform"`
			Model    string `json:"selected_ai_model"`
		} `json:"preference"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &view))
	assert.Equal(t, "echo", view.Preference.Platform)
	assert.Equal(t, "echo-1", view.Preference.Model)

	require.NoError(t, h.run("selection", "clear"))
	require.NoError(t, h.run("selection"))
	assert.Contains(t, h.out.String(), "stored:    (none)")

	assert.Error(t, h.run("selection", "set", "bad slug!"))
}

func TestTestConnection(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("test-connection"))
	assert.Contains(t, h.out.String(), "Connection successful")

	h.cfg.Providers.EnableEcho = false
	err := h.run("test-connection", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_provider")
	assert.Contains(t, h.out.String(), `"success": false`)
}

func TestToken(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("token", "--subject", "ops@example.com"))

	claims, err := auth.ParseBearer("Bearer "+strings.TrimSpace(h.out.String()), []byte(cliSecret))
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	h.cfg.Server.JWTSecret = "short"
	assert.Error(t, h.run("token"))
}

func TestConfigErrorStopsCommand(t *testing.T) {
	boom := errors.New("bad config")
	var out bytes.Buffer
	err := Execute(context.Background(), Options{
		Out:        &out,
		Err:        &out,
		LoadConfig: func(string) (*config.Config, error) { return nil, boom },
	}, []string{"platforms"})
	assert.ErrorIs(t, err, boom)
}

func TestConfigFlagIsPassedToLoader(t *testing.T) {
	h := newHarness(t)
	var gotPath string
	err := Execute(context.Background(), Options{
		Out: &h.out,
		Err: &h.err,
		LoadConfig: func(path string) (*config.Config, error) {
			gotPath = path
			return h.cfg, nil
		},
	}, []string{"--config", "/etc/tldr.yaml", "platforms"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/tldr.yaml", gotPath)
}
