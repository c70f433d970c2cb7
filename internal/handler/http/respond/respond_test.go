package respond

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tldr-summary/internal/handler/http/requestid"
	"tldr-summary/internal/observability/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusOK, map[string]string{"summary": "<p>hi</p>"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"summary":"<p>hi</p>"}`, rec.Body.String())
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/summaries", nil)
	req = req.WithContext(requestid.WithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	Error(rec, req, http.StatusServiceUnavailable, "no_provider", "no AI provider is configured")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorBody{Error: "no_provider", Message: "no AI provider is configured", RequestID: "req-1"}, body)
}

func TestInternal_MasksSecretsInLog(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	req := httptest.NewRequest(http.MethodGet, "/v1/platforms", nil)
	req = req.WithContext(logging.WithLogger(context.Background(), logger))
	rec := httptest.NewRecorder()

	Internal(rec, req, errors.New("auth failed for sk-ant-secret-key"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal","message":"internal server error"}`, rec.Body.String())
	assert.NotContains(t, logs.String(), "secret-key")
	assert.Contains(t, logs.String(), "sk-ant-****")
}
