package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/handler/http/respond"
	sumUC "tldr-summary/internal/usecase/summary"
)

// Service is the part of the summary orchestrator the handlers use.
type Service interface {
	Summarize(ctx context.Context, req sumUC.SummarizeRequest) (*sumUC.Summary, error)
	ListAvailablePlatforms(ctx context.Context) []entity.Platform
	ListAvailableModels(ctx context.Context, slug entity.ProviderSlug) []entity.ModelDescriptor
	Preference(ctx context.Context) entity.Preference
	ResolveSelection(ctx context.Context) entity.EffectiveSelection
	TestConnection(ctx context.Context) sumUC.ConnectionResult
}

// CreateHandler generates a summary for the posted article.
type CreateHandler struct{ Svc Service }

// ServeHTTP handles POST /v1/summaries.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, r, http.StatusRequestEntityTooLarge, "invalid_request", "request body too large")
			return
		}
		respond.Error(w, r, http.StatusBadRequest, "invalid_request", "request body must be a JSON object with prompt, content or url")
		return
	}

	sum, err := h.Svc.Summarize(r.Context(), sumUC.SummarizeRequest{
		Instruction: req.Prompt,
		Content:     req.Content,
		URL:         strings.TrimSpace(req.URL),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toSummaryResponse(sum))
}

// PlatformsHandler lists the usable platforms.
type PlatformsHandler struct{ Svc Service }

// ServeHTTP handles GET /v1/platforms.
func (h PlatformsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, PlatformsResponse{Platforms: h.Svc.ListAvailablePlatforms(r.Context())})
}

// ModelsHandler lists the text-generation models of one platform.
type ModelsHandler struct{ Svc Service }

// ServeHTTP handles GET /v1/platforms/{slug}/models.
func (h ModelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := entity.ValidateSlug(slug); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, ModelsResponse{
		Platform: slug,
		Models:   h.Svc.ListAvailableModels(r.Context(), entity.ProviderSlug(slug)),
	})
}

// SelectionHandler shows the stored preference and the effective selection.
type SelectionHandler struct{ Svc Service }

// ServeHTTP handles GET /v1/selection.
func (h SelectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, SelectionResponse{
		Preference: h.Svc.Preference(r.Context()),
		Effective:  h.Svc.ResolveSelection(r.Context()),
	})
}

// ConnectionTestHandler sends the connection test prompt to the selected provider.
type ConnectionTestHandler struct{ Svc Service }

// ServeHTTP handles POST /v1/connection-test. A failed test is still a 200;
// the outcome is in the body.
func (h ConnectionTestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := h.Svc.TestConnection(r.Context())
	if !res.Success {
		res.Message = connectionMessage(res)
	}
	respond.JSON(w, http.StatusOK, res)
}

func connectionMessage(res sumUC.ConnectionResult) string {
	if m, ok := kindMappings[res.Kind]; ok {
		return m.message
	}
	return "Connection test failed."
}
