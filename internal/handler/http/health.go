package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"tldr-summary/internal/domain/entity"
	"tldr-summary/internal/handler/http/respond"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus reports one dependency.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ProviderChecker reports which providers are registered and usable.
type ProviderChecker interface {
	ListRegisteredProviders(ctx context.Context) []entity.ProviderSlug
	IsProviderUsable(ctx context.Context, slug entity.ProviderSlug) bool
}

// Pinger is satisfied by a preference store with a backing connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthHandler reports provider usability and, when configured, the
// preference store. The service is healthy when at least one provider is
// usable and the store answers.
type HealthHandler struct {
	Providers ProviderChecker
	Store     Pinger
	Version   string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	healthy := true

	providers := h.checkProviders(ctx)
	checks["providers"] = providers
	if providers.Status != statusHealthy {
		healthy = false
	}

	if h.Store != nil {
		store := CheckStatus{Status: statusHealthy}
		if err := h.Store.Ping(ctx); err != nil {
			store = CheckStatus{Status: statusUnhealthy, Message: respond.SanitizeError(err)}
			healthy = false
		}
		checks["preference_store"] = store
	}

	status, code := statusHealthy, http.StatusOK
	if !healthy {
		status, code = statusUnhealthy, http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkProviders(ctx context.Context) CheckStatus {
	if h.Providers == nil {
		return CheckStatus{Status: statusUnhealthy, Message: "not configured"}
	}

	usable := make([]string, 0)
	unusable := make([]string, 0)
	for _, slug := range h.Providers.ListRegisteredProviders(ctx) {
		if h.Providers.IsProviderUsable(ctx, slug) {
			usable = append(usable, slug.String())
		} else {
			unusable = append(unusable, slug.String())
		}
	}

	details := map[string]any{"usable": usable, "unusable": unusable}
	if len(usable) == 0 {
		return CheckStatus{Status: statusUnhealthy, Message: "no usable provider", Details: details}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

// ReadyHandler answers the readiness probe: ready once any provider is usable.
type ReadyHandler struct {
	Providers ProviderChecker
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Providers == nil {
		http.Error(w, "providers not configured", http.StatusServiceUnavailable)
		return
	}
	for _, slug := range h.Providers.ListRegisteredProviders(ctx) {
		if h.Providers.IsProviderUsable(ctx, slug) {
			writePlain(w, "ready")
			return
		}
	}
	http.Error(w, "no usable provider", http.StatusServiceUnavailable)
}

// LiveHandler answers the liveness probe.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writePlain(w, "alive")
}

func writePlain(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Warn("probe: failed to write response", slog.Any("error", err))
	}
}
