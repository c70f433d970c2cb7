package summary

import (
	"net/http"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Register mounts the summary API on mux. limit guards the public summary
// route and admin guards everything else.
func Register(mux *http.ServeMux, svc Service, limit, admin Middleware) {
	mux.Handle("POST /v1/summaries", limit(CreateHandler{svc}))

	mux.Handle("GET /v1/platforms", admin(PlatformsHandler{svc}))
	mux.Handle("GET /v1/platforms/{slug}/models", admin(ModelsHandler{svc}))
	mux.Handle("GET /v1/selection", admin(SelectionHandler{svc}))
	mux.Handle("POST /v1/connection-test", admin(ConnectionTestHandler{svc}))
}
