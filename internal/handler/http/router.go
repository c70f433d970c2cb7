package http

import (
	"log/slog"
	"net/http"

	"tldr-summary/internal/handler/http/auth"
	"tldr-summary/internal/handler/http/middleware"
	"tldr-summary/internal/handler/http/requestid"
	"tldr-summary/internal/handler/http/summary"
	"tldr-summary/internal/observability/tracing"
)

// DefaultMaxBodyBytes bounds request bodies when RouterConfig leaves it unset.
const DefaultMaxBodyBytes int64 = 1 << 20

// RouterConfig holds everything NewRouter mounts.
type RouterConfig struct {
	Service   summary.Service
	Providers ProviderChecker
	Store     Pinger
	Limiter   *middleware.RateLimiter
	JWTSecret []byte
	Logger    *slog.Logger
	Version   string

	MaxBodyBytes int64
}

// NewRouter builds the API handler with its middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	limit := summary.Middleware(func(h http.Handler) http.Handler { return h })
	if cfg.Limiter != nil && cfg.Limiter.Enabled() {
		limit = cfg.Limiter.Middleware
	}

	mux := http.NewServeMux()
	summary.Register(mux, cfg.Service, limit, auth.RequireRole(cfg.JWTSecret, auth.RoleAdmin))

	mux.Handle("GET /health", &HealthHandler{Providers: cfg.Providers, Store: cfg.Store, Version: cfg.Version})
	mux.Handle("GET /ready", &ReadyHandler{Providers: cfg.Providers})
	mux.Handle("GET /live", &LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())

	return Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		Logging(logger),
		Recover(logger),
		SecurityHeaders,
		LimitRequestBody(maxBody),
		MetricsMiddleware,
		auth.Identify(cfg.JWTSecret),
	)
}
