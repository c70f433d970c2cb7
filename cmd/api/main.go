// Command api serves the TL;DR summary HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tldr-summary/internal/app"
	"tldr-summary/internal/config"
	hhttp "tldr-summary/internal/handler/http"
	hauth "tldr-summary/internal/handler/http/auth"
	"tldr-summary/internal/handler/http/middleware"
	"tldr-summary/internal/observability/logging"
	"tldr-summary/internal/observability/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)
	validateJWTSecret(logger, cfg)

	shutdownTracing := tracing.InstallProvider(cfg.Server.TraceSampleRatio)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to stop tracer provider", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize application", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("failed to close application", slog.Any("error", err))
		}
	}()

	limiter := newRateLimiter(logger, cfg)
	go limiter.StartCleanup(ctx, cfg.RateLimit.Window)

	version := getVersion()
	handler := hhttp.NewRouter(hhttp.RouterConfig{
		Service:      application.Service,
		Providers:    application.Registry,
		Store:        application.StorePinger(),
		Limiter:      limiter,
		JWTSecret:    []byte(cfg.Server.JWTSecret),
		Logger:       logger,
		Version:      version,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	runServer(ctx, cancel, logger, cfg, handler, version)
}

// initLogger installs the JSON logger as the process default.
func initLogger(cfg *config.Config) *slog.Logger {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Log.Level))
	slog.SetDefault(logger)
	return logger
}

// validateJWTSecret stops startup when the admin routes would be guarded by a weak secret.
func validateJWTSecret(logger *slog.Logger, cfg *config.Config) {
	if err := hauth.ValidateSecret([]byte(cfg.Server.JWTSecret)); err != nil {
		logger.Error("JWT secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// newRateLimiter builds the summary limiter. Forwarded client addresses are
// trusted only from the configured proxies.
func newRateLimiter(logger *slog.Logger, cfg *config.Config) *middleware.RateLimiter {
	var extractor middleware.IPExtractor = middleware.RemoteAddrExtractor{}
	if len(cfg.Server.TrustedProxies) > 0 {
		prefixes, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
		if err != nil {
			logger.Error("invalid TLDR_TRUSTED_PROXIES", slog.Any("error", err))
			os.Exit(1)
		}
		extractor = middleware.NewTrustedProxyExtractor(prefixes)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(prefixes)))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, extractor)
	if limiter.Enabled() {
		logger.Info("rate limiting initialized",
			slog.Int("limit", cfg.RateLimit.Requests),
			slog.Duration("window", cfg.RateLimit.Window))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}
	return limiter
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// runServer serves until SIGINT/SIGTERM, then shuts down gracefully.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, cfg *config.Config, handler http.Handler, version string) {
	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logger.Info("shutting down server...")
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
	}

	// BaseContext stays live until Shutdown returns.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
