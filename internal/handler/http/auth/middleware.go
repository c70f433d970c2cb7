package auth

import (
	"context"
	"log/slog"
	"net/http"

	"tldr-summary/internal/handler/http/respond"
	"tldr-summary/internal/observability/logging"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// ClaimsFromContext returns the verified claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxClaims).(*Claims)
	return c, ok
}

// SubjectFromContext returns the verified token subject or "".
func SubjectFromContext(ctx context.Context) string {
	if c, ok := ClaimsFromContext(ctx); ok {
		return c.Subject
	}
	return ""
}

// RequireRole rejects requests without a valid token carrying role.
func RequireRole(secret []byte, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ParseBearer(r.Header.Get("Authorization"), secret)
			if err != nil {
				logging.FromContext(r.Context()).InfoContext(r.Context(), "authentication failed",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()))
				w.Header().Set("WWW-Authenticate", `Bearer realm="tldr-summary"`)
				respond.Error(w, r, http.StatusUnauthorized, "unauthorized", "a valid bearer token is required")
				return
			}
			if claims.Role != role {
				respond.Error(w, r, http.StatusForbidden, "forbidden", role+" role required")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxClaims, claims)))
		})
	}
}

// Identify attaches the claims of a valid token to the context and lets
// every request through. The summary rate limiter keys on the subject.
func Identify(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h := r.Header.Get("Authorization"); h != "" && len(secret) > 0 {
				if claims, err := ParseBearer(h, secret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), ctxClaims, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
