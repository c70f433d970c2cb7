package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"tldr-summary/internal/handler/http/auth"
	"tldr-summary/internal/handler/http/respond"
	"tldr-summary/internal/observability/metrics"
)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window limiter. A window opens on a client's first
// request and allows limit requests until it expires. Authenticated callers
// are keyed by token subject, everyone else by client IP.
type RateLimiter struct {
	limit       int
	window      time.Duration
	ipExtractor IPExtractor
	now         func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewRateLimiter creates a limiter allowing limit requests per windowSize.
// A non-positive limit disables limiting.
func NewRateLimiter(limit int, windowSize time.Duration, ipExtractor IPExtractor) *RateLimiter {
	if ipExtractor == nil {
		ipExtractor = RemoteAddrExtractor{}
	}
	return &RateLimiter{
		limit:       limit,
		window:      windowSize,
		ipExtractor: ipExtractor,
		now:         time.Now,
		windows:     make(map[string]*window),
	}
}

// Enabled reports whether the limiter restricts anything.
func (rl *RateLimiter) Enabled() bool {
	return rl.limit > 0 && rl.window > 0
}

// Allow records one request for key and reports whether it is within the
// limit, how many remain, and when the window resets.
func (rl *RateLimiter) Allow(key string) (ok bool, remaining int, resetAt time.Time) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, exists := rl.windows[key]
	if !exists || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(rl.window)}
		rl.windows[key] = w
	}
	if w.count >= rl.limit {
		return false, 0, w.resetAt
	}
	w.count++
	return true, rl.limit - w.count, w.resetAt
}

// Middleware enforces the limit and sets X-RateLimit-* headers.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, err := rl.key(r)
		if err != nil {
			slog.WarnContext(r.Context(), "rate limiter: client identification failed",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("error", err.Error()))
			respond.Error(w, r, http.StatusBadRequest, "invalid_request", "client address could not be determined")
			return
		}

		ok, remaining, resetAt := rl.Allow(key)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
		if !ok {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			metrics.RecordRateLimited(r.URL.Path)
			slog.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("key", key),
				slog.String("path", r.URL.Path),
				slog.Int("limit", rl.limit),
				slog.Duration("window", rl.window))
			respond.Error(w, r, http.StatusTooManyRequests, "rate_limited", "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) key(r *http.Request) (string, error) {
	if sub := auth.SubjectFromContext(r.Context()); sub != "" {
		return "user:" + sub, nil
	}
	ip, err := rl.ipExtractor.ExtractIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + ip, nil
}

// CleanupExpired drops windows that have already reset.
func (rl *RateLimiter) CleanupExpired() int {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
			removed++
		}
	}
	return removed
}

// StartCleanup runs CleanupExpired every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	if !rl.Enabled() || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			removed := rl.CleanupExpired()
			slog.Debug("rate limit cleanup completed", slog.Int("windows_removed", removed))
		}
	}
}
