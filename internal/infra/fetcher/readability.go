// Package fetcher downloads an article page and extracts its readable text
// for summaries requested by URL.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"tldr-summary/internal/resilience/circuitbreaker"
)

// ReadabilityFetcher extracts article text with go-readability. It is safe
// for concurrent use.
type ReadabilityFetcher struct {
	client   *http.Client
	breaker  *circuitbreaker.CircuitBreaker
	resolver *net.Resolver
	config   Config
}

// NewReadabilityFetcher creates a fetcher. Every redirect target passes the
// same URL validation as the original request.
func NewReadabilityFetcher(config Config) *ReadabilityFetcher {
	f := &ReadabilityFetcher{
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Name:             "content-fetch",
			MaxRequests:      5,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			FailureThreshold: 0.6,
			MinRequests:      5,
			CountsAsFailure:  isOutageError,
		}),
		resolver: net.DefaultResolver,
		config:   config,
	}

	f.client = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.Context(), f.resolver, req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target rejected: %w", err)
			}
			return nil
		},
	}
	return f
}

// FetchContent implements summary.ContentFetcher.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(ctx, f.resolver, urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}
	return circuitbreaker.Run(f.breaker, func() (string, error) {
		return f.doFetch(ctx, urlStr)
	})
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return "", fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && (errors.Is(urlErr.Err, ErrTooManyRedirects) ||
			errors.Is(urlErr.Err, ErrPrivateIP) || errors.Is(urlErr.Err, ErrInvalidURL)) {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("fetch %s: %w", urlStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	pageURL := resp.Request.URL
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoReadableContent, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", ErrNoReadableContent
	}
	slog.DebugContext(ctx, "article content extracted",
		slog.String("url", pageURL.String()),
		slog.String("title", article.Title),
		slog.Int("length", len(text)))
	return text, nil
}
