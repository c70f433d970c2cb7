package fetcher

import (
	"context"
	"errors"
)

var (
	// ErrInvalidURL indicates a URL that is malformed or uses a scheme other than http/https.
	ErrInvalidURL = errors.New("invalid url")
	// ErrPrivateIP indicates a host resolving to a loopback, private or link-local address.
	ErrPrivateIP = errors.New("url resolves to a private address")
	// ErrTooManyRedirects indicates the redirect chain exceeded MaxRedirects.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrTimeout indicates the page did not arrive within Timeout.
	ErrTimeout = errors.New("content fetch timed out")
	// ErrBodyTooLarge indicates a response larger than MaxBodySize.
	ErrBodyTooLarge = errors.New("response body too large")
	// ErrUnexpectedStatus indicates a non-200 response.
	ErrUnexpectedStatus = errors.New("unexpected http status")
	// ErrNoReadableContent indicates readability found no article text.
	ErrNoReadableContent = errors.New("no readable content")
)

// isOutageError reports whether err says something about our ability to
// reach the web rather than about one page. Only these move the breaker.
func isOutageError(err error) bool {
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, ErrUnexpectedStatus),
		errors.Is(err, ErrNoReadableContent),
		errors.Is(err, ErrBodyTooLarge),
		errors.Is(err, ErrTooManyRedirects),
		errors.Is(err, ErrPrivateIP),
		errors.Is(err, ErrInvalidURL):
		return false
	}
	return true
}
