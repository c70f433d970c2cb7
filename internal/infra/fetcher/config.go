package fetcher

import (
	"fmt"
	"time"
)

// Config controls article fetching for summaries requested by URL.
type Config struct {
	// Timeout bounds a single page fetch. Default: 10s.
	Timeout time.Duration
	// MaxBodySize rejects larger pages. Default: 5 MiB.
	MaxBodySize int64
	// MaxRedirects bounds the redirect chain; each hop is validated. Default: 5.
	MaxRedirects int
	// DenyPrivateIPs rejects hosts resolving to internal addresses. Default: true.
	DenyPrivateIPs bool
	// UserAgent identifies the fetcher to publishers.
	UserAgent string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    5 << 20,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "TLDRSummaryBot/1.0",
	}
}

// Validate rejects configurations that would disable the safety limits.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	const minBody, maxBody = int64(1 << 10), int64(100 << 20)
	if c.MaxBodySize < minBody || c.MaxBodySize > maxBody {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBody, maxBody, c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}
