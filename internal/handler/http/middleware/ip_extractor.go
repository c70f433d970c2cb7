// Package middleware provides the client identification and rate limiting
// used on the public summary route.
package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor extracts the client IP address from a request.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address. It cannot be spoofed and is
// the right choice when the service is not behind a proxy.
type RemoteAddrExtractor struct{}

// ExtractIP implements IPExtractor.
func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// ParseTrustedProxies parses IPs and CIDR ranges. Single IPs become /32 or /128.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(e); err == nil {
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: must be an IP address or CIDR range", e)
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// TrustedProxyExtractor reads X-Forwarded-For only when the peer is a trusted
// proxy. It walks the header from the right and returns the first hop that is
// not itself a trusted proxy.
type TrustedProxyExtractor struct {
	trusted []netip.Prefix
}

// NewTrustedProxyExtractor creates an extractor trusting the given ranges.
func NewTrustedProxyExtractor(trusted []netip.Prefix) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{trusted: trusted}
}

// ExtractIP implements IPExtractor.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	peer, err := extractIPFromAddr(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if !e.isTrusted(peer) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Debug("ignoring X-Forwarded-For from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr))
		}
		return peer, nil
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			break
		}
		if !e.isTrusted(addr.String()) {
			return addr.String(), nil
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if addr, err := netip.ParseAddr(xri); err == nil {
			return addr.String(), nil
		}
	}
	return peer, nil
}

func (e *TrustedProxyExtractor) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range e.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// extractIPFromAddr strips the port from "host:port"; bare IPs pass through.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(strings.Trim(addr, "[]")); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}
