// Package request contains helpers for extracting metadata from inbound
// HTTP requests.
package request

import (
	"net"
	"net/http"
	"strings"
)

// UnknownClient is the rate-limit key used when no client address can be
// derived from a request. Requests are never rejected just for missing
// identity; they share the sentinel bucket instead.
const UnknownClient = "unknown"

// ClientIP extracts the client IP from the request, respecting
// X-Forwarded-For and X-Real-IP set by proxies and load balancers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry of a comma-separated list is the original client
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if r.RemoteAddr == "" {
		return UnknownClient
	}
	// RemoteAddr is host:port for real connections; strip the port so the
	// same client is not split across rate-limit buckets.
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
