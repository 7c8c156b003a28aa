// Package ratelimit implements an in-process sliding-window rate limiter
// keyed by client identifier. State is intentionally process-local: limiter
// counters are not persisted or shared across instances.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

const (
	// DefaultStandardLimit is the request ceiling for general API endpoints
	DefaultStandardLimit = 100
	// DefaultStandardWindow is the window length for general API endpoints
	DefaultStandardWindow = 15 * time.Minute
	// DefaultStrictLimit is the request ceiling for sensitive endpoints
	DefaultStrictLimit = 20
	// DefaultStrictWindow is the window length for sensitive endpoints
	DefaultStrictWindow = 15 * time.Minute
)

// Decision is the outcome of a single admit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfterSeconds returns the whole-second wait hint for a rejected
// request, rounded up so callers never retry early.
func (d Decision) RetryAfterSeconds(now time.Time) int {
	if !now.Before(d.ResetAt) {
		return 0
	}
	return int(math.Ceil(d.ResetAt.Sub(now).Seconds()))
}

// clientWindow tracks admitted requests for one client in the current window.
type clientWindow struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-configuration sliding-window limiter. Limit and window
// are set at construction per endpoint class and never change at runtime.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

// New creates a limiter admitting up to limit requests per window per client.
// A limit of 0 rejects every request.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
}

// NewStandard creates a limiter with the general-API preset.
func NewStandard() *Limiter {
	return New(DefaultStandardLimit, DefaultStandardWindow)
}

// NewStrict creates a limiter with the strict preset for sensitive endpoints.
func NewStrict() *Limiter {
	return New(DefaultStrictLimit, DefaultStrictWindow)
}

// Admit records one request attempt from clientID at time now and decides
// whether it may proceed. The attempt is counted before the ceiling check,
// so the record behind a rejection still reflects the attempted count.
// Admit never fails; a rejection is an ordinary Decision.
func (l *Limiter) Admit(clientID string, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	cw, ok := l.clients[clientID]
	if !ok || now.After(cw.resetAt) {
		// Fresh window: the previous record (if any) is replaced wholesale.
		cw = &clientWindow{resetAt: now.Add(l.window)}
		l.clients[clientID] = cw
	}

	cw.count++

	remaining := l.limit - cw.count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   cw.count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   cw.resetAt,
	}
}

// Limit returns the configured request ceiling.
func (l *Limiter) Limit() int {
	return l.limit
}

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}
