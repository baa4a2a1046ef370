package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RealIP extracts the client IP, preferring the first hop of
// X-Forwarded-For and falling back to RemoteAddr.
func RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type window struct {
	startedAt time.Time
	hits      int
}

// RateLimiter counts hits per key in fixed windows, in memory. It guards
// the credential endpoints against brute force; state is lost on restart,
// which is acceptable for that purpose.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]window
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string]window)}
}

// Allow records a hit for key and reports whether it stayed within limit
// for the current window.
func (rl *RateLimiter) Allow(key string, limit int, size time.Duration) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w := rl.windows[key]
	if now.Sub(w.startedAt) >= size {
		w = window{startedAt: now}
	}
	w.hits++
	rl.windows[key] = w
	return w.hits <= limit
}

// Cleanup drops windows older than maxAge. Called periodically so the
// map does not grow with every client ever seen.
func (rl *RateLimiter) Cleanup(maxAge time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for key, w := range rl.windows {
		if w.startedAt.Before(cutoff) {
			delete(rl.windows, key)
		}
	}
}

// RateLimit wraps next, rejecting requests over limit per window with a
// 429. Keys come from keyFunc, typically RealIP.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string, limit int, size time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(keyFunc(r), limit, size) {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
