package handler

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SecurityHeaders adds response headers that are safe for a static site
// with same-origin forms.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// RateLimiter limits form submissions per client IP using a one-minute
// sliding window.
type RateLimiter struct {
	maxPerMinute      int
	trustedProxyCount int
	mu                sync.Mutex
	clients           map[string][]time.Time
	now               func() time.Time
}

// NewRateLimiter creates a rate limiter allowing maxPerMinute requests per IP.
// trustedProxyCount is the number of reverse proxies that append to
// X-Forwarded-For; 0 means the header is ignored.
func NewRateLimiter(maxPerMinute, trustedProxyCount int) *RateLimiter {
	return &RateLimiter{
		maxPerMinute:      maxPerMinute,
		trustedProxyCount: trustedProxyCount,
		clients:           make(map[string][]time.Time),
		now:               time.Now,
	}
}

// Run prunes idle clients every interval until done is closed.
func (rl *RateLimiter) Run(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			rl.prune()
		}
	}
}

func (rl *RateLimiter) prune() {
	windowStart := rl.now().Add(-time.Minute)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, stamps := range rl.clients {
		stamps = trimBefore(stamps, windowStart)
		if len(stamps) == 0 {
			delete(rl.clients, ip)
			continue
		}
		rl.clients[ip] = stamps
	}
}

// Middleware returns an http.Handler that enforces the limit.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		now := rl.now()

		rl.mu.Lock()
		stamps := trimBefore(rl.clients[ip], now.Add(-time.Minute))
		if len(stamps) >= rl.maxPerMinute {
			retryAfter := stamps[0].Add(time.Minute).Sub(now)
			rl.clients[ip] = stamps
			rl.mu.Unlock()

			w.Header().Set("Retry-After", retryAfterSeconds(retryAfter))
			writeMessage(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		rl.clients[ip] = append(stamps, now)
		rl.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// trimBefore drops timestamps not after start, filtering in place.
func trimBefore(stamps []time.Time, start time.Time) []time.Time {
	valid := stamps[:0]
	for _, ts := range stamps {
		if ts.After(start) {
			valid = append(valid, ts)
		}
	}
	return valid
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientIP reads the entry our trusted proxies appended to X-Forwarded-For,
// falling back to the connection address.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && rl.trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		idx := len(parts) - rl.trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
