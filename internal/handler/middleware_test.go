package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// --- SecurityHeaders ---

func TestSecurityHeaders_SetsAllHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(inner).ServeHTTP(rec, req)

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "SAMEORIGIN",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s: want %q, got %q", name, want, got)
		}
	}
}

func TestSecurityHeaders_PassesThrough(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(inner).ServeHTTP(rec, req)

	if !called {
		t.Error("inner handler was not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", rec.Code)
	}
}

// --- RateLimiter ---

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func postFrom(handler http.Handler, remoteAddr, xff string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/submit-contact", nil)
	req.RemoteAddr = remoteAddr
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	handler := NewRateLimiter(10, 0).Middleware(okHandler())

	for i := 0; i < 10; i++ {
		if rec := postFrom(handler, "192.168.1.1:12345", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	handler := NewRateLimiter(5, 0).Middleware(okHandler())

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = postFrom(handler, "192.168.1.1:12345", "")
	}

	if last.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 on 6th request, got %d", last.Code)
	}
	if ra := last.Header().Get("Retry-After"); ra == "" {
		t.Error("expected Retry-After header on 429 response")
	}
}

func TestRateLimiter_DifferentIPsAreIndependent(t *testing.T) {
	handler := NewRateLimiter(2, 0).Middleware(okHandler())

	for i := 0; i < 2; i++ {
		postFrom(handler, "10.0.0.1:1234", "")
	}

	if rec := postFrom(handler, "10.0.0.2:1234", ""); rec.Code != http.StatusOK {
		t.Errorf("different IP should not be rate limited, got %d", rec.Code)
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 0)
	rl.now = func() time.Time { return now }
	handler := rl.Middleware(okHandler())

	if rec := postFrom(handler, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := postFrom(handler, "10.0.0.1:1234", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}

	now = now.Add(61 * time.Second)
	if rec := postFrom(handler, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
		t.Errorf("after the window: expected 200, got %d", rec.Code)
	}
}

func TestRateLimiter_XForwardedFor_RightmostTrusted(t *testing.T) {
	handler := NewRateLimiter(1, 1).Middleware(okHandler())

	postFrom(handler, "10.0.0.99:1234", "203.0.113.50")

	// A spoofed leftmost entry must not bypass the limit.
	rec := postFrom(handler, "10.0.0.99:1234", "9.9.9.9, 203.0.113.50")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for same real client IP, got %d", rec.Code)
	}
}

func TestRateLimiter_XForwardedForIgnoredWithoutTrustedProxy(t *testing.T) {
	handler := NewRateLimiter(1, 0).Middleware(okHandler())

	postFrom(handler, "10.0.0.99:1234", "203.0.113.50")
	rec := postFrom(handler, "10.0.0.99:1234", "198.51.100.7")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected limit keyed on RemoteAddr, got %d", rec.Code)
	}
}

func TestRateLimiter_PruneDropsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, 0)
	rl.now = func() time.Time { return now }
	handler := rl.Middleware(okHandler())

	postFrom(handler, "10.0.0.1:1234", "")
	now = now.Add(2 * time.Minute)
	rl.prune()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.clients) != 0 {
		t.Errorf("expected idle client to be pruned, %d left", len(rl.clients))
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	if got := retryAfterSeconds(-time.Second); got != "1" {
		t.Errorf("expected minimum of 1, got %q", got)
	}
	if got := retryAfterSeconds(30 * time.Second); got != "31" {
		t.Errorf("expected 31, got %q", got)
	}
}
