package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(capacity int, window time.Duration, clock *time.Time) *RateLimiter {
	rl := NewRateLimiter(capacity, window)
	rl.now = func() time.Time { return *clock }
	return rl
}

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, time.Minute, &now)
	defer rl.Stop()

	if d := rl.Allow("a"); !d.Allowed || d.Remaining != 1 {
		t.Fatalf("first request: %+v", d)
	}
	if d := rl.Allow("a"); !d.Allowed || d.Remaining != 0 {
		t.Fatalf("second request: %+v", d)
	}

	now = now.Add(20 * time.Second)
	d := rl.Allow("a")
	if d.Allowed {
		t.Fatal("third request inside the window should be rejected")
	}
	if d.RetryAfter != 40*time.Second {
		t.Errorf("retry after = %v, want 40s", d.RetryAfter)
	}

	if d := rl.Allow("b"); !d.Allowed {
		t.Error("other clients keep their own bucket")
	}

	now = now.Add(40 * time.Second)
	if d := rl.Allow("a"); !d.Allowed || d.Remaining != 1 {
		t.Errorf("after the window: %+v", d)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, time.Minute, &now)
	defer rl.Stop()

	rl.Allow("idle")
	now = now.Add(2 * time.Hour)
	rl.Allow("active")
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.clients["idle"]; ok {
		t.Error("idle client should have been removed")
	}
	if _, ok := rl.clients["active"]; !ok {
		t.Error("active client should be kept")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/salary/options", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("remaining header = %q, want 0", got)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After header")
	}
}
