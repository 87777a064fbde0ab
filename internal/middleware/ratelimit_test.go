package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		if !rl.Allow("key") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("key") {
		t.Error("6th request should be denied")
	}
	if !rl.Allow("other") {
		t.Error("other key should have its own window")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	now := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		rl.Allow("key")
	}
	if rl.Allow("key") {
		t.Error("should be blocked within window")
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("key") {
		t.Error("should be allowed after window resets")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("expired")
	now = now.Add(2 * time.Minute)
	rl.Allow("fresh")
	rl.Cleanup()

	if _, ok := rl.windows["expired"]; ok {
		t.Error("expired window should be removed")
	}
	if _, ok := rl.windows["fresh"]; !ok {
		t.Error("fresh window should be kept")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !rl.Allow("key") {
			t.Fatal("disabled limiter denied a request")
		}
	}
}

func TestLimitWrites(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	h := LimitWrites(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(method string) int {
		r := httptest.NewRequest(method, "/api/containers", nil)
		r.RemoteAddr = "192.168.1.10:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	if got := do("POST"); got != http.StatusNoContent {
		t.Errorf("first write = %d, want 204", got)
	}
	if got := do("POST"); got != http.StatusTooManyRequests {
		t.Errorf("second write = %d, want 429", got)
	}
	if got := do("GET"); got != http.StatusNoContent {
		t.Errorf("read = %d, want 204", got)
	}
}
