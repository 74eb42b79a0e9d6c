package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter()
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("k", 2, time.Minute) || !limiter.Allow("k", 2, time.Minute) {
		t.Fatal("expected first two requests to pass")
	}
	if limiter.Allow("k", 2, time.Minute) {
		t.Fatal("expected third request to be limited")
	}
	if !limiter.Allow("other", 2, time.Minute) {
		t.Fatal("keys must not share a bucket")
	}
	now = now.Add(time.Minute + time.Second)
	if !limiter.Allow("k", 2, time.Minute) {
		t.Fatal("expected a new window to reset the count")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimit(NewRateLimiter(), WriteKey(false), 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}
	if code := send(); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	handler := RateLimit(nil, WriteKey(false), 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	if got := ClientIP(req, true); got != "10.0.0.2" {
		t.Fatalf("expected remote host, got %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(req, true); got != "203.0.113.7" {
		t.Fatalf("expected first forwarded address behind a proxy, got %q", got)
	}
	if got := ClientIP(req, false); got != "10.0.0.2" {
		t.Fatalf("forwarded header must be ignored without a proxy, got %q", got)
	}
}

func TestWriteKeyIgnoresRotatedForwardedHeader(t *testing.T) {
	handler := RateLimit(NewRateLimiter(), WriteKey(false), 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	codes := make([]int, 0, 2)
	for _, forwarded := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.RemoteAddr = "10.0.0.3:4444"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("rotating X-Forwarded-For must not reset the limit, got %v", codes)
	}
}

func TestRateLimiterSweepsExpiredBuckets(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter()
	limiter.now = func() time.Time { return now }

	for _, key := range []string{"a", "b", "c"} {
		limiter.Allow(key, 1, time.Minute)
	}
	if got := len(limiter.buckets); got != 3 {
		t.Fatalf("expected 3 buckets, got %d", got)
	}
	now = now.Add(2 * time.Minute)
	limiter.Allow("d", 1, time.Minute)
	if got := len(limiter.buckets); got != 1 {
		t.Fatalf("expected expired buckets to be dropped, got %d", got)
	}
}

func TestRedisLimiterNilClientAllows(t *testing.T) {
	if limiter := NewRedisLimiter(nil, "jobly"); limiter != nil {
		t.Fatal("expected nil limiter without a client")
	}
	var limiter *RedisLimiter
	if !limiter.Allow("k", 1, time.Minute) {
		t.Fatal("nil limiter must allow")
	}
}
