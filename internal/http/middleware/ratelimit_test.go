package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterEnforcesWindow(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("k", 3, time.Minute) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("k", 3, time.Minute) {
		t.Fatal("fourth request in the window should be denied")
	}
	if !limiter.Allow("other", 3, time.Minute) {
		t.Fatal("a different key must have its own bucket")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	limiter := NewRateLimiter()
	handler := RateLimit(limiter, ClientIP, 2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.RemoteAddr = "10.0.0.1:4000"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.RemoteAddr = "10.0.0.2:4000"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("a different client must not be throttled, got %d", rec.Code)
	}
}

func TestRateLimitMiddlewarePassesWithoutLimiter(t *testing.T) {
	handler := RateLimit(nil, ClientIP, 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected pass-through without a limiter, got %d", rec.Code)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5123"
	if got := ClientIP(req); got != "192.0.2.7" {
		t.Fatalf("expected 192.0.2.7, got %s", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected forwarded address, got %s", got)
	}
}
