package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubLimiterStore struct {
	counts map[string]int64
}

func (s *stubLimiterStore) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[scope]++
	return s.counts[scope] <= limit, s.counts[scope], nil
}

func TestAuthRateLimitBlocksAfterLimit(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
		req.RemoteAddr = "10.0.0.1:51234"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send(); code != http.StatusNoContent {
		t.Fatalf("first request blocked, got %d", code)
	}
	if code := send(); code != http.StatusNoContent {
		t.Fatalf("second request blocked, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited, got %d", code)
	}
	if _, ok := store.counts["login:ip:10.0.0.1"]; !ok {
		t.Fatalf("expected policy-scoped counter key, got %v", store.counts)
	}
}

func TestAuthRateLimitPerEmail(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	handler := AuthRateLimit(policy, store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(email string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"`+email+`"}`))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send("owner@alfa.com"); code != http.StatusNoContent {
		t.Fatalf("first attempt blocked, got %d", code)
	}
	if code := send("owner@alfa.com"); code != http.StatusTooManyRequests {
		t.Fatalf("second attempt should be limited, got %d", code)
	}
	// A different account is not affected.
	if code := send("other@alfa.com"); code != http.StatusNoContent {
		t.Fatalf("unrelated email blocked, got %d", code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	handler := AuthRateLimit(NewAuthRateLimitPolicy("login", 0, 0, 0), &stubLimiterStore{}, testLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("disabled policy must pass through, got %d", resp.Code)
	}
}
