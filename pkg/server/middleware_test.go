// Copyright 2025 Hydrostack Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func testServer() *Server {
	cfg := NewConfig()
	return &Server{
		config:      cfg,
		rateLimiter: rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),
	}
}

func TestRequestIDMiddleware_GeneratesNewID(t *testing.T) {
	s := testServer()

	var capturedRequestID string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		capturedRequestID = r.Context().Value(contextKeyRequestID).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if capturedRequestID == "" {
		t.Error("expected request ID to be generated")
	}
	if _, err := uuid.Parse(capturedRequestID); err != nil {
		t.Errorf("expected valid UUID, got %q", capturedRequestID)
	}
	if got := rec.Header().Get("X-Request-Id"); got != capturedRequestID {
		t.Errorf("expected response header %q, got %q", capturedRequestID, got)
	}
}

func TestRequestIDMiddleware_PreservesValidID(t *testing.T) {
	s := testServer()

	want := uuid.New().String()
	var captured string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context().Value(contextKeyRequestID).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", want)
	handler(httptest.NewRecorder(), req)

	if captured != want {
		t.Errorf("expected request ID %q to be preserved, got %q", want, captured)
	}
}

func TestRequestIDMiddleware_ReplacesInvalidID(t *testing.T) {
	s := testServer()

	var captured string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Context().Value(contextKeyRequestID).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	handler(httptest.NewRecorder(), req)

	if captured == "not-a-uuid" {
		t.Error("expected invalid request ID to be replaced")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("expected valid UUID, got %q", captured)
	}
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	s := testServer()
	s.rateLimiter = rate.NewLimiter(1, 1)

	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on rejection")
	}
}

func TestRateLimitMiddleware_SetsHeaders(t *testing.T) {
	s := testServer()

	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("expected %s header to be set", h)
		}
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := testServer()

	handler := s.panicRecoveryMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("handler blew up")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
}

func TestResponseWriter_DuplicateWriteHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)

	if rw.Status() != http.StatusTeapot {
		t.Errorf("expected first status to win, got %d", rw.Status())
	}
}

func TestResponseWriter_WriteDefaultsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	if _, err := rw.Write([]byte("ok")); err != nil {
		t.Fatal(err)
	}
	if rw.Status() != http.StatusOK {
		t.Errorf("expected implicit 200, got %d", rw.Status())
	}
}
