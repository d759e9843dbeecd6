package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-ID")
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen == "" {
		t.Error("Expected a generated request id on the request")
	}
	if rr.Header().Get("X-Request-ID") != seen {
		t.Errorf("Expected response header %q to match request id %q", rr.Header().Get("X-Request-ID"), seen)
	}
}

func TestRequestID_PreservesClientID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-ID")
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != "client-supplied" {
		t.Errorf("Expected client id preserved, got %q", seen)
	}
	if rr.Header().Get("X-Request-ID") != "client-supplied" {
		t.Errorf("Expected client id echoed, got %q", rr.Header().Get("X-Request-ID"))
	}
}
