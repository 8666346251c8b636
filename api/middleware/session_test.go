package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionMintsIDWhenHeaderAbsent(t *testing.T) {
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if captured == "" {
		t.Fatal("expected a minted session id on the context")
	}
	if echoed := rec.Header().Get(SessionIDHeader); echoed != captured {
		t.Fatalf("expected header %q to echo %q", echoed, captured)
	}
}

func TestSessionReusesProvidedID(t *testing.T) {
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionIDHeader, "existing-session")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured != "existing-session" {
		t.Fatalf("expected existing session id, got %q", captured)
	}
	if echoed := rec.Header().Get(SessionIDHeader); echoed != "existing-session" {
		t.Fatalf("expected header to echo existing id, got %q", echoed)
	}
}

func TestSessionIDFromContextOutsideMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := SessionIDFromContext(req.Context()); got != "" {
		t.Fatalf("expected empty session id, got %q", got)
	}
}
