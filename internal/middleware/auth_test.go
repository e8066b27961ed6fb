package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"list-market/internal/session"
	"list-market/internal/storage"

	"go.uber.org/zap"
)

func newSessionsWithToken(t *testing.T) (session.Service, string) {
	t.Helper()

	sessions := session.New(storage.NewMemoryStore(), "test-secret", time.Hour)
	token, _, err := sessions.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return sessions, token
}

func protectedHandler(t *testing.T, sessions session.Service) http.Handler {
	t.Helper()

	return AuthMiddleware(sessions, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := GetUserEmail(r.Context())
		if !ok || email == "" {
			t.Error("email missing from context inside protected handler")
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	sessions, token := newSessionsWithToken(t)
	handler := protectedHandler(t, sessions)

	r := httptest.NewRequest(http.MethodPost, "/api/cart/items", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	sessions, _ := newSessionsWithToken(t)
	handler := protectedHandler(t, sessions)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/cart/items", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsBadFormat(t *testing.T) {
	sessions, token := newSessionsWithToken(t)
	handler := protectedHandler(t, sessions)

	for _, header := range []string{token, "Basic " + token, "Bearer"} {
		r := httptest.NewRequest(http.MethodPost, "/api/cart/items", nil)
		r.Header.Set("Authorization", header)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	sessions, _ := newSessionsWithToken(t)

	forger := session.New(storage.NewMemoryStore(), "other-secret", time.Hour)
	forged, _, err := forger.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	handler := protectedHandler(t, sessions)
	r := httptest.NewRequest(http.MethodPost, "/api/cart/items", nil)
	r.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for forged token", w.Code)
	}
}
