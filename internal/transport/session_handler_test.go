package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"list-market/internal/session"
	"list-market/internal/storage"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func newSessionHandler() (*SessionHandler, session.Service) {
	store := storage.NewMemoryStore()
	sessions := session.New(store, "test-secret", time.Hour)
	logger := zap.NewNop()
	return NewSessionHandler(sessions, logger), sessions
}

func TestProperty_InvalidLoginPayloadIsRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("login with invalid payload returns validation errors", prop.ForAll(
		func(invalidCase int) bool {
			handler, _ := newSessionHandler()

			var reqBody LoginRequest

			switch invalidCase % 3 {
			case 0:
				// Empty email
				reqBody = LoginRequest{Email: "", Password: "secret"}
			case 1:
				// Invalid email format
				reqBody = LoginRequest{Email: "not-an-email", Password: "secret"}
			case 2:
				// Missing password
				reqBody = LoginRequest{Email: "user@example.com", Password: ""}
			}

			body, _ := json.Marshal(reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/session/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Login(w, req)

			if w.Code != http.StatusBadRequest {
				t.Logf("FAIL: Expected 400 status code, got %d", w.Code)
				return false
			}

			var response map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Logf("FAIL: Could not decode error response: %v", err)
				return false
			}

			if _, exists := response["error"]; !exists {
				t.Logf("FAIL: Response missing 'error' field")
				return false
			}

			return true
		},
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLoginReturnsTokenAndSession(t *testing.T) {
	handler, _ := newSessionHandler()

	body, _ := json.Marshal(LoginRequest{Email: "anna@example.com", Password: "whatever"})
	req := httptest.NewRequest(http.MethodPost, "/api/session/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if !resp.Session.Authenticated {
		t.Error("expected an authenticated session")
	}
	if resp.Session.Email != "anna@example.com" {
		t.Errorf("expected email anna@example.com, got %q", resp.Session.Email)
	}
	if resp.Session.DisplayName != "Пользователь" {
		t.Errorf("expected default display name, got %q", resp.Session.DisplayName)
	}
}

func TestLogoutResetsSessionState(t *testing.T) {
	handler, sessions := newSessionHandler()

	if _, _, err := sessions.Login(context.Background(), "anna@example.com", "whatever"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	w := httptest.NewRecorder()
	handler.Logout(w, httptest.NewRequest(http.MethodPost, "/api/session/logout", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.Current(w, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var sess struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.NewDecoder(w.Body).Decode(&sess); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if sess.Authenticated {
		t.Error("expected an unauthenticated session after logout")
	}
}
