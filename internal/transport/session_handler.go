package transport

import (
	"net/http"

	"list-market/internal/domain"
	"list-market/internal/middleware"
	"list-market/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload. Credentials are
// only checked for presence; see the session package.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response.
type LoginResponse struct {
	Token   string         `json:"token"`
	Session domain.Session `json:"session"`
}

// SessionHandler handles HTTP requests for the session gate.
type SessionHandler struct {
	sessions session.Service
	logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions session.Service, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// RegisterRoutes registers all session routes.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/session", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/", h.Current)
	})
}

// Login handles the mock sign-in.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, sess, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == session.ErrEmptyCredentials {
			middleware.RespondWithError(w, http.StatusBadRequest, "email and password are required")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("User logged in", zap.String("email", sess.Email))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token, Session: *sess})
}

// Logout flips the session gate off.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	h.logger.Info("User logged out")
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Current returns the session state rebuilt from its persisted mirror.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Current(r.Context())
	if err != nil {
		h.logger.Error("Failed to read session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read session")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sess)
}
