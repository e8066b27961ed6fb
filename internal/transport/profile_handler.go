package transport

import (
	"net/http"

	"list-market/internal/domain"
	"list-market/internal/middleware"
	"list-market/internal/profile"
	"list-market/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdateNameRequest represents the display-name change payload.
type UpdateNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// SetThemeRequest represents the theme preference payload.
type SetThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// ProfileHandler handles HTTP requests for the account page.
type ProfileHandler struct {
	profiles profile.Service
	sessions session.Service
	logger   *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles profile.Service, sessions session.Service, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, sessions: sessions, logger: logger}
}

// RegisterRoutes registers all profile routes.
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/profile", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.UpdateName)
		r.Get("/theme", h.GetTheme)
		r.Put("/theme", h.SetTheme)
		r.Get("/custom-theme", h.GetCustomTheme)
		r.Put("/custom-theme", h.SetCustomTheme)
		r.Delete("/custom-theme", h.ResetCustomTheme)
	})
}

// Get returns the profile view: the session mirror fields.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Current(r.Context())
	if err != nil {
		h.logger.Error("Failed to read session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sess)
}

// UpdateName changes the display name.
func (h *ProfileHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	var req UpdateNameRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.profiles.UpdateName(r.Context(), req.Name); err != nil {
		if err == profile.ErrEmptyName {
			middleware.RespondWithError(w, http.StatusBadRequest, "name must not be empty")
			return
		}
		h.logger.Error("Failed to update name", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update name")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"name": req.Name})
}

// GetTheme returns the light/dark preference.
func (h *ProfileHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.profiles.Theme(r.Context())
	if err != nil {
		h.logger.Error("Failed to read theme", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read theme")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"theme": string(theme)})
}

// SetTheme stores the light/dark preference.
func (h *ProfileHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req SetThemeRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.profiles.SetTheme(r.Context(), profile.Theme(req.Theme)); err != nil {
		h.logger.Error("Failed to set theme", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to set theme")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}

// GetCustomTheme returns the stored appearance settings.
func (h *ProfileHandler) GetCustomTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.profiles.CustomTheme(r.Context())
	if err != nil {
		h.logger.Error("Failed to read custom theme", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read custom theme")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, theme)
}

// SetCustomTheme stores appearance settings.
func (h *ProfileHandler) SetCustomTheme(w http.ResponseWriter, r *http.Request) {
	var req domain.CustomTheme

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.profiles.SetCustomTheme(r.Context(), req); err != nil {
		h.logger.Error("Failed to set custom theme", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to set custom theme")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, req)
}

// ResetCustomTheme restores the default appearance settings.
func (h *ProfileHandler) ResetCustomTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.profiles.ResetCustomTheme(r.Context())
	if err != nil {
		h.logger.Error("Failed to reset custom theme", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to reset custom theme")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, theme)
}
