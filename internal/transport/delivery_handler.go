package transport

import (
	"net/http"

	"list-market/internal/delivery"
	"list-market/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DeliveryHandler exposes the countdown for the most recent order.
type DeliveryHandler struct {
	tracker *delivery.Tracker
	logger  *zap.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(tracker *delivery.Tracker, logger *zap.Logger) *DeliveryHandler {
	return &DeliveryHandler{tracker: tracker, logger: logger}
}

// RegisterRoutes registers all delivery routes.
func (h *DeliveryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/delivery", func(r chi.Router) {
		r.Get("/", h.Status)
		r.Post("/pickup", h.Pickup)
		r.Delete("/", h.Dismiss)
	})
}

// Status returns the live countdown state.
func (h *DeliveryHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.tracker.Status()
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "no delivery in progress")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, status)
}

// Pickup completes a countdown that has reached ready-for-pickup.
func (h *DeliveryHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	status, err := h.tracker.Pickup()
	if err != nil {
		switch err {
		case delivery.ErrNoActiveDelivery:
			middleware.RespondWithError(w, http.StatusNotFound, "no delivery in progress")
		case delivery.ErrNotReady:
			middleware.RespondWithError(w, http.StatusConflict, "заказ ещё в пути")
		default:
			h.logger.Error("Pickup failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to pick up order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, status)
}

// Dismiss tears the countdown view down, cancelling pending ticks.
func (h *DeliveryHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.tracker.Dismiss()
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "dismissed"})
}
