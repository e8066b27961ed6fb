package transport

import (
	"net/http"

	"list-market/internal/delivery"
	"list-market/internal/middleware"
	"list-market/internal/order"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for checkout and order history.
type OrderHandler struct {
	orders  order.Service
	tracker *delivery.Tracker
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders order.Service, tracker *delivery.Tracker, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, tracker: tracker, logger: logger}
}

// RegisterRoutes registers all order routes. Checkout requires a session
// token; reading the history does not.
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.History)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Checkout)
		})
	})
}

// Checkout turns the cart into an order and kicks off the delivery
// countdown for it.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	placed, err := h.orders.Checkout(r.Context())
	if err != nil {
		if err == order.ErrEmptyCart {
			middleware.RespondWithError(w, http.StatusConflict, "корзина пуста")
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.tracker.Start(placed.ID)

	middleware.RespondWithJSON(w, http.StatusCreated, placed)
}

// History returns all orders, newest first.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.orders.History(r.Context())
	if err != nil {
		h.logger.Error("Failed to read order history", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read order history")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"orders": history})
}
