package transport

import (
	"net/http"
	"strconv"

	"list-market/internal/cart"
	"list-market/internal/catalog"
	"list-market/internal/domain"
	"list-market/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart request payload.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gte=1"`
}

// SetQuantityRequest represents the quantity-change request payload.
// Zero is meaningful (it removes the line), so the field carries no
// required tag.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartResponse is the cart plus its derived total.
type CartResponse struct {
	Lines []domain.CartLine `json:"lines"`
	Total int64             `json:"total"`
}

// CartHandler handles HTTP requests for the cart ledger.
type CartHandler struct {
	carts   cart.Service
	catalog catalog.Catalog
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts cart.Service, c catalog.Catalog, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, catalog: c, logger: logger}
}

// RegisterRoutes registers all cart routes. Mutations sit behind the
// session token middleware; reading the cart does not.
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/items", h.AddItem)
			r.Put("/items/{id}", h.SetQuantity)
		})
	})
}

// Get returns the cart with its current total.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondWithCart(w, r, http.StatusOK)
}

// AddItem puts one unit of a catalog product into the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.FindByID(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	if _, err := h.carts.AddItem(r.Context(), *product); err != nil {
		if err == cart.ErrUnauthorized {
			middleware.RespondWithError(w, http.StatusUnauthorized, "войдите в аккаунт для добавления товаров в корзину")
			return
		}
		h.logger.Error("Failed to add item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	h.respondWithCart(w, r, http.StatusOK)
}

// SetQuantity changes a line's quantity; zero removes the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req SetQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Set quantity validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.carts.SetQuantity(r.Context(), productID, req.Quantity); err != nil {
		h.logger.Error("Failed to set quantity", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	h.respondWithCart(w, r, http.StatusOK)
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, statusCode int) {
	current, err := h.carts.Get(r.Context())
	if err != nil {
		h.logger.Error("Failed to read cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read cart")
		return
	}

	total, err := h.carts.Total(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute total", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read cart")
		return
	}

	middleware.RespondWithJSON(w, statusCode, CartResponse{Lines: current.Lines, Total: total})
}
