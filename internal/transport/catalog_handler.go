package transport

import (
	"net/http"
	"strconv"
	"time"

	"list-market/internal/catalog"
	"list-market/internal/domain"
	"list-market/internal/middleware"
	"list-market/internal/pricing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductView is a catalog product plus the price in effect right now.
type ProductView struct {
	domain.Product
	EffectivePrice int64 `json:"effective_price"`
}

// ProductListResponse wraps a catalog listing.
type ProductListResponse struct {
	Products       []ProductView `json:"products"`
	DiscountActive bool          `json:"discount_active"`
}

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	catalog catalog.Catalog
	logger  *zap.Logger
	now     func() time.Time
}

// NewCatalogHandler creates a new CatalogHandler. A nil now falls back
// to time.Now.
func NewCatalogHandler(c catalog.Catalog, logger *zap.Logger, now func() time.Time) *CatalogHandler {
	if now == nil {
		now = time.Now
	}
	return &CatalogHandler{catalog: c, logger: logger, now: now}
}

// RegisterRoutes registers all catalog routes.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.List)
	r.Get("/api/products/{id}", h.Get)
	r.Get("/api/categories", h.Categories)
}

// List returns products, optionally filtered by category or search
// query, with effective prices for the current day.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []domain.Product
	if q := r.URL.Query().Get("q"); q != "" {
		products = h.catalog.Search(q)
	} else {
		products = h.catalog.List(r.URL.Query().Get("category"))
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.listResponse(products))
}

// Get returns a single product by id.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalog.FindByID(id)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductView{
		Product:        *product,
		EffectivePrice: pricing.EffectivePrice(product.Price, h.now()),
	})
}

// Categories returns the known categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string][]string{
		"categories": h.catalog.Categories(),
	})
}

func (h *CatalogHandler) listResponse(products []domain.Product) ProductListResponse {
	now := h.now()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{
			Product:        p,
			EffectivePrice: pricing.EffectivePrice(p.Price, now),
		})
	}
	return ProductListResponse{
		Products:       views,
		DiscountActive: pricing.IsDiscountDay(now),
	}
}
