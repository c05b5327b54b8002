package http

import (
	"log/slog"
	"net/http"

	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/internal/service"
)

// CatalogHandler handles HTTP requests for product listing endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// productListResponse reports the visible products and the vehicle filter
// that was applied, so the UI can render the active selection.
type productListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
	Vehicle  *domain.Vehicle  `json:"vehicle,omitempty"`
	Filtered bool             `json:"filtered"`
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	includeAll := r.URL.Query().Get("all") == "true"

	listing, err := h.service.ListProducts(r.Context(), sid, includeAll)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: productListResponse{
		Products: listing.Products,
		Count:    len(listing.Products),
		Vehicle:  listing.Vehicle,
		Filtered: listing.Filtered,
	}})
}
