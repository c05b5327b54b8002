package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/internal/service"
	"github.com/rechevshop/storefront/pkg/money"
	"github.com/rechevshop/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddItemRequest is the JSON request body for adding an item to the cart.
// Prices arrive as decimal shekel strings and are stored in agorot.
type AddItemRequest struct {
	ProductID int64                `json:"product_id" validate:"required,gt=0"`
	Name      string               `json:"name" validate:"required,min=1,max=500"`
	Price     string               `json:"price" validate:"required"`
	ImageURL  string               `json:"image_url"`
	Quantity  int                  `json:"quantity" validate:"required,gte=1"`
	Variation *AddVariationRequest `json:"variation,omitempty"`
}

// AddVariationRequest describes the chosen product variation, if any.
type AddVariationRequest struct {
	ID         int64                       `json:"id" validate:"required,gt=0"`
	Price      string                      `json:"price" validate:"required"`
	Attributes []domain.VariationAttribute `json:"attributes,omitempty"`
}

// UpdateQuantityRequest is the JSON request body for updating an item's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// cartSnapshot is the cart plus its derived totals, the shape every cart
// endpoint returns.
type cartSnapshot struct {
	*domain.Cart
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

func snapshot(cart *domain.Cart) cartSnapshot {
	return cartSnapshot{
		Cart:      cart,
		Total:     cart.Total().String(),
		ItemCount: cart.ItemCount(),
	}
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	cart, err := h.service.Get(r.Context(), sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: snapshot(cart)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	item, err := h.buildItem(req)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	cart, err := h.service.AddItem(r.Context(), sid, item)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: snapshot(cart)})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{productID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	productID, variationID, ok := itemKey(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), sid, productID, variationID, req.Quantity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: snapshot(cart)})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	productID, variationID, ok := itemKey(w, r)
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), sid, productID, variationID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: snapshot(cart)})
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), sid); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "cleared"}})
}

func (h *CartHandler) buildItem(req AddItemRequest) (domain.CartItem, error) {
	price, err := money.Parse(req.Price)
	if err != nil {
		return domain.CartItem{}, err
	}

	item := domain.CartItem{
		Product: domain.ProductRef{
			ID:       req.ProductID,
			Name:     req.Name,
			Price:    price,
			ImageURL: req.ImageURL,
		},
		Quantity: req.Quantity,
	}

	if req.Variation != nil {
		varPrice, err := money.Parse(req.Variation.Price)
		if err != nil {
			return domain.CartItem{}, err
		}
		item.Variation = &domain.Variation{
			ID:         req.Variation.ID,
			Price:      varPrice,
			Attributes: req.Variation.Attributes,
		}
	}

	return item, nil
}

// itemKey reads the line-item key from the URL: product ID from the path,
// variation ID from the optional ?variation_id query parameter.
func itemKey(w http.ResponseWriter, r *http.Request) (productID, variationID int64, ok bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		writeBadRequest(w, "productID must be a positive integer")
		return 0, 0, false
	}

	if raw := r.URL.Query().Get("variation_id"); raw != "" {
		variationID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || variationID < 0 {
			writeBadRequest(w, "variation_id must be a non-negative integer")
			return 0, 0, false
		}
	}

	return productID, variationID, true
}
