package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/internal/service"
	"github.com/rechevshop/storefront/pkg/validator"
)

// CheckoutHandler handles the order handoff endpoint.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// CheckoutAddress is the JSON shape of a billing or shipping address.
type CheckoutAddress struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Address1  string `json:"address_1" validate:"required,max=200"`
	City      string `json:"city" validate:"required,max=100"`
	Postcode  string `json:"postcode" validate:"max=20"`
	Country   string `json:"country" validate:"required,len=2"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=30"`
}

// CheckoutRequest is the JSON request body for placing an order.
type CheckoutRequest struct {
	Billing      CheckoutAddress  `json:"billing" validate:"required"`
	Shipping     *CheckoutAddress `json:"shipping" validate:"omitempty"`
	CustomerNote string           `json:"customer_note" validate:"max=1000"`
}

// Submit handles POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	conf, err := h.service.Submit(r.Context(), sid, toServiceRequest(req))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: conf})
}

func toServiceRequest(req CheckoutRequest) service.CheckoutRequest {
	out := service.CheckoutRequest{
		Billing:      toOrderAddress(req.Billing),
		CustomerNote: req.CustomerNote,
	}
	if req.Shipping != nil {
		shipping := toOrderAddress(*req.Shipping)
		out.Shipping = &shipping
	}
	return out
}

func toOrderAddress(a CheckoutAddress) domain.OrderAddress {
	return domain.OrderAddress{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Address1:  a.Address1,
		City:      a.City,
		Postcode:  a.Postcode,
		Country:   a.Country,
		Email:     a.Email,
		Phone:     a.Phone,
	}
}
