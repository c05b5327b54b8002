package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/internal/service"
	"github.com/rechevshop/storefront/pkg/validator"
)

// AuthHandler handles HTTP requests for the session's sign-in state. The
// token itself comes from the external identity system; these endpoints
// only attach it to the storefront session.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		logger:  logger,
	}
}

// SignInRequest is the JSON request body for attaching a sign-in to the
// session.
type SignInRequest struct {
	Token    string          `json:"token" validate:"required"`
	Customer CustomerRequest `json:"customer"`
}

// CustomerRequest is the customer profile slice carried with a sign-in.
type CustomerRequest struct {
	ID        int64  `json:"id" validate:"omitempty,gt=0"`
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=30"`
}

// authSessionResponse is the sign-in state returned to the client. The
// token is never echoed back.
type authSessionResponse struct {
	SignedIn bool             `json:"signed_in"`
	Customer *domain.Customer `json:"customer,omitempty"`
}

// SignIn handles PUT /api/v1/auth/session
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	session, err := h.service.SignIn(r.Context(), sid, &domain.AuthSession{
		Token: req.Token,
		Customer: domain.Customer{
			ID:        req.Customer.ID,
			Email:     req.Customer.Email,
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Phone:     req.Customer.Phone,
		},
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: authSessionResponse{
		SignedIn: true,
		Customer: &session.Customer,
	}})
}

// Get handles GET /api/v1/auth/session
func (h *AuthHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	session, err := h.service.Get(r.Context(), sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if session == nil {
		writeJSON(w, http.StatusOK, response{Data: authSessionResponse{SignedIn: false}})
		return
	}

	writeJSON(w, http.StatusOK, response{Data: authSessionResponse{
		SignedIn: true,
		Customer: &session.Customer,
	}})
}

// SignOut handles DELETE /api/v1/auth/session
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.service.SignOut(r.Context(), sid); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "signed_out"}})
}
