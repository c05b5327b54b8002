package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/internal/service"
	"github.com/rechevshop/storefront/pkg/validator"
)

// VehicleHandler handles HTTP requests for vehicle selection endpoints.
type VehicleHandler struct {
	service *service.VehicleService
	logger  *slog.Logger
}

// NewVehicleHandler creates a new vehicle HTTP handler.
func NewVehicleHandler(svc *service.VehicleService, logger *slog.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: svc,
		logger:  logger,
	}
}

// SelectVehicleRequest is the JSON request body for the manual vehicle picker.
type SelectVehicleRequest struct {
	Brand    string `json:"brand" validate:"required,min=1,max=100"`
	Model    string `json:"model" validate:"max=100"`
	Year     int    `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	FuelType string `json:"fuel_type" validate:"omitempty,oneof=petrol diesel hybrid electric"`
}

// LookupVehicleRequest is the JSON request body for plate lookup.
type LookupVehicleRequest struct {
	LicensePlate string `json:"license_plate" validate:"required"`
}

// Select handles POST /api/v1/vehicle
func (h *VehicleHandler) Select(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req SelectVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	v, err := h.service.Select(r.Context(), sid, &domain.Vehicle{
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		FuelType: req.FuelType,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: v})
}

// Lookup handles POST /api/v1/vehicle/lookup
func (h *VehicleHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req LookupVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	v, err := h.service.LookupByPlate(r.Context(), sid, req.LicensePlate)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: v})
}

// Get handles GET /api/v1/vehicle
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, ok := requireSession(w, r)
	if !ok {
		return
	}

	v, err := h.service.Get(r.Context(), sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if v == nil {
		writeJSON(w, http.StatusOK, response{Data: map[string]any{"selected": false}})
		return
	}

	writeJSON(w, http.StatusOK, response{Data: v})
}

// Clear handles DELETE /api/v1/vehicle
func (h *VehicleHandler) Clear(w http.ResponseWriter, r *http.Request) {
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
