package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rechevshop/storefront/internal/domain"
	"github.com/rechevshop/storefront/internal/repository"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
)

// RegistryClient resolves license plates against the government registry.
type RegistryClient interface {
	Lookup(ctx context.Context, plate string) (*domain.Vehicle, error)
}

// EventPublisher emits domain events. Publishing never fails the caller.
type EventPublisher interface {
	VehicleSelected(ctx context.Context, sessionID string, v *domain.Vehicle, viaLookup bool)
	CartUpdated(ctx context.Context, cart *domain.Cart)
	CartCleared(ctx context.Context, sessionID string)
	OrderSubmitted(ctx context.Context, sessionID string, conf *domain.OrderConfirmation, itemCount int)
}

// VehicleService manages the per-session vehicle selection.
type VehicleService struct {
	vehicles  repository.VehicleRepository
	registry  RegistryClient
	publisher EventPublisher
	logger    *slog.Logger
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(vehicles repository.VehicleRepository, registry RegistryClient, publisher EventPublisher, logger *slog.Logger) *VehicleService {
	return &VehicleService{
		vehicles:  vehicles,
		registry:  registry,
		publisher: publisher,
		logger:    logger,
	}
}

// Select stores a manually chosen vehicle for the session, replacing any
// previous selection. Brand is the only mandatory field; a shopper may
// narrow by brand alone.
func (s *VehicleService) Select(ctx context.Context, sessionID string, v *domain.Vehicle) (*domain.Vehicle, error) {
	if v.Brand == "" {
		return nil, apperrors.InvalidInput("vehicle brand is required")
	}
	if v.FuelType != "" && !domain.IsValidFuelType(v.FuelType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown fuel type %q", v.FuelType))
	}
	// Manual selection has no plate attached.
	v.LicensePlate = ""

	if err := s.vehicles.Save(ctx, sessionID, v); err != nil {
		return nil, fmt.Errorf("save vehicle: %w", err)
	}

	s.logger.InfoContext(ctx, "vehicle selected",
		slog.String("session_id", sessionID),
		slog.String("brand", v.Brand),
		slog.String("model", v.Model),
		slog.Int("year", v.Year),
	)
	s.publisher.VehicleSelected(ctx, sessionID, v, false)
	return v, nil
}

// LookupByPlate resolves a license plate through the registry and stores
// the result as the session's vehicle. A failed lookup leaves any previous
// selection untouched.
func (s *VehicleService) LookupByPlate(ctx context.Context, sessionID, rawPlate string) (*domain.Vehicle, error) {
	plate := domain.NormalizePlate(rawPlate)
	if err := domain.ValidatePlate(plate); err != nil {
		return nil, err
	}

	v, err := s.registry.Lookup(ctx, plate)
	if err != nil {
		return nil, err
	}

	if err := s.vehicles.Save(ctx, sessionID, v); err != nil {
		return nil, fmt.Errorf("save vehicle: %w", err)
	}

	s.logger.InfoContext(ctx, "vehicle resolved from registry",
		slog.String("session_id", sessionID),
		slog.String("plate", plate),
		slog.String("brand", v.Brand),
	)
	s.publisher.VehicleSelected(ctx, sessionID, v, true)
	return v, nil
}

// Get returns the session's selected vehicle, or nil when none is selected.
func (s *VehicleService) Get(ctx context.Context, sessionID string) (*domain.Vehicle, error) {
	v, err := s.vehicles.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// Clear removes the session's vehicle selection. Clearing an empty
// selection is not an error.
func (s *VehicleService) Clear(ctx context.Context, sessionID string) error {
	if err := s.vehicles.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear vehicle: %w", err)
	}
	s.logger.InfoContext(ctx, "vehicle selection cleared",
		slog.String("session_id", sessionID),
	)
	return nil
}
