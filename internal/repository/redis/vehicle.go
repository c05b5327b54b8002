package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rechevshop/storefront/internal/domain"
)

const vehicleKeyPrefix = "vehicle:"

// VehicleRepository implements repository.VehicleRepository using Redis.
type VehicleRepository struct {
	store
}

// NewVehicleRepository creates a new Redis-backed selected-vehicle repository.
func NewVehicleRepository(client *redis.Client, ttl time.Duration) *VehicleRepository {
	return &VehicleRepository{store{
		client:    client,
		keyPrefix: vehicleKeyPrefix,
		resource:  "vehicle",
		ttl:       ttl,
	}}
}

// Get retrieves the session's selected vehicle.
func (r *VehicleRepository) Get(ctx context.Context, sessionID string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := r.get(ctx, sessionID, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Save replaces the session's selected vehicle wholesale.
func (r *VehicleRepository) Save(ctx context.Context, sessionID string, vehicle *domain.Vehicle) error {
	return r.set(ctx, sessionID, vehicle)
}

// Delete clears the session's selected vehicle.
func (r *VehicleRepository) Delete(ctx context.Context, sessionID string) error {
	return r.del(ctx, sessionID)
}
