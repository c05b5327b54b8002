package repository

import (
	"context"

	"github.com/rechevshop/storefront/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves the cart for a session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the session's cart.
	Delete(ctx context.Context, sessionID string) error
}

// VehicleRepository defines persistence for the session's selected vehicle.
// At most one vehicle is held per session; Save replaces it wholesale.
type VehicleRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Vehicle, error)
	Save(ctx context.Context, sessionID string, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, sessionID string) error
}

// AuthRepository defines persistence for the auth session (customer
// profile and opaque bearer token), held separately from the cart store.
type AuthRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.AuthSession, error)
	Save(ctx context.Context, sessionID string, session *domain.AuthSession) error
	Delete(ctx context.Context, sessionID string) error
}
