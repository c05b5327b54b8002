package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rechevshop/storefront/internal/domain"
)

const authKeyPrefix = "auth:"

// AuthRepository implements repository.AuthRepository using Redis. It is a
// separate named store from the cart so logging out never touches cart state.
type AuthRepository struct {
	store
}

// NewAuthRepository creates a new Redis-backed auth session repository.
func NewAuthRepository(client *redis.Client, ttl time.Duration) *AuthRepository {
	return &AuthRepository{store{
		client:    client,
		keyPrefix: authKeyPrefix,
		resource:  "auth session",
		ttl:       ttl,
	}}
}

// Get retrieves the session's auth state.
func (r *AuthRepository) Get(ctx context.Context, sessionID string) (*domain.AuthSession, error) {
	var session domain.AuthSession
	if err := r.get(ctx, sessionID, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Save persists the session's auth state.
func (r *AuthRepository) Save(ctx context.Context, sessionID string, session *domain.AuthSession) error {
	return r.set(ctx, sessionID, session)
}

// Delete removes the session's auth state.
func (r *AuthRepository) Delete(ctx context.Context, sessionID string) error {
	return r.del(ctx, sessionID)
}
