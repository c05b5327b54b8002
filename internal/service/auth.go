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

// AuthService stores the session's externally issued identity. Tokens are
// opaque here; the store API verifies them when the order is placed.
type AuthService struct {
	sessions repository.AuthRepository
	logger   *slog.Logger
}

// NewAuthService creates a new auth session service.
func NewAuthService(sessions repository.AuthRepository, logger *slog.Logger) *AuthService {
	return &AuthService{
		sessions: sessions,
		logger:   logger,
	}
}

// SignIn attaches an external bearer token and customer profile to the
// session, replacing any previous sign-in.
func (s *AuthService) SignIn(ctx context.Context, sessionID string, session *domain.AuthSession) (*domain.AuthSession, error) {
	if session.Token == "" {
		return nil, apperrors.InvalidInput("token is required")
	}

	if err := s.sessions.Save(ctx, sessionID, session); err != nil {
		return nil, fmt.Errorf("save auth session: %w", err)
	}

	s.logger.InfoContext(ctx, "customer signed in",
		slog.String("session_id", sessionID),
		slog.Int64("customer_id", session.Customer.ID),
	)
	return session, nil
}

// Get returns the session's auth state, or nil for a guest session.
func (s *AuthService) Get(ctx context.Context, sessionID string) (*domain.AuthSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auth session: %w", err)
	}
	return session, nil
}

// SignOut discards the session's auth state. Cart and vehicle selection
// survive a sign-out. Signing out a guest session is not an error.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete auth session: %w", err)
	}
	s.logger.InfoContext(ctx, "customer signed out",
		slog.String("session_id", sessionID),
	)
	return nil
}
