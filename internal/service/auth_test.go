package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rechevshop/storefront/internal/domain"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
	"github.com/rechevshop/storefront/pkg/logger"
)

func newAuthService(repo *MockAuthRepository) *AuthService {
	return NewAuthService(repo, logger.New("auth-test", "error"))
}

func TestAuthSignIn(t *testing.T) {
	repo := new(MockAuthRepository)
	repo.On("Save", mock.Anything, testSession, mock.AnythingOfType("*domain.AuthSession")).Return(nil)

	session, err := newAuthService(repo).SignIn(context.Background(), testSession, &domain.AuthSession{
		Token:    "tok-123",
		Customer: domain.Customer{ID: 77, Email: "dana@example.co.il"},
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", session.Token)
	assert.Equal(t, int64(77), session.Customer.ID)
	repo.AssertExpectations(t)
}

func TestAuthSignInRequiresToken(t *testing.T) {
	repo := new(MockAuthRepository)

	_, err := newAuthService(repo).SignIn(context.Background(), testSession, &domain.AuthSession{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthGet(t *testing.T) {
	stored := &domain.AuthSession{Token: "tok-123", Customer: domain.Customer{ID: 77}}
	repo := new(MockAuthRepository)
	repo.On("Get", mock.Anything, testSession).Return(stored, nil)

	session, err := newAuthService(repo).Get(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, stored, session)
}

func TestAuthGetGuestSession(t *testing.T) {
	repo := new(MockAuthRepository)
	repo.On("Get", mock.Anything, testSession).Return(nil, apperrors.NotFound("auth session", testSession))

	session, err := newAuthService(repo).Get(context.Background(), testSession)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestAuthSignOut(t *testing.T) {
	repo := new(MockAuthRepository)
	repo.On("Delete", mock.Anything, testSession).Return(nil)

	err := newAuthService(repo).SignOut(context.Background(), testSession)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
