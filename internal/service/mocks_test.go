package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rechevshop/storefront/internal/domain"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Get(ctx context.Context, sessionID string) (*domain.Vehicle, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Save(ctx context.Context, sessionID string, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, sessionID, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) Get(ctx context.Context, sessionID string) (*domain.AuthSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthSession), args.Error(1)
}

func (m *MockAuthRepository) Save(ctx context.Context, sessionID string, session *domain.AuthSession) error {
	args := m.Called(ctx, sessionID, session)
	return args.Error(0)
}

func (m *MockAuthRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) Lookup(ctx context.Context, plate string) (*domain.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogClient) CreateOrder(ctx context.Context, order *domain.OrderRequest, bearerToken string) (*domain.OrderConfirmation, error) {
	args := m.Called(ctx, order, bearerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderConfirmation), args.Error(1)
}

// recordingPublisher captures emitted events so tests can assert on them
// without a broker.
type recordingPublisher struct {
	vehicleSelections []string
	cartUpdates       []int
	cartClears        []string
	ordersSubmitted   []int64
}

func (p *recordingPublisher) VehicleSelected(_ context.Context, sessionID string, _ *domain.Vehicle, _ bool) {
	p.vehicleSelections = append(p.vehicleSelections, sessionID)
}

func (p *recordingPublisher) CartUpdated(_ context.Context, cart *domain.Cart) {
	p.cartUpdates = append(p.cartUpdates, cart.ItemCount())
}

func (p *recordingPublisher) CartCleared(_ context.Context, sessionID string) {
	p.cartClears = append(p.cartClears, sessionID)
}

func (p *recordingPublisher) OrderSubmitted(_ context.Context, _ string, conf *domain.OrderConfirmation, _ int) {
	p.ordersSubmitted = append(p.ordersSubmitted, conf.OrderID)
}
