package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rechevshop/storefront/internal/compat"
	"github.com/rechevshop/storefront/internal/domain"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
	"github.com/rechevshop/storefront/pkg/logger"
)

func testProducts() []domain.Product {
	corollaMat := compat.Pattern{Brand: "toyota", Model: "corolla", YearFrom: 2015, YearTo: 2025}
	mazdaMat := compat.Pattern{Brand: "mazda", Model: "3"}

	return []domain.Product{
		{ID: 1, Name: "שטיחון לקורולה", Compatibility: []compat.Pattern{corollaMat}},
		{ID: 2, Name: "שטיחון למאזדה", Compatibility: []compat.Pattern{mazdaMat}},
		{ID: 3, Name: "מטען אוניברסלי", UniversalFit: true},
		{ID: 4, Name: "מוצר ללא נתוני התאמה"},
	}
}

func newCatalogService(client *MockCatalogClient, vehicles *MockVehicleRepository, policy compat.EmptyPolicy) *CatalogService {
	return NewCatalogService(client, vehicles, compat.NewMatcher(policy), logger.New("catalog-test", "error"))
}

func TestListProductsNoVehicle(t *testing.T) {
	client := new(MockCatalogClient)
	client.On("ListProducts", mock.Anything).Return(testProducts(), nil)

	vehicles := new(MockVehicleRepository)
	vehicles.On("Get", mock.Anything, testSession).Return(nil, apperrors.NotFound("vehicle", testSession))

	listing, err := newCatalogService(client, vehicles, compat.EmptyMatchesNone).ListProducts(context.Background(), testSession, false)
	require.NoError(t, err)
	assert.Len(t, listing.Products, 4)
	assert.Nil(t, listing.Vehicle)
	assert.False(t, listing.Filtered)
}

func TestListProductsFilteredByVehicle(t *testing.T) {
	client := new(MockCatalogClient)
	client.On("ListProducts", mock.Anything).Return(testProducts(), nil)

	vehicles := new(MockVehicleRepository)
	vehicles.On("Get", mock.Anything, testSession).Return(&domain.Vehicle{
		Brand: "toyota", Model: "corolla", Year: 2021,
	}, nil)

	listing, err := newCatalogService(client, vehicles, compat.EmptyMatchesNone).ListProducts(context.Background(), testSession, false)
	require.NoError(t, err)
	assert.True(t, listing.Filtered)
	require.NotNil(t, listing.Vehicle)

	ids := productIDs(listing.Products)
	// Corolla mat and universal charger; the Mazda mat and the product
	// without fitment data are hidden.
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestListProductsEmptyMatchesAllPolicy(t *testing.T) {
	client := new(MockCatalogClient)
	client.On("ListProducts", mock.Anything).Return(testProducts(), nil)

	vehicles := new(MockVehicleRepository)
	vehicles.On("Get", mock.Anything, testSession).Return(&domain.Vehicle{
		Brand: "toyota", Model: "corolla", Year: 2021,
	}, nil)

	listing, err := newCatalogService(client, vehicles, compat.EmptyMatchesAll).ListProducts(context.Background(), testSession, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4}, productIDs(listing.Products))
}

func TestListProductsBypassFilter(t *testing.T) {
	client := new(MockCatalogClient)
	client.On("ListProducts", mock.Anything).Return(testProducts(), nil)

	vehicles := new(MockVehicleRepository)
	vehicles.On("Get", mock.Anything, testSession).Return(&domain.Vehicle{Brand: "toyota"}, nil)

	listing, err := newCatalogService(client, vehicles, compat.EmptyMatchesNone).ListProducts(context.Background(), testSession, true)
	require.NoError(t, err)
	assert.Len(t, listing.Products, 4)
	assert.False(t, listing.Filtered)
	// The selection is still reported so the UI can show it.
	require.NotNil(t, listing.Vehicle)
}

func TestListProductsUpstreamError(t *testing.T) {
	client := new(MockCatalogClient)
	client.On("ListProducts", mock.Anything).Return(nil, apperrors.UpstreamUnavailable("product catalog"))

	listing, err := newCatalogService(client, new(MockVehicleRepository), compat.EmptyMatchesNone).ListProducts(context.Background(), testSession, false)
	require.Error(t, err)
	assert.Nil(t, listing)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavail)
}

func productIDs(products []domain.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
