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

func newVehicleService(repo *MockVehicleRepository, reg *MockRegistryClient, pub *recordingPublisher) *VehicleService {
	return NewVehicleService(repo, reg, pub, logger.New("vehicle-test", "error"))
}

func TestVehicleSelectManual(t *testing.T) {
	repo := new(MockVehicleRepository)
	repo.On("Save", mock.Anything, testSession, mock.AnythingOfType("*domain.Vehicle")).Return(nil)

	pub := &recordingPublisher{}
	svc := newVehicleService(repo, new(MockRegistryClient), pub)

	v, err := svc.Select(context.Background(), testSession, &domain.Vehicle{
		Brand:    "toyota",
		Model:    "corolla",
		Year:     2021,
		FuelType: domain.FuelPetrol,
	})
	require.NoError(t, err)
	assert.Equal(t, "toyota", v.Brand)
	assert.Empty(t, v.LicensePlate)
	assert.Equal(t, []string{testSession}, pub.vehicleSelections)
	repo.AssertExpectations(t)
}

func TestVehicleSelectBrandOnly(t *testing.T) {
	repo := new(MockVehicleRepository)
	repo.On("Save", mock.Anything, testSession, mock.AnythingOfType("*domain.Vehicle")).Return(nil)

	svc := newVehicleService(repo, new(MockRegistryClient), &recordingPublisher{})
	v, err := svc.Select(context.Background(), testSession, &domain.Vehicle{Brand: "mazda"})
	require.NoError(t, err)
	assert.Equal(t, "mazda", v.Brand)
}

func TestVehicleSelectValidation(t *testing.T) {
	svc := newVehicleService(new(MockVehicleRepository), new(MockRegistryClient), &recordingPublisher{})

	_, err := svc.Select(context.Background(), testSession, &domain.Vehicle{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Select(context.Background(), testSession, &domain.Vehicle{Brand: "toyota", FuelType: "steam"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestVehicleSelectStripsPlate(t *testing.T) {
	repo := new(MockVehicleRepository)
	repo.On("Save", mock.Anything, testSession, mock.MatchedBy(func(v *domain.Vehicle) bool {
		return v.LicensePlate == ""
	})).Return(nil)

	svc := newVehicleService(repo, new(MockRegistryClient), &recordingPublisher{})
	_, err := svc.Select(context.Background(), testSession, &domain.Vehicle{
		Brand:        "toyota",
		LicensePlate: "12345678",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestVehicleLookupByPlate(t *testing.T) {
	resolved := &domain.Vehicle{
		LicensePlate: "12345678",
		Brand:        "toyota",
		Model:        "corolla",
		Year:         2021,
		FuelType:     domain.FuelPetrol,
	}
	reg := new(MockRegistryClient)
	reg.On("Lookup", mock.Anything, "12345678").Return(resolved, nil)

	repo := new(MockVehicleRepository)
	repo.On("Save", mock.Anything, testSession, resolved).Return(nil)

	pub := &recordingPublisher{}
	svc := newVehicleService(repo, reg, pub)

	// Separators are stripped before the lookup.
	v, err := svc.LookupByPlate(context.Background(), testSession, "123-45-678")
	require.NoError(t, err)
	assert.Equal(t, "toyota", v.Brand)
	assert.Equal(t, []string{testSession}, pub.vehicleSelections)
	reg.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestVehicleLookupInvalidPlate(t *testing.T) {
	svc := newVehicleService(new(MockVehicleRepository), new(MockRegistryClient), &recordingPublisher{})

	for _, plate := range []string{"", "123", "123456789", "12a45678"} {
		_, err := svc.LookupByPlate(context.Background(), testSession, plate)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "plate %q", plate)
	}
}

func TestVehicleLookupFailureKeepsPriorSelection(t *testing.T) {
	reg := new(MockRegistryClient)
	reg.On("Lookup", mock.Anything, "12345678").Return(nil, apperrors.LookupNotFound("12345678"))

	repo := new(MockVehicleRepository)
	pub := &recordingPublisher{}
	svc := newVehicleService(repo, reg, pub)

	_, err := svc.LookupByPlate(context.Background(), testSession, "12345678")
	assert.ErrorIs(t, err, apperrors.ErrLookupFailed)
	assert.Empty(t, pub.vehicleSelections)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVehicleGet(t *testing.T) {
	selected := &domain.Vehicle{Brand: "toyota", Model: "corolla", Year: 2021}
	repo := new(MockVehicleRepository)
	repo.On("Get", mock.Anything, testSession).Return(selected, nil)

	svc := newVehicleService(repo, new(MockRegistryClient), &recordingPublisher{})
	v, err := svc.Get(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, selected, v)
}

func TestVehicleGetNoneSelected(t *testing.T) {
	repo := new(MockVehicleRepository)
	repo.On("Get", mock.Anything, testSession).Return(nil, apperrors.NotFound("vehicle", testSession))

	svc := newVehicleService(repo, new(MockRegistryClient), &recordingPublisher{})
	v, err := svc.Get(context.Background(), testSession)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestVehicleClear(t *testing.T) {
	repo := new(MockVehicleRepository)
	repo.On("Delete", mock.Anything, testSession).Return(nil)

	svc := newVehicleService(repo, new(MockRegistryClient), &recordingPublisher{})
	require.NoError(t, svc.Clear(context.Background(), testSession))
	repo.AssertExpectations(t)
}
