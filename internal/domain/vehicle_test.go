package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/rechevshop/storefront/pkg/errors"
)

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "12345678", NormalizePlate("123-45-678"))
	assert.Equal(t, "1234567", NormalizePlate(" 123 45 67 "))
	assert.Equal(t, "1234567", NormalizePlate("1234567"))
}

func TestValidatePlate_Valid(t *testing.T) {
	assert.NoError(t, ValidatePlate("1234567"))
	assert.NoError(t, ValidatePlate("12345678"))
}

func TestValidatePlate_Invalid(t *testing.T) {
	for _, plate := range []string{"", "123456", "123456789", "12345a7", "אבג1234"} {
		err := ValidatePlate(plate)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "plate %q", plate)
	}
}

func TestIsValidFuelType(t *testing.T) {
	for _, f := range ValidFuelTypes() {
		assert.True(t, IsValidFuelType(f))
	}
	assert.False(t, IsValidFuelType("gasoline"))
	assert.False(t, IsValidFuelType(""))
	assert.False(t, IsValidFuelType("PETROL"))
}

func TestVehicle_Spec(t *testing.T) {
	v := Vehicle{
		LicensePlate: "1234567",
		Brand:        "toyota",
		Model:        "corolla",
		Year:         2021,
		FuelType:     FuelPetrol,
		EngineType:   "1.8L",
	}

	spec := v.Spec()
	assert.Equal(t, "toyota", spec.Brand)
	assert.Equal(t, "corolla", spec.Model)
	assert.Equal(t, 2021, spec.Year)
	assert.Equal(t, "petrol", spec.Fuel)
}
