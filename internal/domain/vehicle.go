package domain

import (
	"strings"

	"github.com/rechevshop/storefront/internal/compat"
	apperrors "github.com/rechevshop/storefront/pkg/errors"
)

// Fuel type constants. These are the canonical catalog-side identifiers;
// localized registry values are mapped through compat.CanonicalFuel.
const (
	FuelPetrol   = "petrol"
	FuelDiesel   = "diesel"
	FuelHybrid   = "hybrid"
	FuelElectric = "electric"
)

// ValidFuelTypes returns the set of valid fuel type identifiers.
func ValidFuelTypes() []string {
	return []string{FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric}
}

// IsValidFuelType checks whether the given string is a valid fuel type.
func IsValidFuelType(fuel string) bool {
	for _, f := range ValidFuelTypes() {
		if f == fuel {
			return true
		}
	}
	return false
}

// Vehicle is the customer's selected car. Identity is value-based: a session
// holds at most one selected vehicle, replaced wholesale on re-selection.
type Vehicle struct {
	LicensePlate string `json:"license_plate,omitempty"`
	Brand        string `json:"brand"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty"`
	FuelType     string `json:"fuel_type,omitempty"`
	EngineType   string `json:"engine_type,omitempty"`
}

// Spec returns the vehicle's view used by the compatibility matcher.
func (v Vehicle) Spec() compat.Vehicle {
	return compat.Vehicle{
		Brand: v.Brand,
		Model: v.Model,
		Year:  v.Year,
		Fuel:  v.FuelType,
	}
}

// NormalizePlate strips separators commonly typed in Israeli license plates.
func NormalizePlate(plate string) string {
	plate = strings.TrimSpace(plate)
	plate = strings.ReplaceAll(plate, "-", "")
	plate = strings.ReplaceAll(plate, " ", "")
	return plate
}

// ValidatePlate checks that a normalized plate is 7 or 8 digits. This runs
// before any registry lookup so malformed input never hits the network.
func ValidatePlate(plate string) error {
	if len(plate) != 7 && len(plate) != 8 {
		return apperrors.InvalidInput("license plate must be 7 or 8 digits")
	}
	for _, c := range plate {
		if c < '0' || c > '9' {
			return apperrors.InvalidInput("license plate must contain only digits")
		}
	}
	return nil
}
