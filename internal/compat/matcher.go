package compat

// Vehicle is the matcher's view of the selected car. Brand, model and fuel
// are canonical slugs (see CanonicalBrand and friends); a zero field means
// the vehicle does not supply that attribute.
type Vehicle struct {
	Brand string
	Model string
	Year  int
	Fuel  string
}

// EmptyPolicy decides what a product with no compatibility data matches.
// The upstream behavior this service replaces applied both policies in
// different code paths; here it is a single explicit choice made once at
// startup and applied everywhere.
type EmptyPolicy int

const (
	// EmptyMatchesNone hides products without compatibility data when a
	// vehicle filter is active. This is the default: fitment-specific
	// accessories should not be shown for cars they were never declared
	// to fit.
	EmptyMatchesNone EmptyPolicy = iota

	// EmptyMatchesAll shows products without compatibility data to every
	// vehicle, treating missing data as universal fit.
	EmptyMatchesAll
)

func (p EmptyPolicy) String() string {
	switch p {
	case EmptyMatchesNone:
		return "none"
	case EmptyMatchesAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseEmptyPolicy maps a configuration string to a policy.
// Unrecognized values fall back to EmptyMatchesNone.
func ParseEmptyPolicy(s string) EmptyPolicy {
	if s == "all" {
		return EmptyMatchesAll
	}
	return EmptyMatchesNone
}

// Matcher decides whether a product fits a vehicle. It is pure: no I/O,
// no state beyond the configured empty policy.
type Matcher struct {
	policy EmptyPolicy
}

// NewMatcher creates a matcher with the given empty-pattern policy.
func NewMatcher(policy EmptyPolicy) Matcher {
	return Matcher{policy: policy}
}

// Policy returns the configured empty-pattern policy.
func (m Matcher) Policy() EmptyPolicy {
	return m.policy
}

// IsCompatible reports whether a product with the given patterns fits the
// vehicle. The universal flag, or any universal pattern, matches
// unconditionally. An empty pattern set resolves by the configured policy.
// Otherwise at least one pattern must hold: within a pattern every present
// key must match, and a key absent on either side is "don't care" for
// model, year and fuel. Brand comparison is exact and case-sensitive over
// canonical slugs.
func (m Matcher) IsCompatible(patterns []Pattern, v Vehicle, universalFit bool) bool {
	if universalFit {
		return true
	}
	for _, p := range patterns {
		if p.Universal {
			return true
		}
	}

	if len(patterns) == 0 {
		return m.policy == EmptyMatchesAll
	}

	for _, p := range patterns {
		if p.Matches(v) {
			return true
		}
	}
	return false
}

// Matches reports whether every constraint the pattern carries holds
// against the vehicle.
func (p Pattern) Matches(v Vehicle) bool {
	if p.Universal {
		return true
	}
	if p.Brand != "" && p.Brand != v.Brand {
		return false
	}
	if p.Model != "" && v.Model != "" && p.Model != v.Model {
		return false
	}
	if (p.YearFrom != 0 || p.YearTo != 0) && v.Year != 0 {
		if v.Year < p.YearFrom || v.Year > p.YearTo {
			return false
		}
	}
	if p.Fuel != "" && v.Fuel != "" && p.Fuel != v.Fuel {
		return false
	}
	return true
}
