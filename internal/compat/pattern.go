// Package compat implements vehicle-compatibility matching: parsing of
// compatibility patterns, normalization of structured fitment metadata,
// localized brand/model name resolution, and the matching predicate itself.
package compat

import (
	"fmt"
	"strconv"
	"strings"
)

// UniversalToken is the pattern string meaning "fits every vehicle".
const UniversalToken = "universal"

// Pattern is one compatibility constraint set. A zero field means
// "don't care" for that key. All fields AND together; a product's
// pattern list ORs together.
type Pattern struct {
	Brand    string `json:"brand,omitempty"`
	Model    string `json:"model,omitempty"`
	Fuel     string `json:"fuel,omitempty"`
	YearFrom int    `json:"year_from,omitempty"`
	YearTo   int    `json:"year_to,omitempty"`

	// Universal is set when the pattern was the universal sentinel.
	Universal bool `json:"universal,omitempty"`
}

// IsZero reports whether the pattern constrains nothing.
func (p Pattern) IsZero() bool {
	return p == Pattern{}
}

// ParsePattern parses a comma-joined key:value pattern such as
// "brand:toyota,model:corolla,year:2015-2025,fuel:petrol". The literal
// token "universal" yields the universal pattern. Unknown keys and
// malformed terms are rejected, not silently ignored; blank terms
// (doubled or trailing separators) are skipped.
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Pattern{}, fmt.Errorf("parse pattern: empty string")
	}
	if s == UniversalToken {
		return Pattern{Universal: true}, nil
	}

	var p Pattern
	seen := make(map[string]bool, 4)
	terms := 0

	for _, term := range strings.Split(s, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		key, value, found := strings.Cut(term, ":")
		if !found {
			return Pattern{}, fmt.Errorf("parse pattern %q: term %q is not key:value", s, term)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			return Pattern{}, fmt.Errorf("parse pattern %q: empty value for key %q", s, key)
		}
		if seen[key] {
			return Pattern{}, fmt.Errorf("parse pattern %q: duplicate key %q", s, key)
		}
		seen[key] = true
		terms++

		switch key {
		case "brand":
			p.Brand = value
		case "model":
			p.Model = value
		case "fuel":
			p.Fuel = value
		case "year":
			from, to, err := parseYearTerm(value)
			if err != nil {
				return Pattern{}, fmt.Errorf("parse pattern %q: %w", s, err)
			}
			p.YearFrom, p.YearTo = from, to
		default:
			return Pattern{}, fmt.Errorf("parse pattern %q: unknown key %q", s, key)
		}
	}

	if terms == 0 {
		return Pattern{}, fmt.Errorf("parse pattern %q: no terms", s)
	}
	return p, nil
}

// parseYearTerm parses "2015" or "2015-2025" into an inclusive range.
func parseYearTerm(value string) (int, int, error) {
	if from, to, found := strings.Cut(value, "-"); found {
		f, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year range %q", value)
		}
		t, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year range %q", value)
		}
		if f > t {
			return 0, 0, fmt.Errorf("year range %q: min exceeds max", value)
		}
		return f, t, nil
	}

	y, err := strconv.Atoi(value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", value)
	}
	return y, y, nil
}

// String renders the pattern in canonical comma-joined form. Blank terms
// are dropped so the output never carries a trailing or doubled separator;
// a year term appears only when the pattern has year bounds.
func (p Pattern) String() string {
	if p.Universal {
		return UniversalToken
	}

	terms := make([]string, 0, 4)
	if p.Brand != "" {
		terms = append(terms, "brand:"+p.Brand)
	}
	if p.Model != "" {
		terms = append(terms, "model:"+p.Model)
	}
	if p.YearFrom != 0 || p.YearTo != 0 {
		if p.YearFrom == p.YearTo {
			terms = append(terms, "year:"+strconv.Itoa(p.YearFrom))
		} else {
			terms = append(terms, fmt.Sprintf("year:%d-%d", p.YearFrom, p.YearTo))
		}
	}
	if p.Fuel != "" {
		terms = append(terms, "fuel:"+p.Fuel)
	}
	return strings.Join(terms, ",")
}

// MetadataEntry is the structured fitment object stored as product
// metadata upstream. All fields arrive as free strings.
type MetadataEntry struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	YearFrom string `json:"year_from"`
	YearTo   string `json:"year_to"`
	Fuel     string `json:"fuel"`
}

// Pattern normalizes the entry into a Pattern. A year bound is applied
// only when present; when only one bound is given it is used as a single
// year. Blank fields are dropped. An entry with no usable constraint at
// all is an error so callers can skip it.
func (e MetadataEntry) Pattern() (Pattern, error) {
	var p Pattern
	p.Brand = strings.TrimSpace(e.Brand)
	p.Model = strings.TrimSpace(e.Model)
	p.Fuel = strings.TrimSpace(e.Fuel)

	from := strings.TrimSpace(e.YearFrom)
	to := strings.TrimSpace(e.YearTo)

	switch {
	case from != "" && to != "":
		f, err := strconv.Atoi(from)
		if err != nil {
			return Pattern{}, fmt.Errorf("normalize entry: invalid year_from %q", e.YearFrom)
		}
		t, err := strconv.Atoi(to)
		if err != nil {
			return Pattern{}, fmt.Errorf("normalize entry: invalid year_to %q", e.YearTo)
		}
		if f > t {
			return Pattern{}, fmt.Errorf("normalize entry: year_from %d exceeds year_to %d", f, t)
		}
		p.YearFrom, p.YearTo = f, t
	case from != "":
		f, err := strconv.Atoi(from)
		if err != nil {
			return Pattern{}, fmt.Errorf("normalize entry: invalid year_from %q", e.YearFrom)
		}
		p.YearFrom, p.YearTo = f, f
	case to != "":
		t, err := strconv.Atoi(to)
		if err != nil {
			return Pattern{}, fmt.Errorf("normalize entry: invalid year_to %q", e.YearTo)
		}
		p.YearFrom, p.YearTo = t, t
	}

	if p.IsZero() {
		return Pattern{}, fmt.Errorf("normalize entry: no constraints")
	}
	return p, nil
}

// ParsePatterns parses a set of pattern strings, skipping malformed ones
// and reporting how many were skipped. Bad metadata on one product must
// never fail catalog filtering as a whole.
func ParsePatterns(raw []string) (patterns []Pattern, skipped int) {
	for _, s := range raw {
		p, err := ParsePattern(s)
		if err != nil {
			skipped++
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns, skipped
}
