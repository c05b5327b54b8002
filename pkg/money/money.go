// Package money provides fixed-point arithmetic for prices that are
// transported as decimal strings. Amounts are held in agorot (1/100 ILS)
// so no price ever passes through binary floating point.
package money

import (
	"fmt"
	"strings"
)

// Agorot is a monetary amount in agorot (hundredths of a shekel).
type Agorot int64

// Parse converts a decimal price string such as "99.90" into agorot.
// At most two fraction digits are significant; "99", "99.9" and "99.90"
// are all accepted. The empty string is rejected so callers must decide
// what a missing price means.
func Parse(s string) (Agorot, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse price: empty string")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, fmt.Errorf("parse price: missing digits")
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return 0, fmt.Errorf("parse price %q: multiple decimal points", s)
		}
	}

	var amount int64
	for _, c := range []byte(whole) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("parse price %q: invalid character %q", s, c)
		}
		amount = amount*10 + int64(c-'0')
	}
	amount *= 100

	for i, c := range []byte(frac) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("parse price %q: invalid character %q", s, c)
		}
		switch i {
		case 0:
			amount += int64(c-'0') * 10
		case 1:
			amount += int64(c - '0')
		default:
			// Fraction digits beyond agorot must be zero or the price
			// cannot be represented exactly.
			if c != '0' {
				return 0, fmt.Errorf("parse price %q: more than two fraction digits", s)
			}
		}
	}

	if neg {
		amount = -amount
	}
	return Agorot(amount), nil
}

// MustParse is Parse for static inputs; it panics on malformed price strings.
func MustParse(s string) Agorot {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Mul returns the amount multiplied by a quantity.
func (a Agorot) Mul(qty int) Agorot {
	return a * Agorot(qty)
}

// String formats the amount as a decimal string with two fraction digits.
func (a Agorot) String() string {
	n := int64(a)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%02d", sign, n/100, n%100)
}
