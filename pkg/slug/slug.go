package slug

import (
	"strings"
	"unicode"
)

// Generate creates a canonical identifier from a free-text name: lowercased,
// whitespace runs collapsed to single hyphens, punctuation dropped. Letters
// outside ASCII (e.g. Hebrew registry names) are kept as-is so unmapped
// names still slug deterministically.
//
// Examples:
//   - "Alfa Romeo"  → "alfa-romeo"
//   - "סיאט"        → "סיאט"
//   - "B.M.W."      → "bmw"
func Generate(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := false
	for _, r := range name {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
