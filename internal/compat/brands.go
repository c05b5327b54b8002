package compat

import (
	"strings"

	"github.com/rechevshop/storefront/pkg/slug"
)

// brandNames maps localized registry brand names to canonical catalog
// identifiers. Registry records spell manufacturer names in Hebrew free
// text; catalog patterns use lowercase ASCII slugs.
var brandNames = map[string]string{
	"טויוטה":    "toyota",
	"יונדאי":    "hyundai",
	"קיה":       "kia",
	"מאזדה":     "mazda",
	"מזדה":      "mazda",
	"הונדה":     "honda",
	"סובארו":    "subaru",
	"סוזוקי":    "suzuki",
	"ניסאן":     "nissan",
	"ניסן":      "nissan",
	"מיצובישי":  "mitsubishi",
	"פולקסווגן": "volkswagen",
	"סקודה":     "skoda",
	"סיאט":      "seat",
	"אאודי":     "audi",
	"ב.מ.וו":    "bmw",
	"ב מ וו":    "bmw",
	"מרצדס":     "mercedes",
	"פיגו":      "peugeot",
	"פיג'ו":     "peugeot",
	"סיטרואן":   "citroen",
	"רנו":       "renault",
	"דאציה":     "dacia",
	"דאצ'יה":    "dacia",
	"פורד":      "ford",
	"שברולט":    "chevrolet",
	"אופל":      "opel",
	"פיאט":      "fiat",
	"וולוו":     "volvo",
	"לקסוס":     "lexus",
	"טסלה":      "tesla",
	"צ'רי":      "chery",
	"גילי":      "geely",
	"ג'ילי":     "geely",
}

// modelNames maps localized model names to canonical identifiers for the
// models that appear in curated compatibility patterns.
var modelNames = map[string]string{
	"קורולה":  "corolla",
	"יאריס":   "yaris",
	"קאמרי":   "camry",
	"ראב 4":   "rav4",
	"סיוויק":  "civic",
	"אוקטביה": "octavia",
	"פאביה":   "fabia",
	"גולף":    "golf",
	"פולו":    "polo",
	"טוסון":   "tucson",
	"איוניק":  "ioniq",
	"ספורטאז": "sportage",
	"פיקנטו":  "picanto",
	"מוקה":    "mokka",
	"קליאו":   "clio",
	"מגאן":    "megane",
	"פוקוס":   "focus",
	"פיאסטה":  "fiesta",
}

// fuelNames maps localized registry fuel descriptions to the canonical
// fuel identifiers used in patterns.
var fuelNames = map[string]string{
	"בנזין":       "petrol",
	"דיזל":        "diesel",
	"היבריד":      "hybrid",
	"היברידי":     "hybrid",
	"חשמל":        "electric",
	"חשמלי":       "electric",
	"חשמל/בנזין":  "hybrid",
	"היברידי חשמל": "hybrid",
}

// CanonicalBrand resolves a localized or free-text brand name to its
// canonical identifier. Unmapped names fall back to deterministic slugging
// and simply fail to match any curated pattern; never an error.
func CanonicalBrand(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := brandNames[name]; ok {
		return canonical
	}
	return slug.Generate(name)
}

// CanonicalModel resolves a localized model name to its canonical
// identifier, with the same slug fallback as CanonicalBrand.
func CanonicalModel(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := modelNames[name]; ok {
		return canonical
	}
	return slug.Generate(name)
}

// CanonicalFuel resolves a localized fuel description to one of the
// canonical fuel identifiers. Unmapped values slug through like brands,
// which will not match any pattern fuel.
func CanonicalFuel(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := fuelNames[name]; ok {
		return canonical
	}
	return slug.Generate(name)
}
