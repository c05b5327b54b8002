package domain

import (
	"github.com/rechevshop/storefront/internal/compat"
	"github.com/rechevshop/storefront/pkg/money"
)

// Product represents a catalog product fetched from the external store API.
type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Price         money.Agorot     `json:"price"`
	PriceDisplay  string           `json:"price_display"`
	ImageURL      string           `json:"image_url,omitempty"`
	InStock       bool             `json:"in_stock"`
	UniversalFit  bool             `json:"universal_fit"`
	Compatibility []compat.Pattern `json:"compatibility,omitempty"`
	Variations    []Variation      `json:"variations,omitempty"`
}

// Variation is a specific purchasable configuration of a product
// (e.g. color or size) with its own price.
type Variation struct {
	ID         int64                `json:"id"`
	Price      money.Agorot         `json:"price"`
	Attributes []VariationAttribute `json:"attributes,omitempty"`
}

// VariationAttribute is a single name/option pair on a variation.
type VariationAttribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}
