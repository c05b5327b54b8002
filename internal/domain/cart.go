package domain

import (
	"time"

	"github.com/rechevshop/storefront/pkg/money"
)

// ProductRef is the slice of product data a cart line item carries.
type ProductRef struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Price    money.Agorot `json:"price"`
	ImageURL string       `json:"image_url,omitempty"`
}

// CartItem is a single cart line. Its identity is the composite
// (product ID, variation ID) key; no two items in a cart share it.
type CartItem struct {
	Product   ProductRef `json:"product"`
	Quantity  int        `json:"quantity"`
	Variation *Variation `json:"variation,omitempty"`
}

// VariationID returns the variation component of the line-item key,
// zero when the item has no variation.
func (i CartItem) VariationID() int64 {
	if i.Variation == nil {
		return 0
	}
	return i.Variation.ID
}

// UnitPrice returns the variation price when a variation is present,
// the product price otherwise.
func (i CartItem) UnitPrice() money.Agorot {
	if i.Variation != nil {
		return i.Variation.Price
	}
	return i.Product.Price
}

// Cart is the per-session shopping cart.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FindItemIndex returns the index of the item matching the given
// (product ID, variation ID) key, or -1 if not found.
func (c *Cart) FindItemIndex(productID, variationID int64) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID && c.Items[i].VariationID() == variationID {
			return i
		}
	}
	return -1
}

// Total sums unit price times quantity across all items, in agorot.
func (c *Cart) Total() money.Agorot {
	var total money.Agorot
	for _, item := range c.Items {
		total += item.UnitPrice().Mul(item.Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities, not the number of distinct lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
