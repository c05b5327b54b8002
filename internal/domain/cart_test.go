package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechevshop/storefront/pkg/money"
)

func testCart() *Cart {
	return &Cart{
		SessionID: "sess-1",
		Items: []CartItem{
			{
				Product:  ProductRef{ID: 101, Name: "floor mats", Price: money.MustParse("99.90")},
				Quantity: 3,
			},
			{
				Product:  ProductRef{ID: 202, Name: "seat cover", Price: money.MustParse("120.00")},
				Quantity: 2,
				Variation: &Variation{
					ID:    9,
					Price: money.MustParse("49.50"),
					Attributes: []VariationAttribute{
						{Name: "color", Option: "black"},
					},
				},
			},
		},
	}
}

func TestCart_Total_UsesVariationPriceWhenPresent(t *testing.T) {
	c := testCart()
	// 99.90*3 + 49.50*2 = 398.70, exactly.
	assert.Equal(t, money.Agorot(39870), c.Total())
	assert.Equal(t, "398.70", c.Total().String())
}

func TestCart_ItemCount_SumsQuantities(t *testing.T) {
	c := testCart()
	assert.Equal(t, 5, c.ItemCount())
}

func TestCart_FindItemIndex(t *testing.T) {
	c := testCart()

	assert.Equal(t, 0, c.FindItemIndex(101, 0))
	assert.Equal(t, 1, c.FindItemIndex(202, 9))
	// Same product, different variation key: distinct line.
	assert.Equal(t, -1, c.FindItemIndex(202, 0))
	assert.Equal(t, -1, c.FindItemIndex(999, 0))
}

func TestCartItem_VariationID(t *testing.T) {
	c := testCart()
	assert.Equal(t, int64(0), c.Items[0].VariationID())
	assert.Equal(t, int64(9), c.Items[1].VariationID())
}

func TestCart_EmptyTotals(t *testing.T) {
	c := &Cart{SessionID: "sess-2"}
	assert.Equal(t, money.Agorot(0), c.Total())
	assert.Equal(t, 0, c.ItemCount())
}

func TestCart_JSONRoundTripPreservesDerivedValues(t *testing.T) {
	orig := testCart()

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var restored Cart
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, orig.ItemCount(), restored.ItemCount())
	assert.Equal(t, orig.Total(), restored.Total())
	require.Len(t, restored.Items, 2)
	assert.Equal(t, int64(9), restored.Items[1].VariationID())
}
