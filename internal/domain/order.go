package domain

// OrderAddress is the billing/shipping block of an order payload,
// shaped for the external order-creation API.
type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	Postcode  string `json:"postcode,omitempty"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// OrderLineItem is a single purchasable line in the order payload.
type OrderLineItem struct {
	ProductID   int64 `json:"product_id"`
	Quantity    int   `json:"quantity"`
	VariationID int64 `json:"variation_id,omitempty"`
}

// OrderRequest is the order-creation payload handed to the external store.
// Payment itself happens in a hosted third-party iframe; this service only
// creates the pending order.
type OrderRequest struct {
	Billing      OrderAddress    `json:"billing"`
	Shipping     OrderAddress    `json:"shipping"`
	LineItems    []OrderLineItem `json:"line_items"`
	CustomerNote string          `json:"customer_note,omitempty"`
}

// OrderConfirmation is what the external order API returns on success.
type OrderConfirmation struct {
	OrderID    int64  `json:"order_id"`
	Status     string `json:"status"`
	Total      string `json:"total"`
	PaymentURL string `json:"payment_url,omitempty"`
}
