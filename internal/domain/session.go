package domain

// Customer is the profile slice held in the auth session.
type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// AuthSession holds the customer profile plus the opaque bearer token
// issued by the external identity system. Token issuance and verification
// are entirely delegated; this service only stores and forwards it.
type AuthSession struct {
	Token    string   `json:"token"`
	Customer Customer `json:"customer"`
}
