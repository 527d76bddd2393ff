package entities

// Address is a postal billing or shipping address.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	PostCode string `json:"post_code"`
	Country  string `json:"country"`
}

// Customer is the commerce customer profile. Conversion copies its addresses
// onto orders and subscriptions when the proposal carries none.
//
// Storage model (DynamoDB):
//   - PK: id
type Customer struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}
