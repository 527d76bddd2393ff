package entities

// ProductType classifies catalog products. Subscription-type products carry
// their own billing cadence and are billed through the subscription, never the
// parent order.

type ProductType string

const (
	ProductTypeSimple                ProductType = "simple"
	ProductTypeSubscription          ProductType = "subscription"
	ProductTypeSubscriptionVariation ProductType = "subscription_variation"
)

// Product is a catalog product resolvable by reference.
//
// Storage model (DynamoDB):
//   - PK: ref
type Product struct {
	Ref             string      `json:"ref"`
	Name            string      `json:"name"`
	Type            ProductType `json:"type"`
	Price           float64     `json:"price"`
	SalePrice       float64     `json:"sale_price,omitempty"`
	BillingInterval int         `json:"billing_interval,omitempty"`
	BillingPeriod   string      `json:"billing_period,omitempty"`
}

// IsSubscription reports whether the product bills on a recurring cadence.
func (p Product) IsSubscription() bool {
	return p.Type == ProductTypeSubscription || p.Type == ProductTypeSubscriptionVariation
}
