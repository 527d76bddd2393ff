package entities

import "time"

// SubscriptionStatus represents the recurring billing lifecycle.

type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription is the recurring commerce aggregate created during conversion.
// It carries only subscription-type products and recurring fees, the resolved
// billing schedule, and an optional link to the one-time parent order.
//
// Storage model (DynamoDB):
//   - PK: id
//
// ParentOrderID is empty for fully recurring proposals with no upfront charge.
type Subscription struct {
	ID              string             `json:"id"`
	CustomerID      string             `json:"customer_id"`
	ProposalID      string             `json:"proposal_id"`
	ProjectID       string             `json:"project_id,omitempty"`
	ParentOrderID   string             `json:"parent_order_id,omitempty"`
	Status          SubscriptionStatus `json:"status"`
	Schedule        BillingSchedule    `json:"schedule"`
	Lines           []OrderLine        `json:"lines"`
	Total           float64            `json:"total"`
	BillingAddress  *Address           `json:"billing_address,omitempty"`
	ShippingAddress *Address           `json:"shipping_address,omitempty"`
	ProviderRef     string             `json:"provider_ref,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// AddProduct appends a subscription product line.
func (s *Subscription) AddProduct(ref, name string, quantity int, unitPrice float64) {
	amount := unitPrice * float64(quantity)
	s.Lines = append(s.Lines, OrderLine{
		Type:       OrderLineProduct,
		ProductRef: ref,
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Subtotal:   amount,
		Total:      amount,
	})
}

// AddFee appends a recurring fee line from a normalized fee record.
func (s *Subscription) AddFee(f NormalizedFee) {
	s.Lines = append(s.Lines, OrderLine{
		Type:     OrderLineFee,
		Name:     f.Name,
		Subtotal: f.Amount,
		Total:    f.Amount,
		Taxable:  f.Taxable,
		TaxClass: f.TaxClass,
	})
}

// CalculateTotals recomputes the per-cycle total from the lines.
func (s *Subscription) CalculateTotals() {
	total := 0.0
	for _, l := range s.Lines {
		total += l.Total
	}
	s.Total = total
}
