package entities

import "time"

// OrderStatus represents the order's payment lifecycle.

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// NormalizedFee is the canonical fee record attached to orders and
// subscriptions. Taxable and TaxClass follow the standard convention:
// a non-taxable fee carries an empty tax class, and the "standard" rate is
// also expressed as an empty tax class with Taxable set.
type NormalizedFee struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Taxable  bool    `json:"taxable"`
	TaxClass string  `json:"tax_class"`
}

// OrderLineType discriminates order line entries.

type OrderLineType string

const (
	OrderLineProduct  OrderLineType = "product"
	OrderLineFee      OrderLineType = "fee"
	OrderLineShipping OrderLineType = "shipping"
)

// OrderLine is one billable line on an order. Product lines carry quantity and
// unit price; fee and shipping lines carry the normalized fee amount.
type OrderLine struct {
	Type          OrderLineType `json:"type"`
	ProductRef    string        `json:"product_ref,omitempty"`
	Name          string        `json:"name"`
	Quantity      int           `json:"quantity,omitempty"`
	UnitPrice     float64       `json:"unit_price,omitempty"`
	Subtotal      float64       `json:"subtotal"`
	Total         float64       `json:"total"`
	Taxable       bool          `json:"taxable"`
	TaxClass      string        `json:"tax_class,omitempty"`
	ShippingClass string        `json:"shipping_class,omitempty"`
}

// Order is the one-time parent commerce order created during conversion. It
// captures all non-subscription products, one-time fees and shipping fees of
// a proposal. Created once per conversion, never recreated.
//
// Storage model (DynamoDB):
//   - PK: id
//
// ProposalID/ProjectID are back references kept as metadata, not enforced keys.
type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	ProposalID      string      `json:"proposal_id"`
	ProjectID       string      `json:"project_id,omitempty"`
	Status          OrderStatus `json:"status"`
	Lines           []OrderLine `json:"lines"`
	Total           float64     `json:"total"`
	BillingAddress  *Address    `json:"billing_address,omitempty"`
	ShippingAddress *Address    `json:"shipping_address,omitempty"`
	ProviderRef     string      `json:"provider_ref,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// AddProduct appends a product line; subtotal and total are unit*quantity.
func (o *Order) AddProduct(ref, name string, quantity int, unitPrice float64) {
	amount := unitPrice * float64(quantity)
	o.Lines = append(o.Lines, OrderLine{
		Type:       OrderLineProduct,
		ProductRef: ref,
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Subtotal:   amount,
		Total:      amount,
	})
}

// AddFee appends a fee line from a normalized fee record.
func (o *Order) AddFee(f NormalizedFee) {
	o.Lines = append(o.Lines, OrderLine{
		Type:     OrderLineFee,
		Name:     f.Name,
		Subtotal: f.Amount,
		Total:    f.Amount,
		Taxable:  f.Taxable,
		TaxClass: f.TaxClass,
	})
}

// AddShipping appends a shipping line from a normalized fee record.
func (o *Order) AddShipping(f NormalizedFee, shippingClass string) {
	o.Lines = append(o.Lines, OrderLine{
		Type:          OrderLineShipping,
		Name:          f.Name,
		Subtotal:      f.Amount,
		Total:         f.Amount,
		Taxable:       f.Taxable,
		TaxClass:      f.TaxClass,
		ShippingClass: shippingClass,
	})
}

// CalculateTotals recomputes the order total from its lines. Totals are
// tax-exclusive; each line keeps its taxable flag and tax class for the
// downstream tax engine.
func (o *Order) CalculateTotals() {
	total := 0.0
	for _, l := range o.Lines {
		total += l.Total
	}
	o.Total = total
}
