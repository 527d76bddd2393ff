package response

import (
	"time"

	"project_billing/internal/domain/entities"
)

type OrderLineResponse struct {
	Type          string  `json:"type"`
	ProductRef    string  `json:"product_ref,omitempty"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity,omitempty"`
	UnitPrice     float64 `json:"unit_price,omitempty"`
	Subtotal      float64 `json:"subtotal"`
	Total         float64 `json:"total"`
	Taxable       bool    `json:"taxable"`
	TaxClass      string  `json:"tax_class,omitempty"`
	ShippingClass string  `json:"shipping_class,omitempty"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	ProposalID      string              `json:"proposal_id"`
	Status          string              `json:"status"`
	Lines           []OrderLineResponse `json:"lines"`
	Total           float64             `json:"total"`
	BillingAddress  *entities.Address   `json:"billing_address,omitempty"`
	ShippingAddress *entities.Address   `json:"shipping_address,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		ProposalID:      o.ProposalID,
		Status:          string(o.Status),
		Lines:           fromOrderLines(o.Lines),
		Total:           o.Total,
		BillingAddress:  o.BillingAddress,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func fromOrderLines(lines []entities.OrderLine) []OrderLineResponse {
	out := make([]OrderLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, OrderLineResponse{
			Type:          string(l.Type),
			ProductRef:    l.ProductRef,
			Name:          l.Name,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Subtotal:      l.Subtotal,
			Total:         l.Total,
			Taxable:       l.Taxable,
			TaxClass:      l.TaxClass,
			ShippingClass: l.ShippingClass,
		})
	}
	return out
}
