package request

import (
	"strings"

	"project_billing/internal/domain/entities"
)

type AddressPayload struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	State    string `json:"state"`
	PostCode string `json:"post_code"`
	Country  string `json:"country"`
}

func (a *AddressPayload) ToEntity() *entities.Address {
	if a == nil {
		return nil
	}
	return &entities.Address{
		Line1:    a.Line1,
		Line2:    a.Line2,
		City:     a.City,
		State:    a.State,
		PostCode: a.PostCode,
		Country:  a.Country,
	}
}

type ProductLinePayload struct {
	ProductRef string  `json:"product_ref"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	SalePrice  float64 `json:"sale_price"`
	StartDate  string  `json:"start_date"`
}

type OneTimeFeePayload struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	TaxClass string  `json:"tax_class"`
}

type RecurringFeePayload struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	TaxClass  string  `json:"tax_class"`
	Interval  int     `json:"interval"`
	Period    string  `json:"period"`
	StartDate string  `json:"start_date"`
}

type ShippingFeePayload struct {
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	TaxClass      string  `json:"tax_class"`
	ShippingClass string  `json:"shipping_class"`
}

// LineItemsPayload is the four-group billing payload accepted on proposal
// creation and line-item updates. Groups are independent; items are validated
// later, at conversion time, with a skip-and-warn policy.
type LineItemsPayload struct {
	Products      []ProductLinePayload  `json:"products"`
	OneTimeFees   []OneTimeFeePayload   `json:"one_time_fees"`
	RecurringFees []RecurringFeePayload `json:"recurring_fees"`
	ShippingFees  []ShippingFeePayload  `json:"shipping_fees"`
}

func (li LineItemsPayload) ToEntity() entities.LineItems {
	out := entities.LineItems{}
	for _, p := range li.Products {
		out.Products = append(out.Products, entities.ProductLine{
			ProductRef: p.ProductRef,
			Quantity:   p.Quantity,
			UnitPrice:  p.UnitPrice,
			SalePrice:  p.SalePrice,
			StartDate:  p.StartDate,
		})
	}
	for _, f := range li.OneTimeFees {
		out.OneTimeFees = append(out.OneTimeFees, entities.OneTimeFee{
			Name:     f.Name,
			Amount:   f.Amount,
			TaxClass: f.TaxClass,
		})
	}
	for _, f := range li.RecurringFees {
		out.RecurringFees = append(out.RecurringFees, entities.RecurringFee{
			Name:      f.Name,
			Amount:    f.Amount,
			TaxClass:  f.TaxClass,
			Interval:  f.Interval,
			Period:    f.Period,
			StartDate: f.StartDate,
		})
	}
	for _, f := range li.ShippingFees {
		out.ShippingFees = append(out.ShippingFees, entities.ShippingFee{
			Description:   f.Description,
			Amount:        f.Amount,
			TaxClass:      f.TaxClass,
			ShippingClass: f.ShippingClass,
		})
	}
	return out
}

// CreateProposalRequest is the staff-facing payload creating a proposal,
// optionally seeded with a billing payload and meta hints.
type CreateProposalRequest struct {
	Title           string            `json:"title" binding:"required"`
	Content         string            `json:"content"`
	AuthorID        string            `json:"author_id" binding:"required"`
	CustomerID      string            `json:"customer_id" binding:"required"`
	RequestID       string            `json:"request_id"`
	CostType        string            `json:"cost_type"`
	LineItems       *LineItemsPayload `json:"line_items"`
	Meta            map[string]string `json:"meta"`
	BillingAddress  *AddressPayload   `json:"billing_address"`
	ShippingAddress *AddressPayload   `json:"shipping_address"`
}

func (r CreateProposalRequest) ResolveCostType() entities.CostProposalType {
	return entities.CostProposalType(strings.TrimSpace(r.CostType))
}

func (r CreateProposalRequest) ResolveLineItems() entities.LineItems {
	if r.LineItems == nil {
		return entities.LineItems{}
	}
	return r.LineItems.ToEntity()
}

// UpdateLineItemsRequest replaces a proposal's billing payload.
type UpdateLineItemsRequest struct {
	LineItems LineItemsPayload `json:"line_items" binding:"required"`
}
