package response

import (
	"time"

	"project_billing/internal/domain/entities"
)

type ProposalResponse struct {
	ID              string             `json:"id"`
	RequestID       string             `json:"request_id,omitempty"`
	Title           string             `json:"title"`
	Content         string             `json:"content,omitempty"`
	AuthorID        string             `json:"author_id"`
	CustomerID      string             `json:"customer_id"`
	Status          string             `json:"status"`
	CostType        string             `json:"cost_type"`
	LineItems       entities.LineItems `json:"line_items"`
	Meta            map[string]string  `json:"meta,omitempty"`
	BillingAddress  *entities.Address  `json:"billing_address,omitempty"`
	ShippingAddress *entities.Address  `json:"shipping_address,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func FromProposal(p entities.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:              p.ID,
		RequestID:       p.RequestID,
		Title:           p.Title,
		Content:         p.Content,
		AuthorID:        p.AuthorID,
		CustomerID:      p.CustomerID,
		Status:          string(p.Status),
		CostType:        string(p.CostType),
		LineItems:       p.LineItems,
		Meta:            p.Meta,
		BillingAddress:  p.BillingAddress,
		ShippingAddress: p.ShippingAddress,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
