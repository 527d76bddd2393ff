package response

import (
	"time"

	"project_billing/internal/domain/entities"
)

type SubscriptionResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	ProposalID      string              `json:"proposal_id"`
	ParentOrderID   string              `json:"parent_order_id,omitempty"`
	Status          string              `json:"status"`
	BillingInterval int                 `json:"billing_interval"`
	BillingPeriod   string              `json:"billing_period"`
	Lines           []OrderLineResponse `json:"lines"`
	Total           float64             `json:"total"`
	ProviderRef     string              `json:"provider_ref,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func FromSubscription(s entities.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		ProposalID:      s.ProposalID,
		ParentOrderID:   s.ParentOrderID,
		Status:          string(s.Status),
		BillingInterval: s.Schedule.Interval,
		BillingPeriod:   s.Schedule.Period,
		Lines:           fromOrderLines(s.Lines),
		Total:           s.Total,
		ProviderRef:     s.ProviderRef,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
