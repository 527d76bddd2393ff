package response

import (
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"
)

type ProjectResponse struct {
	ID         string            `json:"id"`
	ProposalID string            `json:"proposal_id"`
	CustomerID string            `json:"customer_id"`
	AuthorID   string            `json:"author_id"`
	Title      string            `json:"title"`
	Content    string            `json:"content,omitempty"`
	Status     string            `json:"status"`
	Meta       map[string]string `json:"meta,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func FromProject(p entities.Project) ProjectResponse {
	return ProjectResponse{
		ID:         p.ID,
		ProposalID: p.ProposalID,
		CustomerID: p.CustomerID,
		AuthorID:   p.AuthorID,
		Title:      p.Title,
		Content:    p.Content,
		Status:     string(p.Status),
		Meta:       p.Meta,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ProjectViewResponse is a project with its commerce references resolved.
// A dangling reference renders as a note instead of the missing aggregate.
type ProjectViewResponse struct {
	Project          ProjectResponse       `json:"project"`
	Order            *OrderResponse        `json:"order,omitempty"`
	OrderNote        string                `json:"order_note,omitempty"`
	Subscription     *SubscriptionResponse `json:"subscription,omitempty"`
	SubscriptionNote string                `json:"subscription_note,omitempty"`
}

func FromProjectView(v usecase.ProjectView) ProjectViewResponse {
	out := ProjectViewResponse{
		Project:          FromProject(v.Project),
		OrderNote:        v.OrderNote,
		SubscriptionNote: v.SubscriptionNote,
	}
	if v.Order != nil {
		o := FromOrder(*v.Order)
		out.Order = &o
	}
	if v.Subscription != nil {
		s := FromSubscription(*v.Subscription)
		out.Subscription = &s
	}
	return out
}
