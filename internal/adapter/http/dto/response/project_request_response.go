package response

import (
	"time"

	"project_billing/internal/domain/entities"
)

type ProjectRequestResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	Budget     string    `json:"budget,omitempty"`
	StartDate  string    `json:"start_date,omitempty"`
	Status     string    `json:"status"`
	ProposalID string    `json:"proposal_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromProjectRequest(r entities.ProjectRequest) ProjectRequestResponse {
	return ProjectRequestResponse{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Title:      r.Title,
		Content:    r.Content,
		Budget:     r.Budget,
		StartDate:  r.StartDate,
		Status:     string(r.Status),
		ProposalID: r.ProposalID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
