package entities

import "time"

// RequestStatus represents the lifecycle of a customer project request.

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// ProjectRequest is a customer-submitted request for a project. Staff convert
// an accepted request into a draft proposal; the request keeps a back
// reference to that proposal.
//
// Storage model (DynamoDB):
//   - PK: id
type ProjectRequest struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Budget     string        `json:"budget,omitempty"`
	StartDate  string        `json:"start_date,omitempty"`
	Status     RequestStatus `json:"status"`
	ProposalID string        `json:"proposal_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
