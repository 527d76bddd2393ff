package entities

import "time"

// ProjectStatus is the project's workboard status term.

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "not-started"
	ProjectStatusActive     ProjectStatus = "active"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// Meta keys written by the conversion flow. Order/subscription references are
// plain metadata, not foreign keys: a dangling reference is tolerated and the
// project view degrades to a "not found" placeholder.
const (
	MetaOrderID        = "_order_id"
	MetaSubscriptionID = "_subscription_id"
	MetaConversionNote = "_conversion_note"
	MetaConversionErr  = "_conversion_error"
)

// Project is the destination entity of a proposal conversion.
//
// Storage model (DynamoDB):
//   - PK: id
type Project struct {
	ID         string            `json:"id"`
	ProposalID string            `json:"proposal_id"`
	CustomerID string            `json:"customer_id"`
	AuthorID   string            `json:"author_id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Status     ProjectStatus     `json:"status"`
	Meta       map[string]string `json:"meta,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
