package request

import "strings"

// SubmitProjectRequestRequest is the customer-facing payload opening a new
// project request.
type SubmitProjectRequestRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	Budget     string `json:"budget"`
	StartDate  string `json:"start_date"`
}

func (r SubmitProjectRequestRequest) ResolveCustomerID() string {
	return strings.TrimSpace(r.CustomerID)
}

func (r SubmitProjectRequestRequest) ResolveTitle() string {
	return strings.TrimSpace(r.Title)
}
