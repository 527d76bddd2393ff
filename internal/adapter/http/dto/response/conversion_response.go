package response

import "project_billing/internal/usecase"

// ConversionResponse reports a conversion outcome. Billing problems after the
// project exists surface in note/warnings, not as HTTP errors.
type ConversionResponse struct {
	Project        ProjectResponse `json:"project"`
	OrderID        string          `json:"order_id,omitempty"`
	SubscriptionID string          `json:"subscription_id,omitempty"`
	Note           string          `json:"note,omitempty"`
	Warnings       []string        `json:"warnings,omitempty"`
}

func FromConversionResult(r usecase.ConversionResult) ConversionResponse {
	return ConversionResponse{
		Project:        FromProject(r.Project),
		OrderID:        r.OrderID,
		SubscriptionID: r.SubscriptionID,
		Note:           r.Note,
		Warnings:       r.Warnings,
	}
}
