package entities

import "time"

// ProposalStatus represents the lifecycle of a proposal.
//
// Domain notes:
//   - Staff author a proposal (draft), publish it for customer review, and the
//     customer approves it. Approved proposals are consumed exactly once by the
//     conversion flow, which deletes the proposal and leaves a project behind.

type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "draft"
	ProposalStatusPublished ProposalStatus = "published"
	ProposalStatusApproved  ProposalStatus = "approved"
)

// CostProposalType selects how a proposal expresses cost to the customer.
// Only invoice_line_items proposals carry a billable LineItems payload.

type CostProposalType string

const (
	CostProposalTypeNone            CostProposalType = "none"
	CostProposalTypeBudgetEstimates CostProposalType = "budget_estimates"
	CostProposalTypeInvoiceLines    CostProposalType = "invoice_line_items"
)

// ConversionState guards against double-triggering conversion on one proposal.
// Transitions are idle -> in_progress via a conditional update on the store.

type ConversionState string

const (
	ConversionStateIdle       ConversionState = "idle"
	ConversionStateInProgress ConversionState = "in_progress"
)

// Proposal is the staff-authored cost/scope document persisted in DynamoDB.
//
// Storage model:
//   - PK: id
//
// Meta holds free-form key-value pairs; only an allow-listed subset is copied
// onto the project at conversion time (see config.ProposalProjectMetaKeys).
type Proposal struct {
	ID              string           `json:"id"`
	RequestID       string           `json:"request_id,omitempty"`
	Title           string           `json:"title"`
	Content         string           `json:"content"`
	AuthorID        string           `json:"author_id"`
	CustomerID      string           `json:"customer_id"`
	Status          ProposalStatus   `json:"status"`
	CostType        CostProposalType `json:"cost_type"`
	LineItems       LineItems        `json:"line_items"`
	Meta            map[string]string `json:"meta,omitempty"`
	BillingAddress  *Address         `json:"billing_address,omitempty"`
	ShippingAddress *Address         `json:"shipping_address,omitempty"`
	ConversionState ConversionState  `json:"conversion_state"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// LineItems is the four-group billing payload attached to an
// invoice-line-items proposal. Groups are independent and each may be empty.
type LineItems struct {
	Products      []ProductLine  `json:"products,omitempty"`
	OneTimeFees   []OneTimeFee   `json:"one_time_fees,omitempty"`
	RecurringFees []RecurringFee `json:"recurring_fees,omitempty"`
	ShippingFees  []ShippingFee  `json:"shipping_fees,omitempty"`
}

// IsEmpty reports whether no group carries any item.
func (li LineItems) IsEmpty() bool {
	return len(li.Products) == 0 &&
		len(li.OneTimeFees) == 0 &&
		len(li.RecurringFees) == 0 &&
		len(li.ShippingFees) == 0
}

// ProductLine references a catalog product at a quantity and price. SalePrice,
// when positive, takes precedence over UnitPrice.
type ProductLine struct {
	ProductRef      string  `json:"product_ref"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	SalePrice       float64 `json:"sale_price,omitempty"`
	ProductTypeHint string  `json:"product_type_hint,omitempty"`
	StartDate       string  `json:"start_date,omitempty"`
}

// EffectiveUnitPrice returns sale price when set, else the unit price.
func (p ProductLine) EffectiveUnitPrice() float64 {
	if p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.UnitPrice
}

type OneTimeFee struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	TaxClass string  `json:"tax_class,omitempty"`
}

type RecurringFee struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	TaxClass  string  `json:"tax_class,omitempty"`
	Interval  int     `json:"interval,omitempty"`
	Period    string  `json:"period,omitempty"`
	StartDate string  `json:"start_date,omitempty"`
}

type ShippingFee struct {
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	TaxClass      string  `json:"tax_class,omitempty"`
	ShippingClass string  `json:"shipping_class,omitempty"`
}

// Billing periods accepted on recurring fees and subscription products.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// BillingSchedule is the single authoritative recurring cadence of a proposal.
type BillingSchedule struct {
	Interval int    `json:"interval"`
	Period   string `json:"period"`
}

// DefaultBillingSchedule is the fallback when nothing on the proposal
// carries a valid cadence.
func DefaultBillingSchedule() BillingSchedule {
	return BillingSchedule{Interval: 1, Period: PeriodMonth}
}

// ValidPeriod reports whether p is one of day/week/month/year.
func ValidPeriod(p string) bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// ValidInterval reports whether n is within the supported 1..6 range.
func ValidInterval(n int) bool {
	return n >= 1 && n <= 6
}
