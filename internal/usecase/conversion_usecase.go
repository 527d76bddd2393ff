package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidProposalID    = errors.New("invalid proposal id")
	ErrProposalNotFound     = errors.New("proposal not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrProposalNotApproved  = errors.New("proposal is not published or approved")
	ErrConversionInProgress = errors.New("proposal conversion already in progress or done")
	ErrCustomerNotFound     = errors.New("customer not found")
)

// ConversionResult reports the outcome of a proposal conversion. Billing
// failures after the project exists are not errors: they surface here as the
// note/warnings recorded on the project.
type ConversionResult struct {
	Project        entities.Project
	OrderID        string
	SubscriptionID string
	Note           string
	Warnings       []string
}

// IConversionUseCase drives the proposal → project transition.

type IConversionUseCase interface {
	ConvertToProject(ctx context.Context, proposalID, actorID string) (ConversionResult, error)
}

// ConversionUseCase is the conversion state machine. The transition is:
//
//  1. capability and status gates (fatal, nothing created);
//  2. line-item validation (fatal when nothing billable survives);
//  3. conversion claim (conditional update, loses gracefully to a racer);
//  4. project creation with the allow-listed meta copy;
//  5. billing: parent order (when one-time content exists), then
//     subscription (when recurring content exists), linked to the order;
//  6. outcome note persisted as project meta;
//  7. unconditional proposal deletion.
//
// The failure policy is asymmetric: an order failure is recorded as a project
// error and skips the subscription; a subscription failure is recorded as a
// warning and keeps the order. Neither rolls back the project, and the
// proposal is deleted whenever the project was created.
type ConversionUseCase struct {
	proposals    interfaces.IProposalRepository
	projects     interfaces.IProjectRepository
	customers    interfaces.ICustomerRepository
	capabilities interfaces.ICapabilityChecker
	gateway      interfaces.IPaymentGateway
	validator    *LineItemValidator
	orderBuilder *OrderBuilder
	subBuilder   *SubscriptionBuilder
	metaKeys     map[string]string
	log          interfaces.IAuditLogger
}

var _ IConversionUseCase = (*ConversionUseCase)(nil)

func NewConversionUseCase(
	proposals interfaces.IProposalRepository,
	projects interfaces.IProjectRepository,
	customers interfaces.ICustomerRepository,
	capabilities interfaces.ICapabilityChecker,
	gateway interfaces.IPaymentGateway,
	validator *LineItemValidator,
	orderBuilder *OrderBuilder,
	subBuilder *SubscriptionBuilder,
	metaKeys map[string]string,
	log interfaces.IAuditLogger,
) *ConversionUseCase {
	if log == nil {
		log = interfaces.NopAuditLogger{}
	}
	return &ConversionUseCase{
		proposals:    proposals,
		projects:     projects,
		customers:    customers,
		capabilities: capabilities,
		gateway:      gateway,
		validator:    validator,
		orderBuilder: orderBuilder,
		subBuilder:   subBuilder,
		metaKeys:     metaKeys,
		log:          log,
	}
}

func (u *ConversionUseCase) ConvertToProject(ctx context.Context, proposalID, actorID string) (ConversionResult, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return ConversionResult{}, ErrInvalidProposalID
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return ConversionResult{}, ErrPermissionDenied
	}

	ok, err := u.capabilities.HasCapability(ctx, actorID, interfaces.CapabilityPublishProposals)
	if err != nil {
		return ConversionResult{}, err
	}
	if !ok {
		u.log.Warn(interfaces.ComponentConversion, "actor %s lacks %s, conversion refused proposal_id=%s",
			actorID, interfaces.CapabilityPublishProposals, proposalID)
		return ConversionResult{}, ErrPermissionDenied
	}

	proposal, err := u.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return ConversionResult{}, err
	}
	if proposal.ID == "" {
		return ConversionResult{}, ErrProposalNotFound
	}
	if proposal.Status != entities.ProposalStatusPublished && proposal.Status != entities.ProposalStatusApproved {
		return ConversionResult{}, ErrProposalNotApproved
	}

	// Validate up front: an invoice proposal with nothing billable fails the
	// whole transition before any side effect.
	var items ValidatedLineItems
	billable := proposal.CostType == entities.CostProposalTypeInvoiceLines
	if billable {
		items, err = u.validator.Validate(ctx, proposal.LineItems)
		if err != nil {
			return ConversionResult{}, err
		}
	}

	customer, err := u.customers.GetByID(ctx, proposal.CustomerID)
	if err != nil {
		return ConversionResult{}, err
	}
	if customer.ID == "" {
		return ConversionResult{}, ErrCustomerNotFound
	}

	claimed, err := u.proposals.ClaimConversion(ctx, proposalID)
	if err != nil {
		return ConversionResult{}, err
	}
	if !claimed {
		u.log.Warn(interfaces.ComponentConversion, "conversion claim lost proposal_id=%s", proposalID)
		return ConversionResult{}, ErrConversionInProgress
	}

	project, err := u.createProject(ctx, proposal)
	if err != nil {
		if relErr := u.proposals.ReleaseConversion(ctx, proposalID); relErr != nil {
			u.log.Error(interfaces.ComponentConversion, "claim release failed proposal_id=%s err=%v", proposalID, relErr)
		}
		return ConversionResult{}, err
	}
	u.log.Info(interfaces.ComponentConversion, "project created project_id=%s proposal_id=%s", project.ID, proposalID)

	result := ConversionResult{Project: project}
	if billable {
		u.runBilling(ctx, proposal, items, customer, &result)
	} else {
		result.Note = "no invoice line items; billing skipped"
	}
	u.persistOutcome(ctx, &result)

	// The project is now the system of record; the proposal is deleted even
	// when billing failed.
	if err := u.proposals.Delete(ctx, proposalID); err != nil {
		u.log.Warn(interfaces.ComponentConversion, "proposal delete failed proposal_id=%s err=%v", proposalID, err)
	}

	return result, nil
}

func (u *ConversionUseCase) createProject(ctx context.Context, proposal entities.Proposal) (entities.Project, error) {
	now := time.Now().UTC()
	project := entities.Project{
		ID:         uuid.NewString(),
		ProposalID: proposal.ID,
		CustomerID: proposal.CustomerID,
		AuthorID:   proposal.AuthorID,
		Title:      proposal.Title,
		Content:    proposal.Content,
		Status:     entities.ProjectStatusNotStarted,
		Meta:       map[string]string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for from, to := range u.metaKeys {
		if v, ok := proposal.Meta[from]; ok && v != "" {
			project.Meta[to] = v
		}
	}
	return u.projects.Create(ctx, project)
}

func (u *ConversionUseCase) runBilling(ctx context.Context, proposal entities.Proposal, items ValidatedLineItems, customer entities.Customer, result *ConversionResult) {
	var notes []string

	orderFailed := false
	if items.HasOneTimeContent() {
		order, err := u.orderBuilder.Build(ctx, proposal, items, customer)
		if err != nil {
			orderFailed = true
			result.Project.Meta[entities.MetaConversionErr] = err.Error()
			u.log.Error(interfaces.ComponentConversion, "order creation failed project_id=%s err=%v", result.Project.ID, err)
			notes = append(notes, fmt.Sprintf("order creation failed: %v", err))
		} else {
			result.OrderID = order.ID
			notes = append(notes, fmt.Sprintf("order %s created (total %.2f)", order.ID, order.Total))
			u.chargeOrder(ctx, order, customer, result)
		}
	}

	if items.HasRecurringContent() {
		if orderFailed {
			// The subscription would need the parent order; without it the
			// recurring half is reported, not attempted.
			notes = append(notes, "subscription skipped: parent order creation failed")
			result.Warnings = append(result.Warnings, "subscription skipped: parent order creation failed")
		} else {
			sub, err := u.subBuilder.Build(ctx, proposal, items, customer, result.OrderID)
			if err != nil {
				// Subscription failures are tolerated: keep the order, record
				// a warning on the project.
				warning := fmt.Sprintf("subscription creation failed: %v", err)
				result.Warnings = append(result.Warnings, warning)
				notes = append(notes, warning)
				u.log.Warn(interfaces.ComponentConversion, "subscription creation failed project_id=%s err=%v", result.Project.ID, err)
			} else {
				result.SubscriptionID = sub.ID
				notes = append(notes, fmt.Sprintf("subscription %s created (%.2f every %d %s)",
					sub.ID, sub.Total, sub.Schedule.Interval, sub.Schedule.Period))
			}
		}
	}

	result.Note = strings.Join(notes, "; ")
}

// chargeOrder collects the upfront payment when the charging backend is
// configured. Best-effort: the order stands either way.
func (u *ConversionUseCase) chargeOrder(ctx context.Context, order entities.Order, customer entities.Customer, result *ConversionResult) {
	if u.gateway == nil || !u.gateway.Available() {
		return
	}
	ref, _, err := u.gateway.ChargeOrder(ctx, order, customer.Email)
	if err != nil {
		u.log.Warn(interfaces.ComponentCheckout, "upfront charge failed order_id=%s err=%v", order.ID, err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("upfront charge failed: %v", err))
		return
	}
	u.log.Info(interfaces.ComponentCheckout, "upfront charge created order_id=%s provider_ref=%s", order.ID, ref)
}

func (u *ConversionUseCase) persistOutcome(ctx context.Context, result *ConversionResult) {
	meta := map[string]string{}
	if result.OrderID != "" {
		meta[entities.MetaOrderID] = result.OrderID
		result.Project.Meta[entities.MetaOrderID] = result.OrderID
	}
	if result.SubscriptionID != "" {
		meta[entities.MetaSubscriptionID] = result.SubscriptionID
		result.Project.Meta[entities.MetaSubscriptionID] = result.SubscriptionID
	}
	if result.Note != "" {
		meta[entities.MetaConversionNote] = result.Note
		result.Project.Meta[entities.MetaConversionNote] = result.Note
	}
	if v, ok := result.Project.Meta[entities.MetaConversionErr]; ok {
		meta[entities.MetaConversionErr] = v
	}
	if len(meta) == 0 {
		return
	}
	if err := u.projects.SetMeta(ctx, result.Project.ID, meta); err != nil {
		u.log.Error(interfaces.ComponentConversion, "outcome meta not persisted project_id=%s err=%v", result.Project.ID, err)
	}
}
