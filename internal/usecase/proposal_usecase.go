package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidProposalInput = errors.New("invalid proposal input")
	ErrProposalLocked       = errors.New("approved proposals cannot be edited")
)

// IProposalUseCase exposes the proposal lifecycle up to (but excluding)
// conversion: create, edit line items, publish for review, customer approval.

type IProposalUseCase interface {
	Create(ctx context.Context, cmd CreateProposalCommand) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	UpdateLineItems(ctx context.Context, id string, items entities.LineItems) (entities.Proposal, error)
	Publish(ctx context.Context, id, actorID string) (entities.Proposal, error)
	Approve(ctx context.Context, id string) (entities.Proposal, error)
}

type CreateProposalCommand struct {
	Title           string
	Content         string
	AuthorID        string
	CustomerID      string
	RequestID       string
	CostType        entities.CostProposalType
	LineItems       entities.LineItems
	Meta            map[string]string
	BillingAddress  *entities.Address
	ShippingAddress *entities.Address
}

type ProposalUseCase struct {
	repo         interfaces.IProposalRepository
	capabilities interfaces.ICapabilityChecker
}

var _ IProposalUseCase = (*ProposalUseCase)(nil)

func NewProposalUseCase(repo interfaces.IProposalRepository, capabilities interfaces.ICapabilityChecker) *ProposalUseCase {
	return &ProposalUseCase{repo: repo, capabilities: capabilities}
}

func (u *ProposalUseCase) Create(ctx context.Context, cmd CreateProposalCommand) (entities.Proposal, error) {
	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.AuthorID = strings.TrimSpace(cmd.AuthorID)
	cmd.CustomerID = strings.TrimSpace(cmd.CustomerID)
	if cmd.Title == "" || cmd.AuthorID == "" || cmd.CustomerID == "" {
		return entities.Proposal{}, ErrInvalidProposalInput
	}

	switch cmd.CostType {
	case entities.CostProposalTypeNone, entities.CostProposalTypeBudgetEstimates, entities.CostProposalTypeInvoiceLines:
	case "":
		cmd.CostType = entities.CostProposalTypeNone
	default:
		return entities.Proposal{}, ErrInvalidProposalInput
	}

	now := time.Now().UTC()
	p := entities.Proposal{
		ID:              uuid.NewString(),
		RequestID:       cmd.RequestID,
		Title:           cmd.Title,
		Content:         cmd.Content,
		AuthorID:        cmd.AuthorID,
		CustomerID:      cmd.CustomerID,
		Status:          entities.ProposalStatusDraft,
		CostType:        cmd.CostType,
		LineItems:       cmd.LineItems,
		Meta:            cmd.Meta,
		BillingAddress:  cmd.BillingAddress,
		ShippingAddress: cmd.ShippingAddress,
		ConversionState: entities.ConversionStateIdle,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return u.repo.Create(ctx, p)
}

func (u *ProposalUseCase) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

// UpdateLineItems replaces the billing payload. Approved proposals are locked
// so the customer cannot approve one payload and be billed another.
func (u *ProposalUseCase) UpdateLineItems(ctx context.Context, id string, items entities.LineItems) (entities.Proposal, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.Status == entities.ProposalStatusApproved {
		return entities.Proposal{}, ErrProposalLocked
	}

	p.LineItems = items
	p.CostType = entities.CostProposalTypeInvoiceLines
	p.UpdatedAt = time.Now().UTC()
	return u.repo.Update(ctx, p)
}

func (u *ProposalUseCase) Publish(ctx context.Context, id, actorID string) (entities.Proposal, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return entities.Proposal{}, ErrPermissionDenied
	}
	ok, err := u.capabilities.HasCapability(ctx, actorID, interfaces.CapabilityPublishProposals)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !ok {
		return entities.Proposal{}, ErrPermissionDenied
	}

	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.Status != entities.ProposalStatusDraft {
		return entities.Proposal{}, ErrProposalLocked
	}

	p.Status = entities.ProposalStatusPublished
	p.UpdatedAt = time.Now().UTC()
	return u.repo.Update(ctx, p)
}

// Approve records the customer's approval of a published proposal.
func (u *ProposalUseCase) Approve(ctx context.Context, id string) (entities.Proposal, error) {
	p, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.Status != entities.ProposalStatusPublished {
		return entities.Proposal{}, ErrProposalNotApproved
	}

	p.Status = entities.ProposalStatusApproved
	p.UpdatedAt = time.Now().UTC()
	return u.repo.Update(ctx, p)
}
