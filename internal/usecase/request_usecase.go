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
	ErrInvalidRequestInput = errors.New("invalid project request input")
	ErrRequestNotFound     = errors.New("project request not found")
	ErrRequestNotPending   = errors.New("project request is not pending")
)

// IRequestUseCase exposes the customer-facing project request flow and its
// staff-side conversion into a draft proposal.

type IRequestUseCase interface {
	Submit(ctx context.Context, cmd SubmitRequestCommand) (entities.ProjectRequest, error)
	GetByID(ctx context.Context, id string) (entities.ProjectRequest, error)
	ConvertToProposal(ctx context.Context, requestID, actorID string) (entities.Proposal, error)
}

type SubmitRequestCommand struct {
	CustomerID string
	Title      string
	Content    string
	Budget     string
	StartDate  string
}

type RequestUseCase struct {
	requests     interfaces.IRequestRepository
	proposals    interfaces.IProposalRepository
	capabilities interfaces.ICapabilityChecker
}

var _ IRequestUseCase = (*RequestUseCase)(nil)

func NewRequestUseCase(requests interfaces.IRequestRepository, proposals interfaces.IProposalRepository, capabilities interfaces.ICapabilityChecker) *RequestUseCase {
	return &RequestUseCase{requests: requests, proposals: proposals, capabilities: capabilities}
}

func (u *RequestUseCase) Submit(ctx context.Context, cmd SubmitRequestCommand) (entities.ProjectRequest, error) {
	cmd.CustomerID = strings.TrimSpace(cmd.CustomerID)
	cmd.Title = strings.TrimSpace(cmd.Title)
	if cmd.CustomerID == "" || cmd.Title == "" {
		return entities.ProjectRequest{}, ErrInvalidRequestInput
	}

	now := time.Now().UTC()
	r := entities.ProjectRequest{
		ID:         uuid.NewString(),
		CustomerID: cmd.CustomerID,
		Title:      cmd.Title,
		Content:    cmd.Content,
		Budget:     cmd.Budget,
		StartDate:  cmd.StartDate,
		Status:     entities.RequestStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return u.requests.Create(ctx, r)
}

func (u *RequestUseCase) GetByID(ctx context.Context, id string) (entities.ProjectRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ProjectRequest{}, ErrInvalidRequestInput
	}
	r, err := u.requests.GetByID(ctx, id)
	if err != nil {
		return entities.ProjectRequest{}, err
	}
	if r.ID == "" {
		return entities.ProjectRequest{}, ErrRequestNotFound
	}
	return r, nil
}

// ConvertToProposal turns a pending request into a draft proposal owned by
// the converting staff member, carrying the request's title, content and
// budget hints. The request keeps a back reference to the proposal.
func (u *RequestUseCase) ConvertToProposal(ctx context.Context, requestID, actorID string) (entities.Proposal, error) {
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

	r, err := u.GetByID(ctx, requestID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if r.Status != entities.RequestStatusPending {
		return entities.Proposal{}, ErrRequestNotPending
	}

	meta := map[string]string{}
	if r.Budget != "" {
		meta["_proposal_budget"] = r.Budget
	}
	if r.StartDate != "" {
		meta["_proposal_start_date"] = r.StartDate
	}

	now := time.Now().UTC()
	p := entities.Proposal{
		ID:              uuid.NewString(),
		RequestID:       r.ID,
		Title:           r.Title,
		Content:         r.Content,
		AuthorID:        actorID,
		CustomerID:      r.CustomerID,
		Status:          entities.ProposalStatusDraft,
		CostType:        entities.CostProposalTypeNone,
		Meta:            meta,
		ConversionState: entities.ConversionStateIdle,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := u.proposals.Create(ctx, p)
	if err != nil {
		return entities.Proposal{}, err
	}

	if _, err := u.requests.MarkAccepted(ctx, r.ID, created.ID); err != nil {
		return entities.Proposal{}, err
	}
	return created, nil
}
