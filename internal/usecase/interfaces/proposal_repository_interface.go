package interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// IProposalRepository abstracts DynamoDB persistence for Proposal.
//
// ClaimConversion is the double-conversion guard: a conditional update moving
// conversion_state from idle to in_progress. It returns false when another
// conversion already holds the claim (or the proposal is gone).
//
//go:generate mockgen -source=proposal_repository_interface.go -destination=mocks/proposal_repository_mock.go -package=mocks

type IProposalRepository interface {
	Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	GetByID(ctx context.Context, id string) (entities.Proposal, error)
	Update(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	Delete(ctx context.Context, id string) error
	ClaimConversion(ctx context.Context, id string) (bool, error)
	ReleaseConversion(ctx context.Context, id string) error
}
