package interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// IRequestRepository abstracts DynamoDB persistence for ProjectRequest.
//
//go:generate mockgen -source=request_repository_interface.go -destination=mocks/request_repository_mock.go -package=mocks

type IRequestRepository interface {
	Create(ctx context.Context, r entities.ProjectRequest) (entities.ProjectRequest, error)
	GetByID(ctx context.Context, id string) (entities.ProjectRequest, error)
	MarkAccepted(ctx context.Context, id, proposalID string) (entities.ProjectRequest, error)
}
