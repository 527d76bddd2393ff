package interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// IProjectRepository abstracts DynamoDB persistence for Project.
//
//go:generate mockgen -source=project_repository_interface.go -destination=mocks/project_repository_mock.go -package=mocks

type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	SetStatus(ctx context.Context, id string, status entities.ProjectStatus) error
	SetMeta(ctx context.Context, id string, meta map[string]string) error
}
