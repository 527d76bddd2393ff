package interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// ICustomerRepository abstracts DynamoDB persistence for Customer profiles.
//
//go:generate mockgen -source=customer_repository_interface.go -destination=mocks/customer_repository_mock.go -package=mocks

type ICustomerRepository interface {
	GetByID(ctx context.Context, id string) (entities.Customer, error)
}
