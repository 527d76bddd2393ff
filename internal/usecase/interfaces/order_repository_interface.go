package interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for the one-time parent
// Order aggregate.
//
//go:generate mockgen -source=order_repository_interface.go -destination=mocks/order_repository_mock.go -package=mocks

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
}
