package interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// ISubscriptionRepository abstracts DynamoDB persistence for Subscription.
// Delete exists so a failed recurring-charge setup can roll back the half
// created record instead of leaving an inconsistent subscription behind.
//
//go:generate mockgen -source=subscription_repository_interface.go -destination=mocks/subscription_repository_mock.go -package=mocks

type ISubscriptionRepository interface {
	Create(ctx context.Context, s entities.Subscription) (entities.Subscription, error)
	GetByID(ctx context.Context, id string) (entities.Subscription, error)
	SetProviderRef(ctx context.Context, id, providerRef string) error
	Delete(ctx context.Context, id string) error
}
