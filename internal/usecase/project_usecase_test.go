package usecase

import (
	"context"
	"errors"
	"testing"

	"project_billing/internal/domain/entities"
	mock_interfaces "project_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestProjectUseCase_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		projects := mock_interfaces.NewMockIProjectRepository(ctrl)
		uc := NewProjectUseCase(projects, nil, nil, nil)

		projects.EXPECT().GetByID(gomock.Any(), "proj-1").Return(entities.Project{}, nil)

		_, err := uc.GetByID(context.Background(), "proj-1")
		if !errors.Is(err, ErrProjectNotFound) {
			t.Fatalf("expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("resolves references", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		projects := mock_interfaces.NewMockIProjectRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		subs := mock_interfaces.NewMockISubscriptionRepository(ctrl)
		uc := NewProjectUseCase(projects, orders, subs, nil)

		projects.EXPECT().GetByID(gomock.Any(), "proj-1").Return(entities.Project{
			ID: "proj-1",
			Meta: map[string]string{
				entities.MetaOrderID:        "order-1",
				entities.MetaSubscriptionID: "sub-1",
			},
		}, nil)
		orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(entities.Order{ID: "order-1", Total: 45}, nil)
		subs.EXPECT().GetByID(gomock.Any(), "sub-1").Return(entities.Subscription{ID: "sub-1", Total: 20}, nil)

		view, err := uc.GetByID(context.Background(), "proj-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Order == nil || view.Order.ID != "order-1" {
			t.Fatalf("expected resolved order, got %+v", view.Order)
		}
		if view.Subscription == nil || view.Subscription.ID != "sub-1" {
			t.Fatalf("expected resolved subscription, got %+v", view.Subscription)
		}
	})

	t.Run("dangling references degrade to notes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		projects := mock_interfaces.NewMockIProjectRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		subs := mock_interfaces.NewMockISubscriptionRepository(ctrl)
		uc := NewProjectUseCase(projects, orders, subs, nil)

		projects.EXPECT().GetByID(gomock.Any(), "proj-1").Return(entities.Project{
			ID: "proj-1",
			Meta: map[string]string{
				entities.MetaOrderID:        "order-gone",
				entities.MetaSubscriptionID: "sub-gone",
			},
		}, nil)
		orders.EXPECT().GetByID(gomock.Any(), "order-gone").Return(entities.Order{}, nil)
		subs.EXPECT().GetByID(gomock.Any(), "sub-gone").Return(entities.Subscription{}, nil)

		view, err := uc.GetByID(context.Background(), "proj-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Order != nil || view.OrderNote == "" {
			t.Fatalf("expected order note, got %+v", view)
		}
		if view.Subscription != nil || view.SubscriptionNote == "" {
			t.Fatalf("expected subscription note, got %+v", view)
		}
	})
}

func TestProjectUseCase_GetOrderAndSubscription(t *testing.T) {
	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewProjectUseCase(nil, orders, nil, nil)

		orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(entities.Order{}, nil)

		_, err := uc.GetOrder(context.Background(), "order-1")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("subscription not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		subs := mock_interfaces.NewMockISubscriptionRepository(ctrl)
		uc := NewProjectUseCase(nil, nil, subs, nil)

		subs.EXPECT().GetByID(gomock.Any(), "sub-1").Return(entities.Subscription{}, nil)

		_, err := uc.GetSubscription(context.Background(), "sub-1")
		if !errors.Is(err, ErrSubscriptionNotFound) {
			t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
		}
	})
}
