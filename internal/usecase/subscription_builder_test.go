package usecase

import (
	"context"
	"errors"
	"testing"

	"project_billing/internal/domain/entities"
	mock_interfaces "project_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestSubscriptionBuilder_Build(t *testing.T) {
	proposal := entities.Proposal{ID: "prop-1", CustomerID: "cust-1"}
	customer := entities.Customer{ID: "cust-1", Email: "buyer@example.com"}

	recurringItems := ValidatedLineItems{
		Products: []ResolvedProductLine{subscriptionLine("plan-a", 3, entities.PeriodWeek)},
		RecurringFees: []entities.RecurringFee{
			{Name: "Support", Amount: 10, Interval: 1, Period: entities.PeriodMonth},
		},
	}

	t.Run("gateway unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		subs := mock_interfaces.NewMockISubscriptionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		b := NewSubscriptionBuilder(subs, gateway, nil)

		gateway.EXPECT().Available().Return(false)

		_, err := b.Build(context.Background(), proposal, recurringItems, customer, "order-1")
		if !errors.Is(err, ErrRecurringBillingUnavailable) {
			t.Fatalf("expected ErrRecurringBillingUnavailable, got %v", err)
		}
	})

	t.Run("nil gateway", func(t *testing.T) {
		b := NewSubscriptionBuilder(nil, nil, nil)
		_, err := b.Build(context.Background(), proposal, recurringItems, customer, "")
		if !errors.Is(err, ErrRecurringBillingUnavailable) {
			t.Fatalf("expected ErrRecurringBillingUnavailable, got %v", err)
		}
	})

	t.Run("creates subscription with recurring content", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		subs := mock_interfaces.NewMockISubscriptionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		b := NewSubscriptionBuilder(subs, gateway, nil)

		gateway.EXPECT().Available().Return(true)
		subs.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Subscription{})).DoAndReturn(
			func(_ context.Context, s entities.Subscription) (entities.Subscription, error) {
				if s.ParentOrderID != "order-1" || s.CustomerID != "cust-1" {
					t.Fatalf("unexpected subscription: %+v", s)
				}
				if s.Status != entities.SubscriptionStatusPending {
					t.Fatalf("expected pending status, got %s", s.Status)
				}
				// plan-a at 10 plus the 10 support fee.
				if len(s.Lines) != 2 || s.Total != 20 {
					t.Fatalf("unexpected lines/total: %+v", s)
				}
				want := entities.BillingSchedule{Interval: 3, Period: entities.PeriodWeek}
				if s.Schedule != want {
					t.Fatalf("expected schedule %+v, got %+v", want, s.Schedule)
				}
				return s, nil
			},
		)
		gateway.EXPECT().CreateRecurringCharge(gomock.Any(), gomock.Any(), "buyer@example.com").Return("mp-1", nil, nil)
		subs.EXPECT().SetProviderRef(gomock.Any(), gomock.Any(), "mp-1").Return(nil)

		got, err := b.Build(context.Background(), proposal, recurringItems, customer, "order-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ProviderRef != "mp-1" {
			t.Fatalf("expected provider ref, got %q", got.ProviderRef)
		}
	})

	t.Run("charge failure rolls back the subscription", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		subs := mock_interfaces.NewMockISubscriptionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		b := NewSubscriptionBuilder(subs, gateway, nil)

		var createdID string
		gateway.EXPECT().Available().Return(true)
		subs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Subscription) (entities.Subscription, error) {
				createdID = s.ID
				return s, nil
			},
		)
		gateway.EXPECT().CreateRecurringCharge(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil, errors.New("provider down"))
		subs.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id string) error {
				if id != createdID {
					t.Fatalf("rollback deleted %q, created %q", id, createdID)
				}
				return nil
			},
		)

		_, err := b.Build(context.Background(), proposal, recurringItems, customer, "")
		if !errors.Is(err, ErrSubscriptionCreation) {
			t.Fatalf("expected ErrSubscriptionCreation, got %v", err)
		}
	})

	t.Run("persist failure wraps ErrSubscriptionCreation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		subs := mock_interfaces.NewMockISubscriptionRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		b := NewSubscriptionBuilder(subs, gateway, nil)

		gateway.EXPECT().Available().Return(true)
		subs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Subscription{}, errors.New("db"))

		_, err := b.Build(context.Background(), proposal, recurringItems, customer, "")
		if !errors.Is(err, ErrSubscriptionCreation) {
			t.Fatalf("expected ErrSubscriptionCreation, got %v", err)
		}
	})
}
