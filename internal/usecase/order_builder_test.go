package usecase

import (
	"context"
	"errors"
	"testing"

	"project_billing/internal/domain/entities"
	mock_interfaces "project_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestOrderBuilder_Build(t *testing.T) {
	proposal := entities.Proposal{
		ID:         "prop-1",
		CustomerID: "cust-1",
		BillingAddress: &entities.Address{
			Line1: "1 Main St", City: "Springfield", PostCode: "12345", Country: "US",
		},
	}
	customer := entities.Customer{
		ID:    "cust-1",
		Email: "buyer@example.com",
		ShippingAddress: &entities.Address{
			Line1: "2 Side St", City: "Springfield", PostCode: "12345", Country: "US",
		},
	}

	t.Run("builds order from one-time content", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		b := NewOrderBuilder(orders, nil)

		items := ValidatedLineItems{
			Products: []ResolvedProductLine{
				{
					Line:    entities.ProductLine{ProductRef: "sku-1", Quantity: 2, UnitPrice: 10},
					Product: entities.Product{Ref: "sku-1", Name: "Widget", Type: entities.ProductTypeSimple, Price: 12},
				},
				subscriptionLine("plan-a", 1, entities.PeriodMonth),
			},
			OneTimeFees:  []entities.OneTimeFee{{Name: "Setup", Amount: 20}},
			ShippingFees: []entities.ShippingFee{{Description: "Courier", Amount: 5, ShippingClass: "express"}},
		}

		orders.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Order{})).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if o.ID == "" || o.CustomerID != "cust-1" || o.ProposalID != "prop-1" {
					t.Fatalf("unexpected order: %+v", o)
				}
				if o.Status != entities.OrderStatusPending {
					t.Fatalf("expected pending status, got %s", o.Status)
				}
				// 2x10 product + 20 fee + 5 shipping; the subscription product
				// stays off the parent order.
				if len(o.Lines) != 3 {
					t.Fatalf("expected 3 lines, got %d: %+v", len(o.Lines), o.Lines)
				}
				if o.Total != 45 {
					t.Fatalf("expected total 45, got %.2f", o.Total)
				}
				if o.Lines[2].Name != "Courier (Shipping)" || o.Lines[2].ShippingClass != "express" {
					t.Fatalf("unexpected shipping line: %+v", o.Lines[2])
				}
				if o.BillingAddress == nil || o.BillingAddress.Line1 != "1 Main St" {
					t.Fatalf("expected proposal billing address, got %+v", o.BillingAddress)
				}
				if o.ShippingAddress == nil || o.ShippingAddress.Line1 != "2 Side St" {
					t.Fatalf("expected customer shipping fallback, got %+v", o.ShippingAddress)
				}
				return o, nil
			},
		)

		got, err := b.Build(context.Background(), proposal, items, customer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Total != 45 {
			t.Fatalf("expected total 45, got %.2f", got.Total)
		}
	})

	t.Run("sale price wins over unit price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		b := NewOrderBuilder(orders, nil)

		items := ValidatedLineItems{
			Products: []ResolvedProductLine{
				{
					Line:    entities.ProductLine{ProductRef: "sku-1", Quantity: 1, UnitPrice: 10, SalePrice: 8},
					Product: entities.Product{Ref: "sku-1", Name: "Widget", Type: entities.ProductTypeSimple, Price: 12},
				},
			},
		}

		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if o.Lines[0].UnitPrice != 8 {
					t.Fatalf("expected sale price 8, got %.2f", o.Lines[0].UnitPrice)
				}
				return o, nil
			},
		)

		if _, err := b.Build(context.Background(), proposal, items, customer); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("catalog price fills a zero line price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		b := NewOrderBuilder(orders, nil)

		items := ValidatedLineItems{
			Products: []ResolvedProductLine{
				{
					Line:    entities.ProductLine{ProductRef: "sku-1", Quantity: 3},
					Product: entities.Product{Ref: "sku-1", Name: "Widget", Type: entities.ProductTypeSimple, Price: 12},
				},
			},
		}

		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if o.Lines[0].UnitPrice != 12 || o.Total != 36 {
					t.Fatalf("expected catalog price 12 (total 36), got %+v", o.Lines[0])
				}
				return o, nil
			},
		)

		if _, err := b.Build(context.Background(), proposal, items, customer); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("persist failure wraps ErrOrderCreation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		b := NewOrderBuilder(orders, nil)

		items := ValidatedLineItems{OneTimeFees: []entities.OneTimeFee{{Name: "Setup", Amount: 20}}}
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Order{}, errors.New("db"))

		_, err := b.Build(context.Background(), proposal, items, customer)
		if !errors.Is(err, ErrOrderCreation) {
			t.Fatalf("expected ErrOrderCreation, got %v", err)
		}
	})
}
