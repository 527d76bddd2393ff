package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"project_billing/internal/domain/entities"
	mock_interfaces "project_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type conversionFixture struct {
	proposals    *mock_interfaces.MockIProposalRepository
	projects     *mock_interfaces.MockIProjectRepository
	customers    *mock_interfaces.MockICustomerRepository
	capabilities *mock_interfaces.MockICapabilityChecker
	gateway      *mock_interfaces.MockIPaymentGateway
	catalog      *mock_interfaces.MockIProductCatalog
	orders       *mock_interfaces.MockIOrderRepository
	subs         *mock_interfaces.MockISubscriptionRepository
	uc           *ConversionUseCase
}

func newConversionFixture(t *testing.T, ctrl *gomock.Controller) *conversionFixture {
	t.Helper()
	f := &conversionFixture{
		proposals:    mock_interfaces.NewMockIProposalRepository(ctrl),
		projects:     mock_interfaces.NewMockIProjectRepository(ctrl),
		customers:    mock_interfaces.NewMockICustomerRepository(ctrl),
		capabilities: mock_interfaces.NewMockICapabilityChecker(ctrl),
		gateway:      mock_interfaces.NewMockIPaymentGateway(ctrl),
		catalog:      mock_interfaces.NewMockIProductCatalog(ctrl),
		orders:       mock_interfaces.NewMockIOrderRepository(ctrl),
		subs:         mock_interfaces.NewMockISubscriptionRepository(ctrl),
	}
	f.uc = NewConversionUseCase(
		f.proposals,
		f.projects,
		f.customers,
		f.capabilities,
		f.gateway,
		NewLineItemValidator(f.catalog, nil),
		NewOrderBuilder(f.orders, nil),
		NewSubscriptionBuilder(f.subs, f.gateway, nil),
		map[string]string{"_proposal_budget": "_project_budget"},
		nil,
	)
	return f
}

func approvedProposal() entities.Proposal {
	return entities.Proposal{
		ID:         "prop-1",
		Title:      "Website build",
		Content:    "scope",
		AuthorID:   "staff-1",
		CustomerID: "cust-1",
		Status:     entities.ProposalStatusApproved,
		CostType:   entities.CostProposalTypeInvoiceLines,
		Meta:       map[string]string{"_proposal_budget": "5000", "_private_note": "hidden"},
		LineItems: entities.LineItems{
			Products: []entities.ProductLine{
				{ProductRef: "sku-1", Quantity: 2, UnitPrice: 10},
				{ProductRef: "plan-a", Quantity: 1},
			},
			OneTimeFees:   []entities.OneTimeFee{{Name: "Setup", Amount: 20}},
			RecurringFees: []entities.RecurringFee{{Name: "Support", Amount: 10, Interval: 1, Period: entities.PeriodMonth}},
			ShippingFees:  []entities.ShippingFee{{Description: "Courier", Amount: 5}},
		},
		ConversionState: entities.ConversionStateIdle,
	}
}

func (f *conversionFixture) expectCatalog() {
	f.catalog.EXPECT().GetByRef(gomock.Any(), "sku-1").
		Return(entities.Product{Ref: "sku-1", Name: "Widget", Type: entities.ProductTypeSimple, Price: 10}, nil)
	f.catalog.EXPECT().GetByRef(gomock.Any(), "plan-a").
		Return(entities.Product{Ref: "plan-a", Name: "Care Plan", Type: entities.ProductTypeSubscription, Price: 10, BillingInterval: 1, BillingPeriod: entities.PeriodMonth}, nil)
}

func TestConversionUseCase_Gates(t *testing.T) {
	t.Run("invalid proposal id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newConversionFixture(t, ctrl)

		_, err := f.uc.ConvertToProject(context.Background(), "   ", "staff-1")
		if !errors.Is(err, ErrInvalidProposalID) {
			t.Fatalf("expected ErrInvalidProposalID, got %v", err)
		}
	})

	t.Run("missing actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newConversionFixture(t, ctrl)

		_, err := f.uc.ConvertToProject(context.Background(), "prop-1", "")
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})

	t.Run("capability denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newConversionFixture(t, ctrl)

		f.capabilities.EXPECT().HasCapability(gomock.Any(), "intruder", "publish_proposals").Return(false, nil)

		_, err := f.uc.ConvertToProject(context.Background(), "prop-1", "intruder")
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})

	t.Run("proposal not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newConversionFixture(t, ctrl)

		f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
		f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(entities.Proposal{}, nil)

		_, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
		if !errors.Is(err, ErrProposalNotFound) {
			t.Fatalf("expected ErrProposalNotFound, got %v", err)
		}
	})

	t.Run("draft proposal refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newConversionFixture(t, ctrl)

		p := approvedProposal()
		p.Status = entities.ProposalStatusDraft
		f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
		f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(p, nil)

		_, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
		if !errors.Is(err, ErrProposalNotApproved) {
			t.Fatalf("expected ErrProposalNotApproved, got %v", err)
		}
	})

	t.Run("empty billing payload fails before side effects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newConversionFixture(t, ctrl)

		p := approvedProposal()
		p.LineItems = entities.LineItems{OneTimeFees: []entities.OneTimeFee{{Name: "", Amount: 0}}}
		f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
		f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(p, nil)

		_, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
		if !errors.Is(err, ErrEmptyProposal) {
			t.Fatalf("expected ErrEmptyProposal, got %v", err)
		}
	})

	t.Run("claim lost to a concurrent conversion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newConversionFixture(t, ctrl)

		f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
		f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(approvedProposal(), nil)
		f.expectCatalog()
		f.customers.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{ID: "cust-1"}, nil)
		f.proposals.EXPECT().ClaimConversion(gomock.Any(), "prop-1").Return(false, nil)

		_, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
		if !errors.Is(err, ErrConversionInProgress) {
			t.Fatalf("expected ErrConversionInProgress, got %v", err)
		}
	})

	t.Run("customer not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newConversionFixture(t, ctrl)

		f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
		f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(approvedProposal(), nil)
		f.expectCatalog()
		f.customers.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{}, nil)

		_, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
		if !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})
}

func TestConversionUseCase_SplitBilling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newConversionFixture(t, ctrl)

	customer := entities.Customer{ID: "cust-1", Email: "buyer@example.com"}

	f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
	f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(approvedProposal(), nil)
	f.expectCatalog()
	f.customers.EXPECT().GetByID(gomock.Any(), "cust-1").Return(customer, nil)
	f.proposals.EXPECT().ClaimConversion(gomock.Any(), "prop-1").Return(true, nil)

	f.projects.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Project{})).DoAndReturn(
		func(_ context.Context, p entities.Project) (entities.Project, error) {
			if p.ProposalID != "prop-1" || p.Title != "Website build" || p.Status != entities.ProjectStatusNotStarted {
				t.Fatalf("unexpected project: %+v", p)
			}
			if p.Meta["_project_budget"] != "5000" {
				t.Fatalf("expected allow-listed meta copy, got %+v", p.Meta)
			}
			if _, leaked := p.Meta["_private_note"]; leaked {
				t.Fatalf("non allow-listed meta copied: %+v", p.Meta)
			}
			return p, nil
		},
	)

	var orderID string
	f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o entities.Order) (entities.Order, error) {
			// 2x10 widget + 20 setup + 5 shipping.
			if o.Total != 45 {
				t.Fatalf("expected order total 45, got %.2f", o.Total)
			}
			orderID = o.ID
			return o, nil
		},
	)

	f.gateway.EXPECT().Available().Return(true).AnyTimes()
	f.gateway.EXPECT().ChargeOrder(gomock.Any(), gomock.Any(), "buyer@example.com").Return("mp-pay-1", nil, nil)

	var subID string
	f.subs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s entities.Subscription) (entities.Subscription, error) {
			if s.ParentOrderID != orderID {
				t.Fatalf("expected parent order %q, got %q", orderID, s.ParentOrderID)
			}
			// plan-a at 10 + 10 support fee, monthly.
			if s.Total != 20 {
				t.Fatalf("expected subscription total 20, got %.2f", s.Total)
			}
			want := entities.BillingSchedule{Interval: 1, Period: entities.PeriodMonth}
			if s.Schedule != want {
				t.Fatalf("expected schedule %+v, got %+v", want, s.Schedule)
			}
			subID = s.ID
			return s, nil
		},
	)
	f.gateway.EXPECT().CreateRecurringCharge(gomock.Any(), gomock.Any(), "buyer@example.com").Return("mp-sub-1", nil, nil)
	f.subs.EXPECT().SetProviderRef(gomock.Any(), gomock.Any(), "mp-sub-1").Return(nil)

	f.projects.EXPECT().SetMeta(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, meta map[string]string) error {
			if meta[entities.MetaOrderID] != orderID || meta[entities.MetaSubscriptionID] != subID {
				t.Fatalf("unexpected outcome meta: %+v", meta)
			}
			return nil
		},
	)
	f.proposals.EXPECT().Delete(gomock.Any(), "prop-1").Return(nil)

	result, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OrderID != orderID || result.SubscriptionID != subID {
		t.Fatalf("unexpected result ids: %+v", result)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestConversionUseCase_NonBillableProposal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newConversionFixture(t, ctrl)

	p := approvedProposal()
	p.CostType = entities.CostProposalTypeBudgetEstimates

	f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
	f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(p, nil)
	f.customers.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{ID: "cust-1"}, nil)
	f.proposals.EXPECT().ClaimConversion(gomock.Any(), "prop-1").Return(true, nil)
	f.projects.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, pr entities.Project) (entities.Project, error) { return pr, nil },
	)
	f.projects.EXPECT().SetMeta(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, meta map[string]string) error {
			if meta[entities.MetaConversionNote] == "" {
				t.Fatalf("expected a billing-skipped note, got %+v", meta)
			}
			return nil
		},
	)
	f.proposals.EXPECT().Delete(gomock.Any(), "prop-1").Return(nil)

	result, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OrderID != "" || result.SubscriptionID != "" {
		t.Fatalf("expected no billing artifacts, got %+v", result)
	}
}

func TestConversionUseCase_OrderFailureSkipsSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newConversionFixture(t, ctrl)

	f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
	f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(approvedProposal(), nil)
	f.expectCatalog()
	f.customers.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{ID: "cust-1"}, nil)
	f.proposals.EXPECT().ClaimConversion(gomock.Any(), "prop-1").Return(true, nil)
	f.projects.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, pr entities.Project) (entities.Project, error) { return pr, nil },
	)

	f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Order{}, errors.New("db down"))

	f.projects.EXPECT().SetMeta(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, meta map[string]string) error {
			if meta[entities.MetaConversionErr] == "" {
				t.Fatalf("expected conversion error meta, got %+v", meta)
			}
			return nil
		},
	)
	f.proposals.EXPECT().Delete(gomock.Any(), "prop-1").Return(nil)

	result, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
	if err != nil {
		t.Fatalf("billing failure must not fail the conversion: %v", err)
	}
	if result.OrderID != "" || result.SubscriptionID != "" {
		t.Fatalf("expected no billing artifacts, got %+v", result)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "subscription skipped") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a subscription-skipped warning, got %v", result.Warnings)
	}
}

func TestConversionUseCase_SubscriptionFailureKeepsOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newConversionFixture(t, ctrl)

	f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
	f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(approvedProposal(), nil)
	f.expectCatalog()
	f.customers.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{ID: "cust-1", Email: "buyer@example.com"}, nil)
	f.proposals.EXPECT().ClaimConversion(gomock.Any(), "prop-1").Return(true, nil)
	f.projects.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, pr entities.Project) (entities.Project, error) { return pr, nil },
	)

	var orderID string
	f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o entities.Order) (entities.Order, error) {
			orderID = o.ID
			return o, nil
		},
	)
	f.gateway.EXPECT().Available().Return(true).AnyTimes()
	f.gateway.EXPECT().ChargeOrder(gomock.Any(), gomock.Any(), gomock.Any()).Return("mp-pay-1", nil, nil)

	f.subs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Subscription{}, errors.New("db down"))

	f.projects.EXPECT().SetMeta(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, meta map[string]string) error {
			if meta[entities.MetaOrderID] != orderID {
				t.Fatalf("expected the order to survive, got %+v", meta)
			}
			return nil
		},
	)
	f.proposals.EXPECT().Delete(gomock.Any(), "prop-1").Return(nil)

	result, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
	if err != nil {
		t.Fatalf("subscription failure must not fail the conversion: %v", err)
	}
	if result.OrderID != orderID {
		t.Fatalf("expected order id %q, got %q", orderID, result.OrderID)
	}
	if result.SubscriptionID != "" {
		t.Fatalf("expected no subscription id, got %q", result.SubscriptionID)
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("expected a subscription failure warning")
	}
}

func TestConversionUseCase_ProjectCreateFailureReleasesClaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newConversionFixture(t, ctrl)

	f.capabilities.EXPECT().HasCapability(gomock.Any(), "staff-1", "publish_proposals").Return(true, nil)
	f.proposals.EXPECT().GetByID(gomock.Any(), "prop-1").Return(approvedProposal(), nil)
	f.expectCatalog()
	f.customers.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{ID: "cust-1"}, nil)
	f.proposals.EXPECT().ClaimConversion(gomock.Any(), "prop-1").Return(true, nil)
	f.projects.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Project{}, errors.New("db down"))
	f.proposals.EXPECT().ReleaseConversion(gomock.Any(), "prop-1").Return(nil)

	_, err := f.uc.ConvertToProject(context.Background(), "prop-1", "staff-1")
	if err == nil {
		t.Fatalf("expected project creation error")
	}
}
