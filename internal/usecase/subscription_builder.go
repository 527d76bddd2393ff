package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrSubscriptionCreation        = errors.New("subscription creation failed")
	ErrRecurringBillingUnavailable = errors.New("recurring billing unavailable")
)

// SubscriptionBuilder constructs and persists the recurring aggregate of a
// conversion: subscription-type products and recurring fees only, with the
// resolved billing schedule and an optional link to the parent order.
//
// A persisted subscription whose recurring charge cannot be set up is rolled
// back (deleted); the parent order is never touched here.

type SubscriptionBuilder struct {
	subs    interfaces.ISubscriptionRepository
	gateway interfaces.IPaymentGateway
	log     interfaces.IAuditLogger
}

func NewSubscriptionBuilder(subs interfaces.ISubscriptionRepository, gateway interfaces.IPaymentGateway, log interfaces.IAuditLogger) *SubscriptionBuilder {
	if log == nil {
		log = interfaces.NopAuditLogger{}
	}
	return &SubscriptionBuilder{subs: subs, gateway: gateway, log: log}
}

// Build creates the subscription for a proposal. parentOrderID may be empty
// for fully recurring proposals with no upfront charge. Errors wrap either
// ErrRecurringBillingUnavailable (backend not configured) or
// ErrSubscriptionCreation with the underlying cause.
func (b *SubscriptionBuilder) Build(ctx context.Context, proposal entities.Proposal, items ValidatedLineItems, customer entities.Customer, parentOrderID string) (entities.Subscription, error) {
	if b.gateway == nil || !b.gateway.Available() {
		b.log.Warn(interfaces.ComponentSubscriptionCreation, "recurring billing backend not configured proposal_id=%s", proposal.ID)
		return entities.Subscription{}, fmt.Errorf("%w: recurring billing backend is not configured", ErrRecurringBillingUnavailable)
	}

	now := time.Now().UTC()
	sub := entities.Subscription{
		ID:              uuid.NewString(),
		CustomerID:      customer.ID,
		ProposalID:      proposal.ID,
		ParentOrderID:   parentOrderID,
		Status:          entities.SubscriptionStatusPending,
		Schedule:        ResolveBillingSchedule(items, b.log),
		BillingAddress:  pickAddress(proposal.BillingAddress, customer.BillingAddress),
		ShippingAddress: pickAddress(proposal.ShippingAddress, customer.ShippingAddress),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, p := range items.Products {
		if !p.Product.IsSubscription() {
			continue
		}
		unit := p.Line.EffectiveUnitPrice()
		if unit == 0 {
			unit = p.Product.Price
		}
		sub.AddProduct(p.Product.Ref, p.Product.Name, p.Line.Quantity, unit)
	}

	for _, f := range items.RecurringFees {
		sub.AddFee(NormalizeRecurringFee(f))
	}

	sub.CalculateTotals()

	created, err := b.subs.Create(ctx, sub)
	if err != nil {
		b.log.Error(interfaces.ComponentSubscriptionCreation, "persist failed proposal_id=%s err=%v", proposal.ID, err)
		return entities.Subscription{}, fmt.Errorf("%w: %v", ErrSubscriptionCreation, err)
	}

	providerRef, _, err := b.gateway.CreateRecurringCharge(ctx, created, customer.Email)
	if err != nil {
		// Roll back the half-created subscription rather than leave an
		// aggregate with no recurring charge behind it.
		if delErr := b.subs.Delete(ctx, created.ID); delErr != nil {
			b.log.Error(interfaces.ComponentSubscriptionCreation, "rollback delete failed subscription_id=%s err=%v", created.ID, delErr)
		}
		b.log.Error(interfaces.ComponentSubscriptionCreation, "recurring charge setup failed proposal_id=%s err=%v", proposal.ID, err)
		return entities.Subscription{}, fmt.Errorf("%w: %v", ErrSubscriptionCreation, err)
	}
	created.ProviderRef = providerRef
	if err := b.subs.SetProviderRef(ctx, created.ID, providerRef); err != nil {
		b.log.Warn(interfaces.ComponentSubscriptionCreation, "provider ref not persisted subscription_id=%s err=%v", created.ID, err)
	}

	b.log.Info(interfaces.ComponentSubscriptionCreation, "subscription created subscription_id=%s proposal_id=%s parent_order_id=%s total=%.2f every %d %s",
		created.ID, proposal.ID, parentOrderID, created.Total, created.Schedule.Interval, created.Schedule.Period)
	return created, nil
}
