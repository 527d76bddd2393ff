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

var ErrOrderCreation = errors.New("order creation failed")

// OrderBuilder constructs and persists the one-time parent order of a
// conversion: every non-subscription product at its quantity, every one-time
// fee and every shipping fee, with tax-exclusive totals computed from the
// lines. The builder does not deduplicate; the orchestrator guarantees
// at-most-once invocation per proposal via the conversion claim.

type OrderBuilder struct {
	orders interfaces.IOrderRepository
	log    interfaces.IAuditLogger
}

func NewOrderBuilder(orders interfaces.IOrderRepository, log interfaces.IAuditLogger) *OrderBuilder {
	if log == nil {
		log = interfaces.NopAuditLogger{}
	}
	return &OrderBuilder{orders: orders, log: log}
}

// Build assembles the order aggregate in memory and persists it in one step,
// so a persistence failure leaves nothing half-built or referenced. Errors
// wrap ErrOrderCreation with the underlying cause.
func (b *OrderBuilder) Build(ctx context.Context, proposal entities.Proposal, items ValidatedLineItems, customer entities.Customer) (entities.Order, error) {
	now := time.Now().UTC()
	order := entities.Order{
		ID:              uuid.NewString(),
		CustomerID:      customer.ID,
		ProposalID:      proposal.ID,
		Status:          entities.OrderStatusPending,
		BillingAddress:  pickAddress(proposal.BillingAddress, customer.BillingAddress),
		ShippingAddress: pickAddress(proposal.ShippingAddress, customer.ShippingAddress),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, p := range items.Products {
		if p.Product.IsSubscription() {
			continue
		}
		unit := p.Line.EffectiveUnitPrice()
		if unit == 0 {
			unit = p.Product.Price
		}
		order.AddProduct(p.Product.Ref, p.Product.Name, p.Line.Quantity, unit)
	}

	for _, f := range items.OneTimeFees {
		order.AddFee(NormalizeOneTimeFee(f))
	}

	for _, f := range items.ShippingFees {
		order.AddShipping(NormalizeShippingFee(f), f.ShippingClass)
	}

	order.CalculateTotals()

	created, err := b.orders.Create(ctx, order)
	if err != nil {
		b.log.Error(interfaces.ComponentOrderCreation, "persist failed proposal_id=%s err=%v", proposal.ID, err)
		return entities.Order{}, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	b.log.Info(interfaces.ComponentOrderCreation, "order created order_id=%s proposal_id=%s lines=%d total=%.2f",
		created.ID, proposal.ID, len(created.Lines), created.Total)
	return created, nil
}

func pickAddress(primary, fallback *entities.Address) *entities.Address {
	if primary != nil {
		return primary
	}
	return fallback
}
