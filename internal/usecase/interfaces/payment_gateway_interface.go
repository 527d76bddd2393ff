package interfaces

import (
	"context"
	"encoding/json"

	"project_billing/internal/domain/entities"
)

// IPaymentGateway abstracts the external charging provider (e.g. Mercado
// Pago). ChargeOrder creates the one-time payment for a parent order;
// CreateRecurringCharge sets up the recurring preapproval for a subscription.
//
// Available reports whether the recurring-billing backend is configured.
// When it is not, subscription creation short-circuits with a feature
// unavailable error; the order path is unaffected.
//
//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_mock.go -package=mocks

type IPaymentGateway interface {
	Available() bool
	ChargeOrder(ctx context.Context, o entities.Order, payerEmail string) (providerRef string, providerResponse json.RawMessage, err error)
	CreateRecurringCharge(ctx context.Context, s entities.Subscription, payerEmail string) (providerRef string, providerResponse json.RawMessage, err error)
}
