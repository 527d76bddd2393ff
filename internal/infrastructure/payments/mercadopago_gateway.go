package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway charges converted proposals through Mercado Pago:
// a one-time payment for the parent order and a preapproval (recurring
// authorization) for the subscription.
//
// Mock mode (PAYMENT_GATEWAY_MOCK / MERCADOPAGO_MOCK) skips the provider and
// synthesizes approved responses; useful for local runs and CI.
type MercadoPagoGateway struct {
	payments     payment.Client
	preapprovals preapproval.Client
	currency     string
	mockMode     bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	currency := getenvDefault("MERCADOPAGO_CURRENCY", "USD")

	if isPaymentGatewayMockEnabled() {
		log.Printf("[checkout][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, currency: currency}, nil
	}

	if accessToken == "" {
		log.Printf("[checkout][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[checkout][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[checkout][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments:     payment.NewClient(cfg),
		preapprovals: preapproval.NewClient(cfg),
		currency:     currency,
	}, nil
}

// Available reports whether the gateway can take charges.
func (g *MercadoPagoGateway) Available() bool {
	if g == nil {
		return false
	}
	return g.mockMode || (g.payments != nil && g.preapprovals != nil)
}

// ChargeOrder creates the one-time payment for a parent order.
func (g *MercadoPagoGateway) ChargeOrder(ctx context.Context, o entities.Order, payerEmail string) (string, json.RawMessage, error) {
	if g != nil && g.mockMode {
		return g.mockResponse("order", o.ID, o.Total)
	}
	if g == nil || g.payments == nil {
		return "", nil, ErrMercadoPagoGatewayNotConfigured
	}

	body := map[string]any{
		"transaction_amount": o.Total,
		"description":        fmt.Sprintf("Project order %s", o.ID),
		"external_reference": o.ID,
		"payer":              map[string]any{"email": payerEmail},
	}

	var req payment.Request
	if err := remarshal(body, &req); err != nil {
		return "", nil, err
	}

	resp, err := g.payments.Create(ctx, req)
	if err != nil {
		log.Printf("[checkout][gateway] payment create failed order_id=%s err=%v", o.ID, err)
		return "", nil, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", nil, err
	}
	log.Printf("[checkout][gateway] payment created order_id=%s provider_payment_id=%d provider_status=%s", o.ID, resp.ID, resp.Status)
	return fmt.Sprintf("%d", resp.ID), raw, nil
}

// CreateRecurringCharge sets up the preapproval for a subscription, mapping
// the billing schedule onto Mercado Pago's frequency/frequency_type pair
// (weeks become 7-day frequencies, years become 12-month frequencies).
func (g *MercadoPagoGateway) CreateRecurringCharge(ctx context.Context, s entities.Subscription, payerEmail string) (string, json.RawMessage, error) {
	if g != nil && g.mockMode {
		return g.mockResponse("subscription", s.ID, s.Total)
	}
	if g == nil || g.preapprovals == nil {
		return "", nil, ErrMercadoPagoGatewayNotConfigured
	}

	frequency, frequencyType := toProviderFrequency(s.Schedule)
	body := map[string]any{
		"reason":             fmt.Sprintf("Project subscription %s", s.ID),
		"external_reference": s.ID,
		"payer_email":        payerEmail,
		"auto_recurring": map[string]any{
			"currency_id":        g.currency,
			"transaction_amount": s.Total,
			"frequency":          frequency,
			"frequency_type":     frequencyType,
		},
	}

	var req preapproval.Request
	if err := remarshal(body, &req); err != nil {
		return "", nil, err
	}

	resp, err := g.preapprovals.Create(ctx, req)
	if err != nil {
		log.Printf("[checkout][gateway] preapproval create failed subscription_id=%s err=%v", s.ID, err)
		return "", nil, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", nil, err
	}

	id, status := extractIDAndStatus(raw)
	log.Printf("[checkout][gateway] preapproval created subscription_id=%s provider_ref=%s provider_status=%s", s.ID, id, status)
	return id, raw, nil
}

func toProviderFrequency(s entities.BillingSchedule) (int, string) {
	switch s.Period {
	case entities.PeriodDay:
		return s.Interval, "days"
	case entities.PeriodWeek:
		return s.Interval * 7, "days"
	case entities.PeriodYear:
		return s.Interval * 12, "months"
	default:
		return s.Interval, "months"
	}
}

func (g *MercadoPagoGateway) mockResponse(kind, ref string, amount float64) (string, json.RawMessage, error) {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp := map[string]any{
		"id":                 id,
		"status":             "approved",
		"status_detail":      "accredited",
		"external_reference": ref,
		"transaction_amount": amount,
		"date_created":       now,
		"date_approved":      now,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return "", nil, err
	}
	log.Printf("[checkout][gateway] mock %s charge created ref=%s provider_ref=%s", kind, ref, id)
	return id, b, nil
}

// remarshal builds an SDK request from a JSON body, keeping the payload shape
// in one place instead of mirroring every SDK struct field.
func remarshal(body map[string]any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func extractIDAndStatus(raw json.RawMessage) (string, string) {
	var parsed struct {
		ID     any    `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", ""
	}
	id := strings.TrimSpace(fmt.Sprintf("%v", parsed.ID))
	if id == "<nil>" {
		id = ""
	}
	return id, parsed.Status
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
