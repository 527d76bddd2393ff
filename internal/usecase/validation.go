package usecase

import (
	"context"
	"errors"
	"strings"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"
)

var ErrEmptyProposal = errors.New("proposal has no billable line items")

// ResolvedProductLine pairs a proposal product line with its catalog product,
// so later stages never re-resolve references.
type ResolvedProductLine struct {
	Line    entities.ProductLine
	Product entities.Product
}

// ValidatedLineItems is the validator's output: the four groups with invalid
// items dropped and product references resolved.
type ValidatedLineItems struct {
	Products      []ResolvedProductLine
	OneTimeFees   []entities.OneTimeFee
	RecurringFees []entities.RecurringFee
	ShippingFees  []entities.ShippingFee
}

func (v ValidatedLineItems) IsEmpty() bool {
	return len(v.Products) == 0 &&
		len(v.OneTimeFees) == 0 &&
		len(v.RecurringFees) == 0 &&
		len(v.ShippingFees) == 0
}

// HasOneTimeContent reports whether a parent order would carry any line:
// a non-subscription product, a one-time fee or a shipping fee.
func (v ValidatedLineItems) HasOneTimeContent() bool {
	if len(v.OneTimeFees) > 0 || len(v.ShippingFees) > 0 {
		return true
	}
	for _, p := range v.Products {
		if !p.Product.IsSubscription() {
			return true
		}
	}
	return false
}

// HasRecurringContent reports whether a subscription would carry any line:
// a subscription-type product or a recurring fee.
func (v ValidatedLineItems) HasRecurringContent() bool {
	if len(v.RecurringFees) > 0 {
		return true
	}
	for _, p := range v.Products {
		if p.Product.IsSubscription() {
			return true
		}
	}
	return false
}

// LineItemValidator checks a proposal's billing payload. Invalid items are
// skipped with a warning, never fatal; only an entirely empty result fails
// with ErrEmptyProposal.

type LineItemValidator struct {
	catalog interfaces.IProductCatalog
	log     interfaces.IAuditLogger
}

func NewLineItemValidator(catalog interfaces.IProductCatalog, log interfaces.IAuditLogger) *LineItemValidator {
	if log == nil {
		log = interfaces.NopAuditLogger{}
	}
	return &LineItemValidator{catalog: catalog, log: log}
}

// Validate drops invalid fee items and unresolvable products (warning each),
// resolves the rest against the catalog, and fails with ErrEmptyProposal when
// nothing billable survives. Catalog infrastructure errors propagate.
func (v *LineItemValidator) Validate(ctx context.Context, items entities.LineItems) (ValidatedLineItems, error) {
	out := ValidatedLineItems{}

	for i, p := range items.Products {
		ref := strings.TrimSpace(p.ProductRef)
		if ref == "" {
			v.log.Warn(interfaces.ComponentConversion, "products[%d]: empty product reference, skipped", i)
			continue
		}
		product, err := v.catalog.GetByRef(ctx, ref)
		if err != nil {
			return ValidatedLineItems{}, err
		}
		if product.Ref == "" {
			v.log.Warn(interfaces.ComponentConversion, "products[%d]: product %q not found, skipped", i, ref)
			continue
		}
		if p.Quantity < 1 {
			v.log.Warn(interfaces.ComponentConversion, "products[%d]: quantity %d clamped to 1", i, p.Quantity)
			p.Quantity = 1
		}
		out.Products = append(out.Products, ResolvedProductLine{Line: p, Product: product})
	}

	for i, f := range items.OneTimeFees {
		if !validFee(f.Name, f.Amount) {
			v.log.Warn(interfaces.ComponentConversion, "one_time_fees[%d]: invalid name or amount, skipped", i)
			continue
		}
		out.OneTimeFees = append(out.OneTimeFees, f)
	}

	for i, f := range items.RecurringFees {
		if !validFee(f.Name, f.Amount) {
			v.log.Warn(interfaces.ComponentConversion, "recurring_fees[%d]: invalid name or amount, skipped", i)
			continue
		}
		out.RecurringFees = append(out.RecurringFees, f)
	}

	for i, f := range items.ShippingFees {
		if !validFee(f.Description, f.Amount) {
			v.log.Warn(interfaces.ComponentConversion, "shipping_fees[%d]: invalid description or amount, skipped", i)
			continue
		}
		out.ShippingFees = append(out.ShippingFees, f)
	}

	if out.IsEmpty() {
		return ValidatedLineItems{}, ErrEmptyProposal
	}
	return out, nil
}

func validFee(name string, amount float64) bool {
	return strings.TrimSpace(name) != "" && amount > 0
}
