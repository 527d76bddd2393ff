package usecase

import (
	"strings"

	"project_billing/internal/domain/entities"
)

// FeeKind labels the fee group a record came from; it only feeds default
// naming and the shipping suffix.

type FeeKind string

const (
	FeeKindOneTime   FeeKind = "One-Time"
	FeeKindRecurring FeeKind = "Recurring"
	FeeKindShipping  FeeKind = "Shipping"
)

const shippingNameSuffix = " (Shipping)"

// NormalizeFee produces the canonical fee record attached to orders and
// subscriptions. It is idempotent: normalizing an already-normalized record
// yields the same record.
//
// Name resolution: explicit name, else "<kind> Fee". Shipping fees get a
// " (Shipping)" suffix (kept for compatibility with legacy consumers).
//
// Tax resolution: empty, "no-tax" or "none" (case-insensitive) means not
// taxable with an empty effective class; "standard" means taxable with an
// empty effective class; anything else means taxable with the sanitized
// class. A record that is already taxable with an empty class stays taxable
// (that is the normalized form of the standard rate).
func NormalizeFee(f entities.NormalizedFee, kind FeeKind) entities.NormalizedFee {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		name = string(kind) + " Fee"
	}
	if kind == FeeKindShipping && !strings.HasSuffix(name, shippingNameSuffix) {
		name += shippingNameSuffix
	}

	taxable, taxClass := resolveTax(f.Taxable, f.TaxClass)

	return entities.NormalizedFee{
		Name:     name,
		Amount:   f.Amount,
		Taxable:  taxable,
		TaxClass: taxClass,
	}
}

// NormalizeOneTimeFee maps a raw one-time fee into the canonical record.
func NormalizeOneTimeFee(f entities.OneTimeFee) entities.NormalizedFee {
	return NormalizeFee(entities.NormalizedFee{Name: f.Name, Amount: f.Amount, TaxClass: f.TaxClass}, FeeKindOneTime)
}

// NormalizeRecurringFee maps a raw recurring fee into the canonical record.
func NormalizeRecurringFee(f entities.RecurringFee) entities.NormalizedFee {
	return NormalizeFee(entities.NormalizedFee{Name: f.Name, Amount: f.Amount, TaxClass: f.TaxClass}, FeeKindRecurring)
}

// NormalizeShippingFee maps a raw shipping fee into the canonical record.
// The shipping class travels separately (see Order.AddShipping).
func NormalizeShippingFee(f entities.ShippingFee) entities.NormalizedFee {
	return NormalizeFee(entities.NormalizedFee{Name: f.Description, Amount: f.Amount, TaxClass: f.TaxClass}, FeeKindShipping)
}

func resolveTax(taxable bool, taxClass string) (bool, string) {
	tc := strings.ToLower(strings.TrimSpace(taxClass))
	switch tc {
	case "":
		// An empty class on a record already flagged taxable is the
		// normalized standard rate; otherwise it means no tax.
		if taxable {
			return true, ""
		}
		return false, ""
	case "no-tax", "none":
		return false, ""
	case "standard":
		return true, ""
	default:
		return true, sanitizeTaxClass(tc)
	}
}

func sanitizeTaxClass(tc string) string {
	return strings.Join(strings.Fields(tc), "-")
}
