package usecase

import (
	"testing"

	"project_billing/internal/domain/entities"
)

func TestNormalizeFee_TaxClasses(t *testing.T) {
	cases := []struct {
		name         string
		taxClass     string
		wantTaxable  bool
		wantTaxClass string
	}{
		{name: "omitted", taxClass: "", wantTaxable: false, wantTaxClass: ""},
		{name: "no-tax", taxClass: "no-tax", wantTaxable: false, wantTaxClass: ""},
		{name: "none", taxClass: "none", wantTaxable: false, wantTaxClass: ""},
		{name: "none mixed case", taxClass: " None ", wantTaxable: false, wantTaxClass: ""},
		{name: "standard", taxClass: "standard", wantTaxable: true, wantTaxClass: ""},
		{name: "standard upper", taxClass: "STANDARD", wantTaxable: true, wantTaxClass: ""},
		{name: "reduced rate", taxClass: "reduced-rate", wantTaxable: true, wantTaxClass: "reduced-rate"},
		{name: "custom with spaces", taxClass: "Reduced  Rate", wantTaxable: true, wantTaxClass: "reduced-rate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeFee(entities.NormalizedFee{Name: "Setup", Amount: 10, TaxClass: tc.taxClass}, FeeKindOneTime)
			if got.Taxable != tc.wantTaxable {
				t.Fatalf("taxable: expected %v, got %v", tc.wantTaxable, got.Taxable)
			}
			if got.TaxClass != tc.wantTaxClass {
				t.Fatalf("tax class: expected %q, got %q", tc.wantTaxClass, got.TaxClass)
			}
			if got.Name != "Setup" || got.Amount != 10 {
				t.Fatalf("unexpected fee: %+v", got)
			}
		})
	}
}

func TestNormalizeFee_DefaultNames(t *testing.T) {
	t.Run("one-time fallback", func(t *testing.T) {
		got := NormalizeFee(entities.NormalizedFee{Amount: 5}, FeeKindOneTime)
		if got.Name != "One-Time Fee" {
			t.Fatalf("expected default name, got %q", got.Name)
		}
	})

	t.Run("recurring fallback", func(t *testing.T) {
		got := NormalizeFee(entities.NormalizedFee{Amount: 5}, FeeKindRecurring)
		if got.Name != "Recurring Fee" {
			t.Fatalf("expected default name, got %q", got.Name)
		}
	})

	t.Run("shipping suffix", func(t *testing.T) {
		got := NormalizeShippingFee(entities.ShippingFee{Description: "Courier", Amount: 7})
		if got.Name != "Courier (Shipping)" {
			t.Fatalf("expected shipping suffix, got %q", got.Name)
		}
	})

	t.Run("shipping fallback with suffix", func(t *testing.T) {
		got := NormalizeShippingFee(entities.ShippingFee{Amount: 7})
		if got.Name != "Shipping Fee (Shipping)" {
			t.Fatalf("expected default shipping name, got %q", got.Name)
		}
	})
}

func TestNormalizeFee_Idempotent(t *testing.T) {
	inputs := []struct {
		name string
		fee  entities.NormalizedFee
		kind FeeKind
	}{
		{name: "non-taxable", fee: entities.NormalizedFee{Name: "Setup", Amount: 10}, kind: FeeKindOneTime},
		{name: "standard rate", fee: entities.NormalizedFee{Name: "Support", Amount: 20, TaxClass: "standard"}, kind: FeeKindRecurring},
		{name: "custom class", fee: entities.NormalizedFee{Name: "Install", Amount: 30, TaxClass: "Reduced Rate"}, kind: FeeKindOneTime},
		{name: "shipping", fee: entities.NormalizedFee{Name: "Courier", Amount: 7, TaxClass: "standard"}, kind: FeeKindShipping},
	}

	for _, tc := range inputs {
		t.Run(tc.name, func(t *testing.T) {
			once := NormalizeFee(tc.fee, tc.kind)
			twice := NormalizeFee(once, tc.kind)
			if once != twice {
				t.Fatalf("normalization not idempotent: first %+v, second %+v", once, twice)
			}
		})
	}
}
