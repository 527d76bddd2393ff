package usecase

import (
	"testing"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"
)

func subscriptionLine(ref string, interval int, period string) ResolvedProductLine {
	return ResolvedProductLine{
		Line: entities.ProductLine{ProductRef: ref, Quantity: 1},
		Product: entities.Product{
			Ref:             ref,
			Name:            ref,
			Type:            entities.ProductTypeSubscription,
			Price:           10,
			BillingInterval: interval,
			BillingPeriod:   period,
		},
	}
}

func TestResolveBillingSchedule(t *testing.T) {
	log := interfaces.NopAuditLogger{}

	t.Run("subscription product wins over recurring fee", func(t *testing.T) {
		items := ValidatedLineItems{
			Products: []ResolvedProductLine{subscriptionLine("plan-a", 3, entities.PeriodWeek)},
			RecurringFees: []entities.RecurringFee{
				{Name: "Support", Amount: 5, Interval: 1, Period: entities.PeriodMonth},
			},
		}

		got := ResolveBillingSchedule(items, log)
		want := entities.BillingSchedule{Interval: 3, Period: entities.PeriodWeek}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("first subscription product wins", func(t *testing.T) {
		items := ValidatedLineItems{
			Products: []ResolvedProductLine{
				subscriptionLine("plan-a", 2, entities.PeriodMonth),
				subscriptionLine("plan-b", 1, entities.PeriodYear),
			},
		}

		got := ResolveBillingSchedule(items, log)
		want := entities.BillingSchedule{Interval: 2, Period: entities.PeriodMonth}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("out of range product interval clamps to 1", func(t *testing.T) {
		items := ValidatedLineItems{
			Products: []ResolvedProductLine{subscriptionLine("plan-a", 12, "fortnight")},
		}

		got := ResolveBillingSchedule(items, log)
		want := entities.BillingSchedule{Interval: 1, Period: entities.PeriodMonth}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("recurring fee fallback", func(t *testing.T) {
		items := ValidatedLineItems{
			RecurringFees: []entities.RecurringFee{
				{Name: "Broken", Amount: 5, Interval: 9, Period: entities.PeriodMonth},
				{Name: "Support", Amount: 5, Interval: 2, Period: entities.PeriodWeek},
			},
		}

		got := ResolveBillingSchedule(items, log)
		want := entities.BillingSchedule{Interval: 2, Period: entities.PeriodWeek}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("invalid fee fields fall back to default", func(t *testing.T) {
		items := ValidatedLineItems{
			RecurringFees: []entities.RecurringFee{
				{Name: "Support", Amount: 5, Interval: 0, Period: "quarter"},
			},
		}

		got := ResolveBillingSchedule(items, log)
		if got != entities.DefaultBillingSchedule() {
			t.Fatalf("expected default schedule, got %+v", got)
		}
	})

	t.Run("empty items default", func(t *testing.T) {
		got := ResolveBillingSchedule(ValidatedLineItems{}, log)
		want := entities.BillingSchedule{Interval: 1, Period: entities.PeriodMonth}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})
}

type recordingLogger struct {
	warns []string
}

func (r *recordingLogger) Info(string, string, ...any) {}
func (r *recordingLogger) Warn(component, format string, _ ...any) {
	r.warns = append(r.warns, component+": "+format)
}
func (r *recordingLogger) Error(string, string, ...any) {}

func TestResolveBillingSchedule_ConflictWarning(t *testing.T) {
	log := &recordingLogger{}
	items := ValidatedLineItems{
		Products: []ResolvedProductLine{subscriptionLine("plan-a", 1, entities.PeriodMonth)},
		RecurringFees: []entities.RecurringFee{
			{Name: "Support", Amount: 5, Interval: 2, Period: entities.PeriodWeek},
		},
	}

	ResolveBillingSchedule(items, log)
	if len(log.warns) != 1 {
		t.Fatalf("expected one conflict warning, got %d", len(log.warns))
	}
}
