package usecase

import (
	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"
)

// ResolveBillingSchedule determines the single authoritative recurring
// cadence of a proposal. First match wins:
//
//  1. the first subscription-type product, with its interval clamped to 1
//     when outside 1..6 and its period defaulted to month when invalid;
//  2. else the first recurring fee whose interval and period both validate;
//  3. else {1, month}.
//
// Known limitation inherited from the legacy behavior: secondary recurring
// lines with a different cadence are absorbed into the winning schedule. The
// resolver logs a warning when that happens so the silent absorption is at
// least visible.
func ResolveBillingSchedule(items ValidatedLineItems, log interfaces.IAuditLogger) entities.BillingSchedule {
	winner, found := firstSchedule(items)
	if !found {
		winner = entities.DefaultBillingSchedule()
	}
	warnConflictingSchedules(items, winner, log)
	return winner
}

func firstSchedule(items ValidatedLineItems) (entities.BillingSchedule, bool) {
	for _, p := range items.Products {
		if !p.Product.IsSubscription() {
			continue
		}
		s := entities.BillingSchedule{Interval: p.Product.BillingInterval, Period: p.Product.BillingPeriod}
		if !entities.ValidInterval(s.Interval) {
			s.Interval = 1
		}
		if !entities.ValidPeriod(s.Period) {
			s.Period = entities.PeriodMonth
		}
		return s, true
	}

	for _, f := range items.RecurringFees {
		if entities.ValidInterval(f.Interval) && entities.ValidPeriod(f.Period) {
			return entities.BillingSchedule{Interval: f.Interval, Period: f.Period}, true
		}
	}

	return entities.BillingSchedule{}, false
}

func warnConflictingSchedules(items ValidatedLineItems, winner entities.BillingSchedule, log interfaces.IAuditLogger) {
	if log == nil {
		return
	}
	for _, f := range items.RecurringFees {
		if !entities.ValidInterval(f.Interval) || !entities.ValidPeriod(f.Period) {
			continue
		}
		if f.Interval != winner.Interval || f.Period != winner.Period {
			log.Warn(interfaces.ComponentConversion,
				"recurring fee %q bills every %d %s but the subscription cadence is every %d %s; the fee is absorbed into the winning cycle",
				f.Name, f.Interval, f.Period, winner.Interval, winner.Period)
		}
	}
}
