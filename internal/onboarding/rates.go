package onboarding

import (
	"fmt"

	"masseurmatch_backend/internal/models"
)

// Rate33PercentMultiplier bounds how far per-minute pricing may diverge
// across duration tiers in the same context: no rate may exceed 133% of the
// base rate's per-minute price.
const Rate33PercentMultiplier = 1.33

// rate33Epsilon absorbs float rounding so a rate at exactly 133% passes.
const rate33Epsilon = 1e-9

// RateInput is a candidate rate before persistence.
type RateInput struct {
	Context         models.RateContext
	DurationMinutes int
	PriceCents      int64
}

// PricePerMinute returns the per-minute price in cents.
func PricePerMinute(priceCents int64, durationMinutes int) float64 {
	return float64(priceCents) / float64(durationMinutes)
}

// Validate33PercentRule enforces pricing consistency across duration tiers.
// Only active rates in the same context constrain the candidate; with no such
// rates the candidate is unconditionally valid and becomes the base. The base
// is the shortest duration among existing rates and the candidate: when the
// candidate is shorter than every existing rate it becomes the base itself,
// and the previously shortest rate is the one measured against it.
func Validate33PercentRule(newRate RateInput, existing []models.ProfileRate) FieldResult {
	var sameContext []models.ProfileRate
	for _, r := range existing {
		if r.Context == newRate.Context && r.IsActive {
			sameContext = append(sameContext, r)
		}
	}
	if len(sameContext) == 0 {
		return result(nil)
	}

	base := sameContext[0]
	for _, r := range sameContext[1:] {
		if r.DurationMinutes < base.DurationMinutes {
			base = r
		}
	}

	var basePerMin, candidatePerMin float64
	if newRate.DurationMinutes < base.DurationMinutes {
		basePerMin = PricePerMinute(newRate.PriceCents, newRate.DurationMinutes)
		candidatePerMin = PricePerMinute(base.PriceCents, base.DurationMinutes)
	} else {
		basePerMin = PricePerMinute(base.PriceCents, base.DurationMinutes)
		candidatePerMin = PricePerMinute(newRate.PriceCents, newRate.DurationMinutes)
	}

	maxPerMin := basePerMin * Rate33PercentMultiplier
	if candidatePerMin > maxPerMin+rate33Epsilon {
		return result([]FieldError{{
			Field: "price_cents",
			Message: fmt.Sprintf(
				"Price per minute ($%.2f) exceeds 33%% above base rate ($%.2f). Maximum allowed: $%.2f",
				candidatePerMin/100, basePerMin/100, maxPerMin/100),
		}})
	}

	return result(nil)
}

// ValidateRateCreation runs every rate check and accumulates all errors so a
// form can display them together.
func ValidateRateCreation(newRate RateInput, existing []models.ProfileRate) FieldResult {
	var errs []FieldError

	errs = append(errs, ValidateDuration(newRate.DurationMinutes).Errors...)
	errs = append(errs, ValidatePrice(newRate.PriceCents).Errors...)
	errs = append(errs, Validate33PercentRule(newRate, existing).Errors...)

	return result(errs)
}
