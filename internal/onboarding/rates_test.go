package onboarding

import (
	"testing"

	"masseurmatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func activeRate(ctx models.RateContext, minutes int, cents int64) models.ProfileRate {
	return models.ProfileRate{
		Context:         ctx,
		DurationMinutes: minutes,
		PriceCents:      cents,
		IsActive:        true,
	}
}

func TestPricePerMinute(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 250.0, PricePerMinute(15000, 60))
	assert.Equal(t, 250.0, PricePerMinute(22500, 90))
	assert.InDelta(t, 166.67, PricePerMinute(5000, 30), 0.01)
}

func TestValidate33PercentRule_NoExistingRates(t *testing.T) {
	t.Parallel()

	res := Validate33PercentRule(
		RateInput{Context: models.ContextIncall, DurationMinutes: 60, PriceCents: 99000},
		nil,
	)
	assert.True(t, res.Valid, "first rate in a context has no base to violate")
}

func TestValidate33PercentRule_WithinBand(t *testing.T) {
	t.Parallel()

	existing := []models.ProfileRate{activeRate(models.ContextIncall, 60, 15000)} // $2.50/min

	// $3.325/min is exactly 133% of the base and must pass.
	res := Validate33PercentRule(
		RateInput{Context: models.ContextIncall, DurationMinutes: 90, PriceCents: 29925},
		existing,
	)
	assert.True(t, res.Valid)

	// Equal per-minute pricing is always fine.
	res = Validate33PercentRule(
		RateInput{Context: models.ContextIncall, DurationMinutes: 90, PriceCents: 22500},
		existing,
	)
	assert.True(t, res.Valid)
}

func TestValidate33PercentRule_ExceedsBand(t *testing.T) {
	t.Parallel()

	existing := []models.ProfileRate{activeRate(models.ContextIncall, 60, 15000)}

	// ~$3.56/min against a $2.50/min base (~142%).
	res := Validate33PercentRule(
		RateInput{Context: models.ContextIncall, DurationMinutes: 90, PriceCents: 32000},
		existing,
	)
	assert.False(t, res.Valid)
	assert.Equal(t, "price_cents", res.Errors[0].Field)
	assert.Contains(t, res.Errors[0].Message, "exceeds 33%")
}

func TestValidate33PercentRule_NewShorterRateBecomesBase(t *testing.T) {
	t.Parallel()

	// Existing 90-minute rate at $2.50/min. A new 30-minute rate priced so
	// low that the existing rate lands above 133% of it must fail.
	existing := []models.ProfileRate{activeRate(models.ContextIncall, 90, 22500)}

	res := Validate33PercentRule(
		RateInput{Context: models.ContextIncall, DurationMinutes: 30, PriceCents: 5000},
		existing,
	)
	assert.False(t, res.Valid, "existing rate exceeds 133%% of the new base")
	assert.Contains(t, res.Errors[0].Message, "exceeds 33%")

	// A shorter rate whose per-minute price keeps the existing rate in band
	// is accepted.
	res = Validate33PercentRule(
		RateInput{Context: models.ContextIncall, DurationMinutes: 30, PriceCents: 7500},
		existing,
	)
	assert.True(t, res.Valid)
}

func TestValidate33PercentRule_IgnoresOtherContextAndInactive(t *testing.T) {
	t.Parallel()

	existing := []models.ProfileRate{
		// Different context: never constrains.
		activeRate(models.ContextOutcall, 60, 6000),
		// Inactive same-context rate: never constrains.
		{Context: models.ContextIncall, DurationMinutes: 60, PriceCents: 6000, IsActive: false},
	}

	res := Validate33PercentRule(
		RateInput{Context: models.ContextIncall, DurationMinutes: 60, PriceCents: 99000},
		existing,
	)
	assert.True(t, res.Valid)
}

func TestValidate33PercentRule_BaseIsShortestDuration(t *testing.T) {
	t.Parallel()

	existing := []models.ProfileRate{
		activeRate(models.ContextIncall, 120, 24000), // $2.00/min
		activeRate(models.ContextIncall, 60, 15000),  // $2.50/min, shortest -> base
	}

	// 332.5 c/min is within 133% of the 60-minute base.
	res := Validate33PercentRule(
		RateInput{Context: models.ContextIncall, DurationMinutes: 90, PriceCents: 29925},
		existing,
	)
	assert.True(t, res.Valid)

	res = Validate33PercentRule(
		RateInput{Context: models.ContextIncall, DurationMinutes: 90, PriceCents: 32000},
		existing,
	)
	assert.False(t, res.Valid)
}

func TestValidateRateCreation_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	existing := []models.ProfileRate{activeRate(models.ContextIncall, 60, 15000)}

	// Bad duration, price over the cap and over the 33% band at once.
	res := ValidateRateCreation(
		RateInput{Context: models.ContextIncall, DurationMinutes: 45, PriceCents: 150000},
		existing,
	)
	assert.False(t, res.Valid)

	grouped := GroupErrors(res.Errors)
	assert.Contains(t, grouped, "duration_minutes")
	assert.Contains(t, grouped, "price_cents")
	assert.GreaterOrEqual(t, len(grouped["price_cents"]), 2, "price cap and 33%% rule both reported")
}

func TestValidateRateCreation_Valid(t *testing.T) {
	t.Parallel()

	res := ValidateRateCreation(
		RateInput{Context: models.ContextOutcall, DurationMinutes: 60, PriceCents: 18000},
		nil,
	)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}
