package onboarding

import (
	"testing"

	"masseurmatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsSensitiveField(t *testing.T) {
	t.Parallel()

	for _, f := range SensitiveFields() {
		assert.True(t, IsSensitiveField(f), "%s must trigger re-review", f)
	}

	assert.False(t, IsSensitiveField("city_slug"))
	assert.False(t, IsSensitiveField("phone_public_e164"))
	assert.False(t, IsSensitiveField(""))
}

func TestCalculateProgress_FreePlanSkipsPayment(t *testing.T) {
	t.Parallel()

	progress := CalculateProgress(models.StageBuildProfile, false)

	for _, step := range progress.Steps {
		assert.NotEqual(t, models.StageNeedsPayment, step.Stage, "free plan shows no payment step")
	}
	assert.Equal(t, models.StageBuildProfile, progress.Current)
}

func TestCalculateProgress_PaidPlanIncludesPayment(t *testing.T) {
	t.Parallel()

	progress := CalculateProgress(models.StageNeedsPayment, true)

	var found, current bool
	for _, step := range progress.Steps {
		if step.Stage == models.StageNeedsPayment {
			found = true
			current = step.Current
		}
	}
	assert.True(t, found)
	assert.True(t, current)
}

func TestCalculateProgress_CompletionMarks(t *testing.T) {
	t.Parallel()

	progress := CalculateProgress(models.StageWaitingAdmin, true)

	var currentIndex int
	for i, step := range progress.Steps {
		if step.Current {
			currentIndex = i
		}
	}

	for i, step := range progress.Steps {
		if i < currentIndex {
			assert.True(t, step.Completed, "step %q before current must be completed", step.Name)
		} else {
			assert.False(t, step.Completed)
		}
	}

	assert.Greater(t, progress.PercentComplete, 0)
	assert.Less(t, progress.PercentComplete, 100)
}

func TestStageMessage(t *testing.T) {
	t.Parallel()

	assert.Contains(t, StageMessage(models.StageLive), "live")
	assert.Contains(t, StageMessage(models.StageWaitingAdmin), "under review")
	assert.Equal(t, "Continue with your onboarding.", StageMessage(models.OnboardingStage("unknown")))
}

func TestPlanLimits(t *testing.T) {
	t.Parallel()

	limits := models.DefaultPlanLimits()

	assert.Equal(t, 1, limits.PhotoLimit(models.PlanFree))
	assert.Equal(t, 4, limits.PhotoLimit(models.PlanStandard))
	assert.Equal(t, 8, limits.PhotoLimit(models.PlanPro))
	assert.Equal(t, 12, limits.PhotoLimit(models.PlanElite))

	// Unknown tiers fall back to the free ceiling.
	assert.Equal(t, 1, limits.PhotoLimit(models.SubscriptionPlan("platinum")))
}
