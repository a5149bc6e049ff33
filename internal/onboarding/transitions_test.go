package onboarding

import (
	"testing"

	"masseurmatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func mustNext(t *testing.T, from models.OnboardingStage, event Event, ctx TransitionContext) models.OnboardingStage {
	t.Helper()
	next, ok := NextStage(from, event, ctx)
	assert.True(t, ok, "expected a transition for (%s, %s)", from, event)
	return next
}

func TestNextStage_Signup(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.StageNeedsPlan, mustNext(t, models.StageStart, EventSignup, TransitionContext{}))
}

func TestNextStage_PlanSelection(t *testing.T) {
	t.Parallel()

	// Free plan skips the payment step.
	next := mustNext(t, models.StageNeedsPlan, EventSelectPlan, TransitionContext{Plan: models.PlanFree})
	assert.Equal(t, models.StageNeedsIdentity, next)

	// Every paid tier goes through payment first.
	for _, plan := range []models.SubscriptionPlan{models.PlanStandard, models.PlanPro, models.PlanElite} {
		next := mustNext(t, models.StageNeedsPlan, EventSelectPlan, TransitionContext{Plan: plan})
		assert.Equal(t, models.StageNeedsPayment, next, "plan %s", plan)
	}

	// Unknown plan value: no guard passes, no transition.
	_, ok := NextStage(models.StageNeedsPlan, EventSelectPlan, TransitionContext{Plan: "platinum"})
	assert.False(t, ok)
}

func TestNextStage_PaymentAndIdentity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.StageNeedsIdentity,
		mustNext(t, models.StageNeedsPayment, EventPaymentSuccess, TransitionContext{}))

	// Fresh users land in profile building after verification.
	assert.Equal(t, models.StageBuildProfile,
		mustNext(t, models.StageNeedsIdentity, EventIdentityVerified, TransitionContext{}))

	// Returning users with a finished profile jump straight to submission.
	assert.Equal(t, models.StageSubmitAdmin,
		mustNext(t, models.StageNeedsIdentity, EventIdentityVerified, TransitionContext{
			ProfileComplete:   true,
			HasApprovedPhotos: true,
		}))

	assert.Equal(t, models.StageBlocked,
		mustNext(t, models.StageNeedsIdentity, EventIdentityFailed, TransitionContext{}))
}

func TestNextStage_ProfileSaveBranches(t *testing.T) {
	t.Parallel()

	flagged := TransitionContext{AutoModeration: models.ModerationAutoFlagged}
	assert.Equal(t, models.StageFixModeration,
		mustNext(t, models.StageBuildProfile, EventProfileSaved, flagged))

	noPhotos := TransitionContext{AutoModeration: models.ModerationAutoPassed}
	assert.Equal(t, models.StageUploadPhotos,
		mustNext(t, models.StageBuildProfile, EventProfileSaved, noPhotos))

	ready := TransitionContext{
		AutoModeration:    models.ModerationAutoPassed,
		HasApprovedPhotos: true,
		CanSubmit:         true,
	}
	assert.Equal(t, models.StageSubmitAdmin,
		mustNext(t, models.StageBuildProfile, EventProfileSaved, ready))

	// Photos approved but checklist incomplete: stay put.
	_, ok := NextStage(models.StageBuildProfile, EventProfileSaved, TransitionContext{
		AutoModeration:    models.ModerationAutoPassed,
		HasApprovedPhotos: true,
	})
	assert.False(t, ok)
}

func TestNextStage_ReviewFlow(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.StageSubmitAdmin,
		mustNext(t, models.StageUploadPhotos, EventPhotoUploaded, TransitionContext{
			HasApprovedPhotos: true,
			CanSubmit:         true,
		}))

	assert.Equal(t, models.StageBuildProfile,
		mustNext(t, models.StageFixModeration, EventModerationPass, TransitionContext{}))

	assert.Equal(t, models.StageWaitingAdmin,
		mustNext(t, models.StageSubmitAdmin, EventSubmitForReview, TransitionContext{}))
}

func TestNextStage_AdminVerdicts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.StageLive,
		mustNext(t, models.StageWaitingAdmin, EventAdminApprove, TransitionContext{}))

	assert.Equal(t, models.StageBuildProfile,
		mustNext(t, models.StageWaitingAdmin, EventAdminRequestChange, TransitionContext{}))

	assert.Equal(t, models.StageBlocked,
		mustNext(t, models.StageWaitingAdmin, EventAdminReject, TransitionContext{}))
}

func TestNextStage_LiveProfile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.StageWaitingAdmin,
		mustNext(t, models.StageLive, EventEditSensitiveField, TransitionContext{}))

	assert.Equal(t, models.StageBlocked,
		mustNext(t, models.StageLive, EventAdminReject, TransitionContext{}))

	assert.Equal(t, models.StageNeedsPayment,
		mustNext(t, models.StageLive, EventPaymentFailed, TransitionContext{HasPaidPlan: true}))

	// Free-tier profiles have nothing to lose to a payment failure.
	_, ok := NextStage(models.StageLive, EventPaymentFailed, TransitionContext{})
	assert.False(t, ok)
}

func TestNextStage_UndefinedPairs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from  models.OnboardingStage
		event Event
	}{
		{models.StageLive, EventSelectPlan},
		{models.StageBlocked, EventSubmitForReview},
		{models.StageBlocked, EventProfileSaved},
		{models.StageStart, EventAdminApprove},
		{models.StageWaitingAdmin, EventSignup},
	}

	for _, tc := range cases {
		_, ok := NextStage(tc.from, tc.event, TransitionContext{})
		assert.False(t, ok, "(%s, %s) must have no transition", tc.from, tc.event)
	}
}
