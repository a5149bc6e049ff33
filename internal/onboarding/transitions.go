package onboarding

import "masseurmatch_backend/internal/models"

// Event is a UI or webhook action that may move a profile between stages.
type Event string

const (
	EventSignup             Event = "signup"
	EventSelectPlan         Event = "select_plan"
	EventPaymentSuccess     Event = "payment_success"
	EventIdentityVerified   Event = "identity_verified"
	EventIdentityFailed     Event = "identity_failed"
	EventProfileSaved       Event = "profile_saved"
	EventPhotoUploaded      Event = "photo_uploaded"
	EventModerationPass     Event = "moderation_pass"
	EventModerationFlag     Event = "moderation_flag"
	EventModerationBlock    Event = "moderation_block"
	EventSubmitForReview    Event = "submit_for_review"
	EventAdminApprove       Event = "admin_approve"
	EventAdminRequestChange Event = "admin_request_changes"
	EventAdminReject        Event = "admin_reject"
	EventPaymentFailed      Event = "payment_failed"
	EventEditSensitiveField Event = "edit_sensitive_field"
)

// TransitionContext carries the snapshot facts guards consult. Zero values
// are safe: an unset field simply fails the guards that need it.
type TransitionContext struct {
	Plan              models.SubscriptionPlan
	ProfileComplete   bool
	HasApprovedPhotos bool
	CanSubmit         bool
	AutoModeration    models.AutoModeration
	HasPaidPlan       bool
}

type transition struct {
	from  models.OnboardingStage
	to    models.OnboardingStage
	event Event
	guard func(TransitionContext) bool
}

// transitions is the full table. Order matters when several rows share a
// (from, event) pair: the first row whose guard passes wins.
var transitions = []transition{
	{from: models.StageStart, to: models.StageNeedsPlan, event: EventSignup},

	// Plan selection: free skips payment, paid plans require it.
	{
		from: models.StageNeedsPlan, to: models.StageNeedsIdentity, event: EventSelectPlan,
		guard: func(ctx TransitionContext) bool { return ctx.Plan == models.PlanFree },
	},
	{
		from: models.StageNeedsPlan, to: models.StageNeedsPayment, event: EventSelectPlan,
		guard: func(ctx TransitionContext) bool { return ctx.Plan.IsPaid() },
	},

	{from: models.StageNeedsPayment, to: models.StageNeedsIdentity, event: EventPaymentSuccess},

	// Identity verification branches on how far the profile already is.
	{
		from: models.StageNeedsIdentity, to: models.StageBuildProfile, event: EventIdentityVerified,
		guard: func(ctx TransitionContext) bool { return !ctx.ProfileComplete },
	},
	{
		from: models.StageNeedsIdentity, to: models.StageSubmitAdmin, event: EventIdentityVerified,
		guard: func(ctx TransitionContext) bool { return ctx.ProfileComplete && ctx.HasApprovedPhotos },
	},
	{from: models.StageNeedsIdentity, to: models.StageBlocked, event: EventIdentityFailed},

	// Saving the profile routes by the automated moderation verdict.
	{
		from: models.StageBuildProfile, to: models.StageFixModeration, event: EventProfileSaved,
		guard: func(ctx TransitionContext) bool {
			return ctx.AutoModeration == models.ModerationAutoFlagged ||
				ctx.AutoModeration == models.ModerationAutoBlocked
		},
	},
	{
		from: models.StageBuildProfile, to: models.StageUploadPhotos, event: EventProfileSaved,
		guard: func(ctx TransitionContext) bool {
			return ctx.AutoModeration == models.ModerationAutoPassed && !ctx.HasApprovedPhotos
		},
	},
	{
		from: models.StageBuildProfile, to: models.StageSubmitAdmin, event: EventProfileSaved,
		guard: func(ctx TransitionContext) bool {
			return ctx.AutoModeration == models.ModerationAutoPassed &&
				ctx.HasApprovedPhotos && ctx.CanSubmit
		},
	},

	{
		from: models.StageUploadPhotos, to: models.StageSubmitAdmin, event: EventPhotoUploaded,
		guard: func(ctx TransitionContext) bool { return ctx.HasApprovedPhotos && ctx.CanSubmit },
	},

	{from: models.StageFixModeration, to: models.StageBuildProfile, event: EventModerationPass},

	{from: models.StageSubmitAdmin, to: models.StageWaitingAdmin, event: EventSubmitForReview},

	// Admin verdicts. Reject is the administrative freeze; the recoverable
	// path is admin_request_changes, which sends the profile back to editing.
	{from: models.StageWaitingAdmin, to: models.StageLive, event: EventAdminApprove},
	{from: models.StageWaitingAdmin, to: models.StageBuildProfile, event: EventAdminRequestChange},
	{from: models.StageWaitingAdmin, to: models.StageBlocked, event: EventAdminReject},

	// A live profile re-enters review when a sensitive field changes, and can
	// be frozen outright by an admin.
	{from: models.StageLive, to: models.StageWaitingAdmin, event: EventEditSensitiveField},
	{from: models.StageLive, to: models.StageBlocked, event: EventAdminReject},

	{
		from: models.StageLive, to: models.StageNeedsPayment, event: EventPaymentFailed,
		guard: func(ctx TransitionContext) bool { return ctx.HasPaidPlan },
	},
}

// NextStage resolves a transition. The second return is false when no row
// matches the (stage, event) pair or no matching guard passes; callers treat
// that as an illegal action, not an error.
func NextStage(current models.OnboardingStage, event Event, ctx TransitionContext) (models.OnboardingStage, bool) {
	for _, t := range transitions {
		if t.from != current || t.event != event {
			continue
		}
		if t.guard == nil || t.guard(ctx) {
			return t.to, true
		}
	}
	return "", false
}
