package models

type UserRole string
type IdentityStatus string
type SubscriptionPlan string
type SubscriptionStatus string
type AutoModeration string
type AdminStatus string
type PublicationStatus string
type OnboardingStage string
type MediaType string
type MediaStatus string
type RateContext string
type PaymentStatus string

const (
	UserRoleTherapist UserRole = "therapist"
	UserRoleAdmin     UserRole = "admin"

	IdentityPending  IdentityStatus = "pending"
	IdentityVerified IdentityStatus = "verified"
	IdentityFailed   IdentityStatus = "failed"

	PlanFree     SubscriptionPlan = "free"
	PlanStandard SubscriptionPlan = "standard"
	PlanPro      SubscriptionPlan = "pro"
	PlanElite    SubscriptionPlan = "elite"

	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"

	ModerationDraft       AutoModeration = "draft"
	ModerationAutoPassed  AutoModeration = "auto_passed"
	ModerationAutoFlagged AutoModeration = "auto_flagged"
	ModerationAutoBlocked AutoModeration = "auto_blocked"

	AdminPending          AdminStatus = "pending_admin"
	AdminApproved         AdminStatus = "approved"
	AdminRejected         AdminStatus = "rejected"
	AdminChangesRequested AdminStatus = "changes_requested"

	PublicationPrivate PublicationStatus = "private"
	PublicationPublic  PublicationStatus = "public"

	StageStart         OnboardingStage = "start"
	StageNeedsPlan     OnboardingStage = "needs_plan"
	StageNeedsPayment  OnboardingStage = "needs_payment"
	StageNeedsIdentity OnboardingStage = "needs_identity"
	StageBuildProfile  OnboardingStage = "build_profile"
	StageUploadPhotos  OnboardingStage = "upload_photos"
	StageFixModeration OnboardingStage = "fix_moderation"
	StageSubmitAdmin   OnboardingStage = "submit_admin"
	StageWaitingAdmin  OnboardingStage = "waiting_admin"
	StageLive          OnboardingStage = "live"
	StageBlocked       OnboardingStage = "blocked"

	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"

	MediaPending  MediaStatus = "pending"
	MediaApproved MediaStatus = "approved"
	MediaRejected MediaStatus = "rejected"

	ContextIncall  RateContext = "incall"
	ContextOutcall RateContext = "outcall"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsPaid reports whether the plan requires a payment step during onboarding.
func (p SubscriptionPlan) IsPaid() bool {
	return p == PlanStandard || p == PlanPro || p == PlanElite
}

// IsActiveLike reports whether the subscription currently entitles the user
// to paid features (a trial counts).
func (s SubscriptionStatus) IsActiveLike() bool {
	return s == SubscriptionTrialing || s == SubscriptionActive
}
