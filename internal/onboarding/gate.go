package onboarding

import (
	"strings"

	"masseurmatch_backend/internal/models"
)

// RelationCounts are the aggregate facts the gates need about a profile's
// attached collections; the calling layer computes them in one query pass.
type RelationCounts struct {
	ApprovedPhotos int
	Languages      int
	Services       int
	Setups         int
	IncallRates    int
	OutcallRates   int
}

// Checklist is the submission gate's verdict: valid plus the human-readable
// list of everything still missing.
type Checklist struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing"`
}

// subscriptionOK holds when the user is on the free tier (no subscription
// row) or the subscription is in an active-like status.
func subscriptionOK(sub *models.Subscription) bool {
	return sub == nil || sub.Status.IsActiveLike()
}

// CanSubmitForReview checks whether the profile meets every requirement for
// admin submission, collecting all gaps so the UI can show a full checklist.
func CanSubmitForReview(profile *models.Profile, user *models.User, sub *models.Subscription, counts RelationCounts) Checklist {
	var missing []string

	if user.IdentityStatus != models.IdentityVerified {
		missing = append(missing, "Identity verification required")
	}
	if profile.AutoModeration != models.ModerationAutoPassed {
		missing = append(missing, "Content must pass automatic moderation")
	}

	if strings.TrimSpace(profile.DisplayName) == "" {
		missing = append(missing, "Display name required")
	}
	if profile.CitySlug == "" {
		missing = append(missing, "City required")
	}
	if profile.PhonePublicE164 == "" {
		missing = append(missing, "Phone number required")
	}

	if counts.Languages < 1 {
		missing = append(missing, "At least one language required")
	}
	if counts.Services < 1 {
		missing = append(missing, "At least one service required")
	}
	if counts.Setups < 1 {
		missing = append(missing, "At least one setup required")
	}

	if profile.IncallEnabled && counts.IncallRates < 1 {
		missing = append(missing, "At least one incall rate required")
	}
	if profile.OutcallEnabled && counts.OutcallRates < 1 {
		missing = append(missing, "At least one outcall rate required")
	}

	if counts.ApprovedPhotos < 1 {
		missing = append(missing, "At least one approved photo required")
	}

	if !subscriptionOK(sub) {
		missing = append(missing, "Active subscription required")
	}

	return Checklist{Valid: len(missing) == 0, Missing: missing}
}

// CanPublishProfile is the strict publication predicate: true iff every
// required condition holds for the current snapshot. It short-circuits on the
// first failure; each condition is also independently checkable through
// CanSubmitForReview's checklist.
func CanPublishProfile(profile *models.Profile, user *models.User, sub *models.Subscription, counts RelationCounts) bool {
	if user.IdentityStatus != models.IdentityVerified {
		return false
	}
	if profile.AutoModeration != models.ModerationAutoPassed {
		return false
	}
	if profile.AdminStatus != models.AdminApproved {
		return false
	}
	if !subscriptionOK(sub) {
		return false
	}
	if counts.ApprovedPhotos < 1 {
		return false
	}
	if profile.DisplayName == "" || profile.CitySlug == "" || profile.PhonePublicE164 == "" {
		return false
	}
	if counts.Languages < 1 || counts.Services < 1 || counts.Setups < 1 {
		return false
	}
	if profile.IncallEnabled && counts.IncallRates < 1 {
		return false
	}
	if profile.OutcallEnabled && counts.OutcallRates < 1 {
		return false
	}
	return true
}

// CalculateStage derives the onboarding stage from a data snapshot. It is
// used to reconcile the stored stage after out-of-band changes (webhooks,
// admin edits) rather than replaying events.
func CalculateStage(profile *models.Profile, user *models.User, sub *models.Subscription, counts RelationCounts) models.OnboardingStage {
	if user.IdentityStatus == models.IdentityFailed {
		return models.StageBlocked
	}
	if profile.AdminStatus == models.AdminRejected {
		return models.StageBlocked
	}

	if profile.AdminStatus == models.AdminPending && profile.SubmittedAt != nil {
		return models.StageWaitingAdmin
	}
	if profile.AdminStatus == models.AdminChangesRequested {
		return models.StageBuildProfile
	}

	if profile.PublicationStatus == models.PublicationPublic &&
		profile.AdminStatus == models.AdminApproved &&
		user.IdentityStatus == models.IdentityVerified {
		return models.StageLive
	}

	if sub != nil && !sub.Status.IsActiveLike() {
		return models.StageNeedsPayment
	}

	if user.IdentityStatus == models.IdentityPending {
		return models.StageNeedsIdentity
	}

	if profile.AutoModeration == models.ModerationAutoFlagged ||
		profile.AutoModeration == models.ModerationAutoBlocked {
		return models.StageFixModeration
	}

	if counts.ApprovedPhotos < 1 {
		return models.StageUploadPhotos
	}

	checklist := CanSubmitForReview(profile, user, sub, counts)
	if checklist.Valid && profile.AutoModeration == models.ModerationAutoPassed {
		return models.StageSubmitAdmin
	}

	return models.StageBuildProfile
}
