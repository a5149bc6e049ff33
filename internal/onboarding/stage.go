package onboarding

import "masseurmatch_backend/internal/models"

// sensitiveFields are the profile attributes whose post-publication edits
// send a live profile back through admin review.
var sensitiveFields = map[string]struct{}{
	"display_name":               {},
	"bio_short":                  {},
	"bio_long":                   {},
	"incall_enabled":             {},
	"outcall_enabled":            {},
	"outcall_radius_miles":       {},
	"outcall_areas":              {},
	"custom_service_description": {},
}

// IsSensitiveField reports whether editing the named field on a live profile
// requires re-approval.
func IsSensitiveField(field string) bool {
	_, ok := sensitiveFields[field]
	return ok
}

// SensitiveFields returns the re-approval field set in stable order.
func SensitiveFields() []string {
	return []string{
		"display_name",
		"bio_short",
		"bio_long",
		"incall_enabled",
		"outcall_enabled",
		"outcall_radius_miles",
		"outcall_areas",
		"custom_service_description",
	}
}

// ProgressStep is one entry in the onboarding progress indicator.
type ProgressStep struct {
	Stage     models.OnboardingStage `json:"stage"`
	Name      string                 `json:"name"`
	Completed bool                   `json:"completed"`
	Current   bool                   `json:"current"`
}

// Progress summarizes how far through the pipeline a profile is.
type Progress struct {
	Current         models.OnboardingStage `json:"current"`
	Steps           []ProgressStep         `json:"steps"`
	PercentComplete int                    `json:"percent_complete"`
}

// CalculateProgress builds the step list for the current stage. The payment
// step only appears for users who picked a paid plan.
func CalculateProgress(stage models.OnboardingStage, hasPaidPlan bool) Progress {
	type step struct {
		stage models.OnboardingStage
		name  string
	}

	all := []step{
		{models.StageStart, "Create Account"},
		{models.StageNeedsPlan, "Select Plan"},
	}
	if hasPaidPlan {
		all = append(all, step{models.StageNeedsPayment, "Payment"})
	}
	all = append(all,
		step{models.StageNeedsIdentity, "Verify Identity"},
		step{models.StageBuildProfile, "Build Profile"},
		step{models.StageUploadPhotos, "Upload Photos"},
		step{models.StageSubmitAdmin, "Submit for Review"},
		step{models.StageWaitingAdmin, "Admin Review"},
		step{models.StageLive, "Published"},
	)

	currentIndex := -1
	for i, s := range all {
		if s.stage == stage {
			currentIndex = i
			break
		}
	}

	steps := make([]ProgressStep, len(all))
	for i, s := range all {
		steps[i] = ProgressStep{
			Stage:     s.stage,
			Name:      s.name,
			Completed: currentIndex >= 0 && i < currentIndex,
			Current:   i == currentIndex,
		}
	}

	percent := 0
	if currentIndex > 0 {
		percent = currentIndex * 100 / len(all)
	}

	return Progress{Current: stage, Steps: steps, PercentComplete: percent}
}

// stageMessages are the user-facing prompts shown per stage.
var stageMessages = map[models.OnboardingStage]string{
	models.StageStart:         "Welcome! Let's get started.",
	models.StageNeedsPlan:     "Choose the plan that fits your needs.",
	models.StageNeedsPayment:  "Complete payment to continue.",
	models.StageNeedsIdentity: "Verify your identity to publish your profile.",
	models.StageBuildProfile:  "Complete your profile with services, rates, and hours.",
	models.StageUploadPhotos:  "Upload at least one professional photo.",
	models.StageFixModeration: "Please address the moderation issues to continue.",
	models.StageSubmitAdmin:   "Ready to submit? Review your profile and send for approval.",
	models.StageWaitingAdmin:  "Your profile is under review. This usually takes 24-48 hours.",
	models.StageLive:          "Congratulations! Your profile is live.",
	models.StageBlocked:       "Your account has been blocked. Please contact support.",
}

// StageMessage returns the prompt for a stage.
func StageMessage(stage models.OnboardingStage) string {
	if msg, ok := stageMessages[stage]; ok {
		return msg
	}
	return "Continue with your onboarding."
}
