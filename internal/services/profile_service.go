package services

import (
	"fmt"
	"regexp"
	"strings"

	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/logger"
	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/onboarding"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services/dto"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetMyProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	UpdateMyProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	onboarding  OnboardingService
	moderation  ModerationService
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	onboardingSvc OnboardingService,
	moderation ModerationService,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		onboarding:  onboardingSvc,
		moderation:  moderation,
	}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// makeSlug builds a url-safe slug from the display name, suffixed with a
// short id fragment so two therapists with the same name never collide.
func makeSlug(displayName, profileID string) string {
	base := strings.Trim(slugCleaner.ReplaceAllString(strings.ToLower(displayName), "-"), "-")
	if base == "" {
		base = "therapist"
	}
	suffix := profileID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("%s-%s", base, suffix)
}

func toProfileResponse(p *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:                p.ID,
		Slug:              p.Slug,
		DisplayName:       p.DisplayName,
		BioShort:          p.BioShort,
		BioLong:           p.BioLong,
		CitySlug:          p.CitySlug,
		CityName:          p.CityName,
		PhonePublicE164:   p.PhonePublicE164,
		WhatsappE164:      p.WhatsappE164,
		Website:           p.Website,
		IncallEnabled:     p.IncallEnabled,
		OutcallEnabled:    p.OutcallEnabled,
		Languages:         p.Languages,
		Services:          p.Services,
		Setups:            p.Setups,
		PublicationStatus: p.PublicationStatus,
		OnboardingStage:   p.OnboardingStage,
		ProfileViews:      p.ProfileViews,
		CreatedAt:         p.CreatedAt,
	}
}

func (s *ProfileServiceImpl) GetMyProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, appErrors.ErrProfileNotFound
	}
	return toProfileResponse(profile), nil
}

// applyUpdate copies the request's set fields onto the profile and reports
// which fields changed.
func applyUpdate(p *models.Profile, req *dto.UpdateProfileRequest) []string {
	var changed []string
	setString := func(field string, dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			changed = append(changed, field)
		}
	}
	setBool := func(field string, dst *bool, src *bool) {
		if src != nil && *src != *dst {
			*dst = *src
			changed = append(changed, field)
		}
	}

	setString("display_name", &p.DisplayName, req.DisplayName)
	setString("bio_short", &p.BioShort, req.BioShort)
	setString("bio_long", &p.BioLong, req.BioLong)
	setString("city_slug", &p.CitySlug, req.CitySlug)
	setString("city_name", &p.CityName, req.CityName)
	setString("region_code", &p.RegionCode, req.RegionCode)
	setString("country_code", &p.CountryCode, req.CountryCode)
	setString("phone_public_e164", &p.PhonePublicE164, req.PhonePublicE164)
	setString("whatsapp_e164", &p.WhatsappE164, req.WhatsappE164)
	setString("public_email", &p.PublicEmail, req.PublicEmail)
	setString("website", &p.Website, req.Website)
	setBool("incall_enabled", &p.IncallEnabled, req.IncallEnabled)
	setBool("outcall_enabled", &p.OutcallEnabled, req.OutcallEnabled)
	if req.OutcallRadiusMiles != nil && *req.OutcallRadiusMiles != p.OutcallRadiusMiles {
		p.OutcallRadiusMiles = *req.OutcallRadiusMiles
		changed = append(changed, "outcall_radius_miles")
	}
	if req.Languages != nil {
		p.Languages = pq.StringArray(req.Languages)
		changed = append(changed, "languages")
	}
	if req.Services != nil {
		p.Services = pq.StringArray(req.Services)
		changed = append(changed, "services")
	}
	if req.Setups != nil {
		p.Setups = pq.StringArray(req.Setups)
		changed = append(changed, "setups")
	}
	return changed
}

func (s *ProfileServiceImpl) UpdateMyProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, appErrors.ErrProfileNotFound
	}

	wasLive := profile.IsLive()
	changed := applyUpdate(profile, req)
	if len(changed) == 0 {
		return toProfileResponse(profile), nil
	}

	// Only the fields this request touched are validated, so a partial save
	// never fails on a field the user has not reached yet.
	var fieldErrs []onboarding.FieldError
	for _, field := range changed {
		switch field {
		case "display_name":
			fieldErrs = append(fieldErrs, onboarding.ValidateDisplayName(profile.DisplayName).Errors...)
		case "bio_short":
			fieldErrs = append(fieldErrs, onboarding.ValidateBio(profile.BioShort, onboarding.BioShort).Errors...)
		case "bio_long":
			fieldErrs = append(fieldErrs, onboarding.ValidateBio(profile.BioLong, onboarding.BioLong).Errors...)
		case "phone_public_e164":
			fieldErrs = append(fieldErrs, onboarding.ValidatePhoneE164(profile.PhonePublicE164).Errors...)
		case "outcall_radius_miles":
			fieldErrs = append(fieldErrs, onboarding.ValidateOutcallRadius(&profile.OutcallRadiusMiles).Errors...)
		}
	}
	if len(fieldErrs) > 0 {
		return nil, appErrors.ValidationError(onboarding.GroupErrors(fieldErrs))
	}

	if profile.Slug == "" && profile.DisplayName != "" {
		profile.Slug = makeSlug(profile.DisplayName, profile.ID)
	}

	// Text changes re-run auto moderation; a flagged or blocked verdict is
	// resolved in the fix_moderation stage, not silently published.
	profile.AutoModeration = s.moderation.ScreenProfileText(
		profile.DisplayName, profile.BioShort, profile.BioLong,
	)

	sensitiveTouched := false
	for _, field := range changed {
		if onboarding.IsSensitiveField(field) {
			sensitiveTouched = true
			break
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if wasLive && sensitiveTouched {
			// Live profiles editing sensitive fields go back through review.
			profile.PublicationStatus = models.PublicationPrivate
			profile.AdminStatus = models.AdminPending
		}
		if err := s.profileRepo.Update(tx, profile); err != nil {
			return err
		}
		if wasLive && sensitiveTouched {
			logger.Info("sensitive field edit pulled profile back to review",
				"profile_id", profile.ID, "fields", changed)
			return s.onboarding.Apply(tx, userID, onboarding.EventEditSensitiveField)
		}
		return s.onboarding.Apply(tx, userID, onboarding.EventProfileSaved)
	})
	if err != nil {
		if appErr, isApp := err.(*appErrors.AppError); isApp {
			return nil, appErr
		}
		return nil, appErrors.InternalError(err)
	}

	refreshed, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return toProfileResponse(refreshed), nil
}
