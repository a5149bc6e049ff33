package dto

import (
	"time"

	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/onboarding"
)

type UpdateProfileRequest struct {
	DisplayName        *string  `json:"display_name" validate:"omitempty,min=2,max=50"`
	BioShort           *string  `json:"bio_short"`
	BioLong            *string  `json:"bio_long"`
	CitySlug           *string  `json:"city_slug"`
	CityName           *string  `json:"city_name"`
	RegionCode         *string  `json:"region_code"`
	CountryCode        *string  `json:"country_code"`
	PhonePublicE164    *string  `json:"phone_public_e164" validate:"omitempty,e164_phone"`
	WhatsappE164       *string  `json:"whatsapp_e164" validate:"omitempty,e164_phone"`
	PublicEmail        *string  `json:"public_email" validate:"omitempty,email"`
	Website            *string  `json:"website" validate:"omitempty,url"`
	IncallEnabled      *bool    `json:"incall_enabled"`
	OutcallEnabled     *bool    `json:"outcall_enabled"`
	OutcallRadiusMiles *int     `json:"outcall_radius_miles"`
	Languages          []string `json:"languages"`
	Services           []string `json:"services"`
	Setups             []string `json:"setups"`
}

type ProfileResponse struct {
	ID                string                   `json:"id"`
	Slug              string                   `json:"slug"`
	DisplayName       string                   `json:"display_name"`
	BioShort          string                   `json:"bio_short"`
	BioLong           string                   `json:"bio_long,omitempty"`
	CitySlug          string                   `json:"city_slug"`
	CityName          string                   `json:"city_name"`
	PhonePublicE164   string                   `json:"phone_public_e164,omitempty"`
	WhatsappE164      string                   `json:"whatsapp_e164,omitempty"`
	Website           string                   `json:"website,omitempty"`
	IncallEnabled     bool                     `json:"incall_enabled"`
	OutcallEnabled    bool                     `json:"outcall_enabled"`
	Languages         []string                 `json:"languages"`
	Services          []string                 `json:"services"`
	Setups            []string                 `json:"setups"`
	PublicationStatus models.PublicationStatus `json:"publication_status,omitempty"`
	OnboardingStage   models.OnboardingStage   `json:"onboarding_stage,omitempty"`
	ProfileViews      int                      `json:"profile_views,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`

	// Filled on the public detail view only.
	Rates  []RateResponse  `json:"rates,omitempty"`
	Photos []MediaResponse `json:"photos,omitempty"`
}

// OnboardingStateResponse is the dashboard view of onboarding progress.
type OnboardingStateResponse struct {
	Stage     models.OnboardingStage `json:"stage"`
	Message   string                 `json:"message"`
	Progress  onboarding.Progress    `json:"progress"`
	Checklist onboarding.Checklist   `json:"checklist"`
}

type SelectPlanRequest struct {
	Plan string `json:"plan" validate:"required,plan"`
}
