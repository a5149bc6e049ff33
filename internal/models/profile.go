package models

import (
	"time"

	"github.com/lib/pq"
)

type Profile struct {
	BaseModelWithDeleted
	UserID string `gorm:"type:uuid;uniqueIndex;not null"`
	Slug   string `gorm:"uniqueIndex"`

	// Identity
	DisplayName string
	BioShort    string
	BioLong     string
	DateOfBirth *time.Time

	// Location
	CitySlug    string `gorm:"index"`
	CityName    string
	RegionCode  string
	CountryCode string
	Latitude    float64
	Longitude   float64
	Address     string

	// Contact
	PhonePublicE164 string
	WhatsappE164    string
	PublicEmail     string
	Website         string

	// Service delivery
	IncallEnabled      bool
	OutcallEnabled     bool
	OutcallRadiusMiles int

	Languages pq.StringArray `gorm:"type:text[]" json:"languages"`
	Services  pq.StringArray `gorm:"type:text[]" json:"services"`
	Setups    pq.StringArray `gorm:"type:text[]" json:"setups"`

	// Moderation / publication pipeline
	AutoModeration    AutoModeration    `gorm:"default:'draft'"`
	AdminStatus       AdminStatus       `gorm:"default:'pending_admin'"`
	PublicationStatus PublicationStatus `gorm:"default:'private'"`
	OnboardingStage   OnboardingStage   `gorm:"default:'start';index"`

	SubmittedAt  *time.Time
	ApprovedAt   *time.Time
	AdminNotes   string
	ProfileViews int

	// Relations
	Media []MediaAsset  `gorm:"foreignKey:ProfileID"`
	Rates []ProfileRate `gorm:"foreignKey:ProfileID"`
}

// IsLive reports whether the profile is publicly visible.
func (p *Profile) IsLive() bool {
	return p.PublicationStatus == PublicationPublic && p.AdminStatus == AdminApproved
}
