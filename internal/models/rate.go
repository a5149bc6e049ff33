package models

// ProfileRate is a price point for one service context and duration.
// Uniqueness over (profile, context, duration) holds for active rows only;
// deactivated rows are kept for history.
type ProfileRate struct {
	BaseModel
	ProfileID       string      `gorm:"type:uuid;not null;index:idx_rates_profile_context"`
	Context         RateContext `gorm:"not null;index:idx_rates_profile_context"`
	DurationMinutes int         `gorm:"not null"`
	PriceCents      int64       `gorm:"not null"`
	IsActive        bool        `gorm:"default:true"`
}
