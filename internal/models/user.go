package models

import "time"

type User struct {
	BaseModelWithDeleted
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"default:'therapist'"`

	// Identity verification is delegated to Stripe Identity; we only
	// track the session reference and the resulting verdict.
	IdentityStatus          IdentityStatus `gorm:"default:'pending'"`
	StripeCustomerID        string
	StripeIdentitySessionID string
	IdentityVerifiedAt      *time.Time
	LastLoginAt             *time.Time

	Profile *Profile `gorm:"foreignKey:UserID"`
}
