package models

import (
	"time"

	"gorm.io/datatypes"
)

type PlanDefinition struct {
	BaseModel
	Plan       SubscriptionPlan `gorm:"uniqueIndex;not null"`
	Name       string           `gorm:"not null"`
	PriceCents int64            `gorm:"not null"`
	Currency   string           `gorm:"default:'USD'"`
	Interval   string           `gorm:"not null"`   // "monthly", "yearly"
	Features   datatypes.JSON   `gorm:"type:jsonb"` // {"featured_placement": true, ...}
	Limits     datatypes.JSON   `gorm:"type:jsonb"` // {"photos": 8, "videos": 1}
	IsActive   bool             `gorm:"default:true"`
}

// Subscription tracks a user's billing state. At most one row per user may be
// in an active-like status; the repository enforces this by canceling the
// previous row inside the same transaction that creates a new one.
type Subscription struct {
	BaseModel
	UserID string             `gorm:"type:uuid;not null;index"`
	Plan   SubscriptionPlan   `gorm:"not null"`
	Status SubscriptionStatus `gorm:"default:'trialing';index"`

	StripeSubscriptionID string `gorm:"uniqueIndex"`
	TrialEnd             *time.Time
	CurrentPeriodEnd     time.Time
	CanceledAt           *time.Time
}

// PaymentEvent is an append-only record of payment-vendor webhook deliveries,
// kept for audit. Subscriptions transition from these, never the other way.
type PaymentEvent struct {
	BaseModel
	UserID         string        `gorm:"type:uuid;index"`
	SubscriptionID string        `gorm:"type:uuid;index"`
	EventType      string        `gorm:"not null"` // vendor event name
	Status         PaymentStatus `gorm:"default:'pending'"`
	AmountCents    int64
	Payload        datatypes.JSON `gorm:"type:jsonb"`
	ProcessedAt    *time.Time
}
