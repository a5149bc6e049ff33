package dto

import (
	"time"

	"masseurmatch_backend/internal/models"
)

type SubscriptionResponse struct {
	ID               string                    `json:"id"`
	Plan             models.SubscriptionPlan   `json:"plan"`
	Status           models.SubscriptionStatus `json:"status"`
	TrialEnd         *time.Time                `json:"trial_end,omitempty"`
	CurrentPeriodEnd time.Time                 `json:"current_period_end"`
}

type PlanResponse struct {
	Plan       models.SubscriptionPlan `json:"plan"`
	Name       string                  `json:"name"`
	PriceCents int64                   `json:"price_cents"`
	Currency   string                  `json:"currency"`
	Interval   string                  `json:"interval"`
	PhotoLimit int                     `json:"photo_limit"`
}

// PaymentWebhookRequest is the normalized payment-vendor event we ingest.
type PaymentWebhookRequest struct {
	EventType            string                 `json:"event_type" validate:"required"`
	StripeSubscriptionID string                 `json:"stripe_subscription_id" validate:"required"`
	StripeCustomerID     string                 `json:"stripe_customer_id"`
	AmountCents          int64                  `json:"amount_cents"`
	PeriodEnd            int64                  `json:"period_end"` // unix seconds
	Payload              map[string]interface{} `json:"payload"`
}
