package dto

import "masseurmatch_backend/internal/models"

type CreateRateRequest struct {
	Context         string `json:"context" validate:"required,rate_context"`
	DurationMinutes int    `json:"duration_minutes" validate:"required"`
	PriceCents      int64  `json:"price_cents" validate:"required"`
}

type RateResponse struct {
	ID              string             `json:"id"`
	Context         models.RateContext `json:"context"`
	DurationMinutes int                `json:"duration_minutes"`
	PriceCents      int64              `json:"price_cents"`
	IsActive        bool               `json:"is_active"`
}
