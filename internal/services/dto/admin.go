package dto

import (
	"time"

	"masseurmatch_backend/internal/models"
)

type AdminReviewRequest struct {
	Notes string `json:"notes"`
}

type AdminQueueItem struct {
	ProfileID   string             `json:"profile_id"`
	DisplayName string             `json:"display_name"`
	CityName    string             `json:"city_name"`
	AdminStatus models.AdminStatus `json:"admin_status"`
	SubmittedAt *time.Time         `json:"submitted_at,omitempty"`
}
