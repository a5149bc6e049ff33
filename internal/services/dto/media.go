package dto

import (
	"time"

	"masseurmatch_backend/internal/models"
)

type MediaResponse struct {
	ID              string             `json:"id"`
	Type            models.MediaType   `json:"type"`
	Status          models.MediaStatus `json:"status"`
	Position        int                `json:"position"`
	IsCover         bool               `json:"is_cover"`
	PublicURL       string             `json:"public_url,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

type ReorderMediaRequest struct {
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1"`
}

// MediaModerationRequest is the image-moderation vendor callback payload.
type MediaModerationRequest struct {
	AssetID string                 `json:"asset_id" validate:"required"`
	Verdict string                 `json:"verdict" validate:"required,oneof=approved rejected"`
	Reason  string                 `json:"reason"`
	Payload map[string]interface{} `json:"payload"`
}
