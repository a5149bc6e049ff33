package models

import "gorm.io/datatypes"

// MediaAsset is a photo or video attached to a profile. At most one asset per
// profile may carry IsCover; the repository swaps the flag atomically.
type MediaAsset struct {
	BaseModel
	ProfileID string      `gorm:"type:uuid;not null;index"`
	Type      MediaType   `gorm:"default:'photo'"`
	Status    MediaStatus `gorm:"default:'pending';index"`
	Position  int         `gorm:"default:0"`
	IsCover   bool        `gorm:"default:false"`

	StorageKey  string `gorm:"not null"`
	PublicURL   string
	ContentType string
	SizeBytes   int64
	Width       int
	Height      int

	// Raw verdict payload from the image-moderation vendor.
	ModerationResponse datatypes.JSON `gorm:"type:jsonb"`
	RejectionReason    string
}
