package repositories

import (
	"errors"

	"masseurmatch_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrMediaNotFound = errors.New("media asset not found")

type MediaRepository interface {
	Create(db *gorm.DB, asset *models.MediaAsset) error
	FindByID(db *gorm.DB, id string) (*models.MediaAsset, error)
	ListByProfile(db *gorm.DB, profileID string) ([]models.MediaAsset, error)
	ListApproved(db *gorm.DB, profileID string) ([]models.MediaAsset, error)
	CountByType(db *gorm.DB, profileID string, mediaType models.MediaType) (int64, error)
	CountApprovedPhotos(db *gorm.DB, profileID string) (int64, error)
	UpdateStatus(db *gorm.DB, assetID string, status models.MediaStatus, reason string, vendorPayload datatypes.JSON) error
	SetCover(db *gorm.DB, profileID, assetID string) error
	Reorder(db *gorm.DB, profileID string, orderedIDs []string) error
	Delete(db *gorm.DB, assetID string) error
}

type MediaRepositoryImpl struct{}

func NewMediaRepository() MediaRepository {
	return &MediaRepositoryImpl{}
}

func (r *MediaRepositoryImpl) Create(db *gorm.DB, asset *models.MediaAsset) error {
	return db.Create(asset).Error
}

func (r *MediaRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	err := db.First(&asset, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *MediaRepositoryImpl) ListByProfile(db *gorm.DB, profileID string) ([]models.MediaAsset, error) {
	var assets []models.MediaAsset
	err := db.Where("profile_id = ?", profileID).
		Order("is_cover DESC, position ASC, created_at ASC").
		Find(&assets).Error
	return assets, err
}

func (r *MediaRepositoryImpl) ListApproved(db *gorm.DB, profileID string) ([]models.MediaAsset, error) {
	var assets []models.MediaAsset
	err := db.Where("profile_id = ? AND status = ?", profileID, models.MediaApproved).
		Order("is_cover DESC, position ASC, created_at ASC").
		Find(&assets).Error
	return assets, err
}

func (r *MediaRepositoryImpl) CountByType(db *gorm.DB, profileID string, mediaType models.MediaType) (int64, error) {
	var count int64
	err := db.Model(&models.MediaAsset{}).
		Where("profile_id = ? AND type = ?", profileID, mediaType).
		Count(&count).Error
	return count, err
}

func (r *MediaRepositoryImpl) CountApprovedPhotos(db *gorm.DB, profileID string) (int64, error) {
	var count int64
	err := db.Model(&models.MediaAsset{}).
		Where("profile_id = ? AND type = ? AND status = ?",
			profileID, models.MediaTypePhoto, models.MediaApproved).
		Count(&count).Error
	return count, err
}

func (r *MediaRepositoryImpl) UpdateStatus(db *gorm.DB, assetID string, status models.MediaStatus, reason string, vendorPayload datatypes.JSON) error {
	updates := map[string]interface{}{
		"status":           status,
		"rejection_reason": reason,
	}
	if vendorPayload != nil {
		updates["moderation_response"] = vendorPayload
	}
	return db.Model(&models.MediaAsset{}).Where("id = ?", assetID).Updates(updates).Error
}

// SetCover flips the cover flag to the given asset, clearing it from every
// other asset of the profile in the same transaction so at most one cover
// exists.
func (r *MediaRepositoryImpl) SetCover(db *gorm.DB, profileID, assetID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.MediaAsset{}).
			Where("profile_id = ? AND is_cover = true", profileID).
			Update("is_cover", false).Error
		if err != nil {
			return err
		}

		res := tx.Model(&models.MediaAsset{}).
			Where("id = ? AND profile_id = ?", assetID, profileID).
			Update("is_cover", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMediaNotFound
		}
		return nil
	})
}

func (r *MediaRepositoryImpl) Reorder(db *gorm.DB, profileID string, orderedIDs []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIDs {
			err := tx.Model(&models.MediaAsset{}).
				Where("id = ? AND profile_id = ?", id, profileID).
				Update("position", position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *MediaRepositoryImpl) Delete(db *gorm.DB, assetID string) error {
	return db.Delete(&models.MediaAsset{}, "id = ?", assetID).Error
}
