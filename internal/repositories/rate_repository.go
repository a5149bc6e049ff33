package repositories

import (
	"errors"

	"masseurmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRateNotFound = errors.New("rate not found")

type RateRepository interface {
	Create(db *gorm.DB, rate *models.ProfileRate) error
	FindByID(db *gorm.DB, id string) (*models.ProfileRate, error)
	ListByProfile(db *gorm.DB, profileID string) ([]models.ProfileRate, error)
	ListActive(db *gorm.DB, profileID string) ([]models.ProfileRate, error)
	Deactivate(db *gorm.DB, rateID string) error
	DeactivateDuplicate(db *gorm.DB, profileID string, context models.RateContext, durationMinutes int) error
}

type RateRepositoryImpl struct{}

func NewRateRepository() RateRepository {
	return &RateRepositoryImpl{}
}

func (r *RateRepositoryImpl) Create(db *gorm.DB, rate *models.ProfileRate) error {
	return db.Create(rate).Error
}

func (r *RateRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.ProfileRate, error) {
	var rate models.ProfileRate
	err := db.First(&rate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *RateRepositoryImpl) ListByProfile(db *gorm.DB, profileID string) ([]models.ProfileRate, error) {
	var rates []models.ProfileRate
	err := db.Where("profile_id = ?", profileID).
		Order("context ASC, duration_minutes ASC").
		Find(&rates).Error
	return rates, err
}

func (r *RateRepositoryImpl) ListActive(db *gorm.DB, profileID string) ([]models.ProfileRate, error) {
	var rates []models.ProfileRate
	err := db.Where("profile_id = ? AND is_active = true", profileID).
		Order("context ASC, duration_minutes ASC").
		Find(&rates).Error
	return rates, err
}

func (r *RateRepositoryImpl) Deactivate(db *gorm.DB, rateID string) error {
	res := db.Model(&models.ProfileRate{}).Where("id = ?", rateID).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRateNotFound
	}
	return nil
}

// DeactivateDuplicate retires any active rate sharing the same context and
// duration, so a replacement keeps history without violating the active
// uniqueness invariant.
func (r *RateRepositoryImpl) DeactivateDuplicate(db *gorm.DB, profileID string, context models.RateContext, durationMinutes int) error {
	return db.Model(&models.ProfileRate{}).
		Where("profile_id = ? AND context = ? AND duration_minutes = ? AND is_active = true",
			profileID, context, durationMinutes).
		Update("is_active", false).Error
}
