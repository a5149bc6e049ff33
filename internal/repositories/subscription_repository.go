package repositories

import (
	"errors"
	"time"

	"masseurmatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPlanNotFound         = errors.New("subscription plan not found")
)

type SubscriptionRepository interface {
	FindActiveByUserID(db *gorm.DB, userID string) (*models.Subscription, error)
	FindByStripeID(db *gorm.DB, stripeID string) (*models.Subscription, error)
	Activate(db *gorm.DB, sub *models.Subscription) error
	UpdateStatus(db *gorm.DB, subscriptionID string, status models.SubscriptionStatus) error
	ExpireOverdue(db *gorm.DB, graceDays int) (int64, error)

	FindPlan(db *gorm.DB, plan models.SubscriptionPlan) (*models.PlanDefinition, error)
	ListPlans(db *gorm.DB) ([]models.PlanDefinition, error)

	RecordPaymentEvent(db *gorm.DB, event *models.PaymentEvent) error
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

// FindActiveByUserID returns the user's active-like subscription, or
// ErrSubscriptionNotFound for free-tier users.
func (r *SubscriptionRepositoryImpl) FindActiveByUserID(db *gorm.DB, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.
		Where("user_id = ? AND status IN ?", userID,
			[]models.SubscriptionStatus{models.SubscriptionTrialing, models.SubscriptionActive, models.SubscriptionPastDue}).
		Order("created_at DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindByStripeID(db *gorm.DB, stripeID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.First(&sub, "stripe_subscription_id = ?", stripeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Activate creates the new subscription and cancels any previous active-like
// row in the same transaction, keeping the at-most-one-active invariant.
func (r *SubscriptionRepositoryImpl) Activate(db *gorm.DB, sub *models.Subscription) error {
	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND status IN ?", sub.UserID,
				[]models.SubscriptionStatus{models.SubscriptionTrialing, models.SubscriptionActive, models.SubscriptionPastDue}).
			Updates(map[string]interface{}{
				"status":      models.SubscriptionCanceled,
				"canceled_at": now,
			}).Error
		if err != nil {
			return err
		}
		return tx.Create(sub).Error
	})
}

func (r *SubscriptionRepositoryImpl) UpdateStatus(db *gorm.DB, subscriptionID string, status models.SubscriptionStatus) error {
	updates := map[string]interface{}{"status": status}
	if status == models.SubscriptionCanceled {
		updates["canceled_at"] = time.Now()
	}
	return db.Model(&models.Subscription{}).Where("id = ?", subscriptionID).Updates(updates).Error
}

// ExpireOverdue moves active subscriptions past their period end to past_due,
// and past_due ones beyond the grace window to canceled. Returns rows touched.
func (r *SubscriptionRepositoryImpl) ExpireOverdue(db *gorm.DB, graceDays int) (int64, error) {
	now := time.Now()

	overdue := db.Model(&models.Subscription{}).
		Where("status = ? AND current_period_end < ?", models.SubscriptionActive, now).
		Update("status", models.SubscriptionPastDue)
	if overdue.Error != nil {
		return 0, overdue.Error
	}

	cutoff := now.AddDate(0, 0, -graceDays)
	canceled := db.Model(&models.Subscription{}).
		Where("status = ? AND current_period_end < ?", models.SubscriptionPastDue, cutoff).
		Updates(map[string]interface{}{
			"status":      models.SubscriptionCanceled,
			"canceled_at": now,
		})
	if canceled.Error != nil {
		return overdue.RowsAffected, canceled.Error
	}

	return overdue.RowsAffected + canceled.RowsAffected, nil
}

func (r *SubscriptionRepositoryImpl) FindPlan(db *gorm.DB, plan models.SubscriptionPlan) (*models.PlanDefinition, error) {
	var def models.PlanDefinition
	err := db.First(&def, "plan = ? AND is_active = true", plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *SubscriptionRepositoryImpl) ListPlans(db *gorm.DB) ([]models.PlanDefinition, error) {
	var plans []models.PlanDefinition
	err := db.Where("is_active = true").Order("price_cents ASC").Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepositoryImpl) RecordPaymentEvent(db *gorm.DB, event *models.PaymentEvent) error {
	return db.Create(event).Error
}
