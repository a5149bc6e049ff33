package workers

import (
	"context"
	"time"

	"masseurmatch_backend/internal/logger"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services"

	"gorm.io/gorm"
)

// SubscriptionWorker sweeps billing state in the background: overdue
// subscriptions are downgraded and live profiles that lost their paid plan
// are unpublished.
type SubscriptionWorker struct {
	db          *gorm.DB
	subRepo     repositories.SubscriptionRepository
	profileRepo repositories.ProfileRepository
	onboarding  services.OnboardingService
	graceDays   int
	interval    time.Duration
}

func NewSubscriptionWorker(
	db *gorm.DB,
	subRepo repositories.SubscriptionRepository,
	profileRepo repositories.ProfileRepository,
	onboardingSvc services.OnboardingService,
	graceDays int,
) *SubscriptionWorker {
	return &SubscriptionWorker{
		db:          db,
		subRepo:     subRepo,
		profileRepo: profileRepo,
		onboarding:  onboardingSvc,
		graceDays:   graceDays,
		interval:    6 * time.Hour,
	}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SubscriptionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// sweep is a single pass: expire overdue rows, then re-check every public
// profile whose owner's billing just changed.
func (w *SubscriptionWorker) sweep() {
	expired, err := w.subRepo.ExpireOverdue(w.db, w.graceDays)
	if err != nil {
		logger.Error("failed to expire overdue subscriptions", "error", err)
		return
	}
	if expired == 0 {
		return
	}
	logger.Info("expired overdue subscriptions", "count", expired)

	// Owners of public profiles without an active-like subscription on a
	// paid plan fail the publication gate; SyncPublication pulls them.
	profiles, err := w.profileRepo.ListPublic(w.db)
	if err != nil {
		logger.Error("failed to load public profiles for billing sweep", "error", err)
		return
	}

	for i := range profiles {
		if err := w.onboarding.SyncPublication(w.db, profiles[i].UserID); err != nil {
			logger.Error("failed to sync publication after billing sweep",
				"profile_id", profiles[i].ID, "error", err)
		}
	}
}
