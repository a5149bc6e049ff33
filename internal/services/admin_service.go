package services

import (
	"time"

	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/logger"
	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/onboarding"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services/dto"

	"gorm.io/gorm"
)

// AdminService covers the human review side of the publication pipeline.
type AdminService interface {
	ReviewQueue(db *gorm.DB, page, perPage int) (*dto.PaginatedResponse, error)
	Approve(db *gorm.DB, profileID, notes string) error
	RequestChanges(db *gorm.DB, profileID, notes string) error
	Reject(db *gorm.DB, profileID, notes string) error
	Block(db *gorm.DB, profileID, notes string) error
}

type AdminServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	subRepo     repositories.SubscriptionRepository
	onboarding  OnboardingService
}

func NewAdminService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	subRepo repositories.SubscriptionRepository,
	onboardingSvc OnboardingService,
) AdminService {
	return &AdminServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		subRepo:     subRepo,
		onboarding:  onboardingSvc,
	}
}

func (s *AdminServiceImpl) ReviewQueue(db *gorm.DB, page, perPage int) (*dto.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	profiles, total, err := s.profileRepo.FindByAdminStatus(db, models.AdminPending, perPage, (page-1)*perPage)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	items := make([]dto.AdminQueueItem, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, dto.AdminQueueItem{
			ProfileID:   p.ID,
			DisplayName: p.DisplayName,
			CityName:    p.CityName,
			AdminStatus: p.AdminStatus,
			SubmittedAt: p.SubmittedAt,
		})
	}
	return dto.NewPaginatedResponse(items, total, page, perPage), nil
}

// reviewable loads the profile and rejects verdicts on profiles that never
// reached the review queue.
func (s *AdminServiceImpl) reviewable(db *gorm.DB, profileID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(db, profileID)
	if err != nil {
		return nil, appErrors.ErrProfileNotFound
	}
	switch profile.OnboardingStage {
	case models.StageWaitingAdmin, models.StageLive:
		return profile, nil
	default:
		return nil, appErrors.ErrIllegalTransition
	}
}

func (s *AdminServiceImpl) Approve(db *gorm.DB, profileID, notes string) error {
	profile, err := s.reviewable(db, profileID)
	if err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(db, profile.UserID)
	if err != nil {
		return appErrors.ErrUserNotFound
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.SetAdminStatus(tx, profile.ID, models.AdminApproved, notes); err != nil {
			return err
		}
		if err := tx.Model(&models.Profile{}).
			Where("id = ?", profile.ID).
			Update("approved_at", time.Now().UTC()).Error; err != nil {
			return err
		}
		if err := s.onboarding.Apply(tx, profile.UserID, onboarding.EventAdminApprove); err != nil {
			return err
		}

		// Publication is a separate gate from approval: every condition
		// must hold at the moment of going public.
		profile.AdminStatus = models.AdminApproved
		sub, err := s.subRepo.FindActiveByUserID(tx, profile.UserID)
		if err != nil {
			if !appErrors.Is(err, repositories.ErrSubscriptionNotFound) {
				return err
			}
			sub = nil
		}
		counts, err := s.profileRepo.RelationCounts(tx, profile)
		if err != nil {
			return err
		}
		if onboarding.CanPublishProfile(profile, user, sub, counts) {
			logger.Info("profile published", "profile_id", profile.ID)
			return s.profileRepo.SetPublication(tx, profile.ID, models.PublicationPublic)
		}
		logger.Warn("approved profile failed the publication gate", "profile_id", profile.ID)
		return nil
	})
}

func (s *AdminServiceImpl) RequestChanges(db *gorm.DB, profileID, notes string) error {
	profile, err := s.reviewable(db, profileID)
	if err != nil {
		return err
	}
	if notes == "" {
		return appErrors.NewBadRequestError("Change requests must explain what to fix")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.SetAdminStatus(tx, profile.ID, models.AdminChangesRequested, notes); err != nil {
			return err
		}
		if err := s.profileRepo.SetPublication(tx, profile.ID, models.PublicationPrivate); err != nil {
			return err
		}
		return s.onboarding.Apply(tx, profile.UserID, onboarding.EventAdminRequestChange)
	})
}

func (s *AdminServiceImpl) Reject(db *gorm.DB, profileID, notes string) error {
	profile, err := s.reviewable(db, profileID)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.SetAdminStatus(tx, profile.ID, models.AdminRejected, notes); err != nil {
			return err
		}
		if err := s.profileRepo.SetPublication(tx, profile.ID, models.PublicationPrivate); err != nil {
			return err
		}
		logger.Warn("profile rejected", "profile_id", profile.ID)
		return s.onboarding.Apply(tx, profile.UserID, onboarding.EventAdminReject)
	})
}

// Block freezes a live profile. Unlike Reject it only applies to listings
// that already made it to the directory.
func (s *AdminServiceImpl) Block(db *gorm.DB, profileID, notes string) error {
	profile, err := s.profileRepo.FindByID(db, profileID)
	if err != nil {
		return appErrors.ErrProfileNotFound
	}
	if profile.OnboardingStage != models.StageLive {
		return appErrors.ErrIllegalTransition
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.SetAdminStatus(tx, profile.ID, models.AdminRejected, notes); err != nil {
			return err
		}
		if err := s.profileRepo.SetPublication(tx, profile.ID, models.PublicationPrivate); err != nil {
			return err
		}
		logger.Warn("live profile blocked", "profile_id", profile.ID)
		return s.onboarding.Apply(tx, profile.UserID, onboarding.EventAdminReject)
	})
}
