package services

import (
	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/onboarding"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services/dto"

	"gorm.io/gorm"
)

type RateService interface {
	CreateRate(db *gorm.DB, userID string, req *dto.CreateRateRequest) (*dto.RateResponse, error)
	ListMyRates(db *gorm.DB, userID string) ([]dto.RateResponse, error)
	DeactivateRate(db *gorm.DB, userID, rateID string) error
}

type RateServiceImpl struct {
	profileRepo repositories.ProfileRepository
	rateRepo    repositories.RateRepository
	onboarding  OnboardingService
}

func NewRateService(
	profileRepo repositories.ProfileRepository,
	rateRepo repositories.RateRepository,
	onboardingSvc OnboardingService,
) RateService {
	return &RateServiceImpl{
		profileRepo: profileRepo,
		rateRepo:    rateRepo,
		onboarding:  onboardingSvc,
	}
}

func toRateResponse(r *models.ProfileRate) dto.RateResponse {
	return dto.RateResponse{
		ID:              r.ID,
		Context:         r.Context,
		DurationMinutes: r.DurationMinutes,
		PriceCents:      r.PriceCents,
		IsActive:        r.IsActive,
	}
}

func (s *RateServiceImpl) CreateRate(db *gorm.DB, userID string, req *dto.CreateRateRequest) (*dto.RateResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, appErrors.ErrProfileNotFound
	}

	existing, err := s.rateRepo.ListActive(db, profile.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	input := onboarding.RateInput{
		Context:         models.RateContext(req.Context),
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
	}
	// The same-slot rate is retired below, so the consistency check runs
	// against the rates that will still be active afterwards.
	peers := make([]models.ProfileRate, 0, len(existing))
	for _, r := range existing {
		if r.Context == input.Context && r.DurationMinutes == input.DurationMinutes {
			continue
		}
		peers = append(peers, r)
	}
	if check := onboarding.ValidateRateCreation(input, peers); !check.Valid {
		return nil, appErrors.ErrRateRuleViolation.WithDetails(onboarding.GroupErrors(check.Errors))
	}

	rate := &models.ProfileRate{
		ProfileID:       profile.ID,
		Context:         input.Context,
		DurationMinutes: input.DurationMinutes,
		PriceCents:      input.PriceCents,
		IsActive:        true,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		// A new rate for the same context and duration replaces the old one.
		if err := s.rateRepo.DeactivateDuplicate(tx, profile.ID, input.Context, input.DurationMinutes); err != nil {
			return err
		}
		return s.rateRepo.Create(tx, rate)
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	resp := toRateResponse(rate)
	return &resp, nil
}

func (s *RateServiceImpl) ListMyRates(db *gorm.DB, userID string) ([]dto.RateResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, appErrors.ErrProfileNotFound
	}
	rates, err := s.rateRepo.ListByProfile(db, profile.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	out := make([]dto.RateResponse, 0, len(rates))
	for i := range rates {
		out = append(out, toRateResponse(&rates[i]))
	}
	return out, nil
}

func (s *RateServiceImpl) DeactivateRate(db *gorm.DB, userID, rateID string) error {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return appErrors.ErrProfileNotFound
	}
	rate, err := s.rateRepo.FindByID(db, rateID)
	if err != nil {
		return appErrors.ErrRateNotFound
	}
	if rate.ProfileID != profile.ID {
		return appErrors.ErrForbidden
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.rateRepo.Deactivate(tx, rateID); err != nil {
			return err
		}
		// Losing the last rate for an enabled context can invalidate a
		// live listing.
		return s.onboarding.SyncPublication(tx, userID)
	})
	if err != nil {
		var appErr *appErrors.AppError
		if appErrors.As(err, &appErr) {
			return appErr
		}
		return appErrors.InternalError(err)
	}
	return nil
}
