package services

import (
	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/logger"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services/dto"

	"gorm.io/gorm"
)

// DirectoryService is the public, unauthenticated view of the marketplace.
// Only live profiles ever leave this service.
type DirectoryService interface {
	Search(db *gorm.DB, criteria repositories.DirectorySearchCriteria) (*dto.PaginatedResponse, error)
	GetBySlug(db *gorm.DB, slug string) (*dto.ProfileResponse, error)
}

type DirectoryServiceImpl struct {
	profileRepo repositories.ProfileRepository
	rateRepo    repositories.RateRepository
	mediaRepo   repositories.MediaRepository
}

func NewDirectoryService(
	profileRepo repositories.ProfileRepository,
	rateRepo repositories.RateRepository,
	mediaRepo repositories.MediaRepository,
) DirectoryService {
	return &DirectoryServiceImpl{
		profileRepo: profileRepo,
		rateRepo:    rateRepo,
		mediaRepo:   mediaRepo,
	}
}

func (s *DirectoryServiceImpl) Search(db *gorm.DB, criteria repositories.DirectorySearchCriteria) (*dto.PaginatedResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PerPage < 1 || criteria.PerPage > 50 {
		criteria.PerPage = 20
	}

	profiles, total, err := s.profileRepo.SearchPublic(db, criteria)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	items := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp := toProfileResponse(&profiles[i])
		// Listing cards don't carry owner-only fields.
		resp.OnboardingStage = ""
		resp.ProfileViews = 0
		items = append(items, *resp)
	}
	return dto.NewPaginatedResponse(items, total, criteria.Page, criteria.PerPage), nil
}

func (s *DirectoryServiceImpl) GetBySlug(db *gorm.DB, slug string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindBySlug(db, slug)
	if err != nil {
		return nil, appErrors.ErrProfileNotFound
	}
	if !profile.IsLive() {
		return nil, appErrors.ErrProfileNotFound
	}

	if err := s.profileRepo.IncrementViews(db, profile.ID); err != nil {
		logger.Warn("failed to count profile view", "profile_id", profile.ID, "error", err)
	}

	rates, err := s.rateRepo.ListActive(db, profile.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	photos, err := s.mediaRepo.ListApproved(db, profile.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	resp := toProfileResponse(profile)
	resp.OnboardingStage = ""
	for i := range rates {
		resp.Rates = append(resp.Rates, toRateResponse(&rates[i]))
	}
	for i := range photos {
		resp.Photos = append(resp.Photos, toMediaResponse(&photos[i]))
	}
	return resp, nil
}
