package services

import (
	"masseurmatch_backend/internal/auth"
	"masseurmatch_backend/internal/imageprocessor"
	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/storage"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	OnboardingService   OnboardingService
	RateService         RateService
	MediaService        MediaService
	SubscriptionService SubscriptionService
	AdminService        AdminService
	DirectoryService    DirectoryService
	ModerationService   ModerationService
}

type ServiceDeps struct {
	Tokens       *auth.TokenManager
	Storage      storage.ObjectStore
	Processor    *imageprocessor.Processor
	PlanLimits   models.PlanLimits
	UploadLimits UploadLimits
}

// NewServiceContainer wires repositories and cross-service dependencies.
func NewServiceContainer(deps ServiceDeps) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	subRepo := repositories.NewSubscriptionRepository()
	mediaRepo := repositories.NewMediaRepository()
	rateRepo := repositories.NewRateRepository()

	moderation := NewModerationService()
	onboardingSvc := NewOnboardingService(userRepo, profileRepo, subRepo)

	return &ServiceContainer{
		AuthService:       NewAuthService(userRepo, profileRepo, deps.Tokens),
		ProfileService:    NewProfileService(profileRepo, onboardingSvc, moderation),
		OnboardingService: onboardingSvc,
		RateService:       NewRateService(profileRepo, rateRepo, onboardingSvc),
		MediaService: NewMediaService(
			profileRepo, mediaRepo, subRepo, onboardingSvc,
			deps.Storage, deps.Processor, deps.PlanLimits, deps.UploadLimits,
		),
		SubscriptionService: NewSubscriptionService(subRepo, onboardingSvc, deps.PlanLimits),
		AdminService:        NewAdminService(userRepo, profileRepo, subRepo, onboardingSvc),
		DirectoryService:    NewDirectoryService(profileRepo, rateRepo, mediaRepo),
		ModerationService:   moderation,
	}
}
