package handlers

import (
	"masseurmatch_backend/internal/services"
	"masseurmatch_backend/internal/validator"
)

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	OnboardingHandler   *OnboardingHandler
	RateHandler         *RateHandler
	MediaHandler        *MediaHandler
	SubscriptionHandler *SubscriptionHandler
	AdminHandler        *AdminHandler
	DirectoryHandler    *DirectoryHandler
	IdentityHandler     *IdentityHandler
}

type HandlerDeps struct {
	WebhookSecret string
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator, deps HandlerDeps) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.AuthService),
		ProfileHandler:      NewProfileHandler(base, sc.ProfileService),
		OnboardingHandler:   NewOnboardingHandler(base, sc.OnboardingService),
		RateHandler:         NewRateHandler(base, sc.RateService),
		MediaHandler:        NewMediaHandler(base, sc.MediaService),
		SubscriptionHandler: NewSubscriptionHandler(base, sc.SubscriptionService, deps.WebhookSecret),
		AdminHandler:        NewAdminHandler(base, sc.AdminService, sc.MediaService),
		DirectoryHandler:    NewDirectoryHandler(base, sc.DirectoryService),
		IdentityHandler:     NewIdentityHandler(base, sc.OnboardingService, deps.WebhookSecret),
	}
}
