package routes

import (
	"masseurmatch_backend/internal/auth"
	"masseurmatch_backend/internal/handlers"
	"masseurmatch_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route of the application.
func RegisterRoutes(
	router *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
) {
	api := router.Group("/api/v1")

	// Public surface: registration, login, the therapist directory and
	// vendor webhooks (each webhook checks its own shared secret).
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.DirectoryHandler.RegisterRoutes(api)
		appHandlers.SubscriptionHandler.RegisterWebhookRoutes(api)
		appHandlers.AdminHandler.RegisterWebhookRoutes(api)
		appHandlers.IdentityHandler.RegisterWebhookRoutes(api)
	}

	// Therapist self-service, behind authentication.
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(tokens))
	{
		appHandlers.ProfileHandler.RegisterRoutes(authed)
		appHandlers.OnboardingHandler.RegisterRoutes(authed)
		appHandlers.RateHandler.RegisterRoutes(authed)
		appHandlers.MediaHandler.RegisterRoutes(authed)
		appHandlers.SubscriptionHandler.RegisterRoutes(authed)
	}

	// Review console, admins only.
	adminGroup := api.Group("")
	adminGroup.Use(middleware.AuthMiddleware(tokens))
	adminGroup.Use(middleware.AdminOnly())
	adminGroup.Use(middleware.RequirePermission("profiles:review"))
	{
		appHandlers.AdminHandler.RegisterRoutes(adminGroup)
	}
}
