package handlers

import (
	"crypto/subtle"
	"net/http"

	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/services"
	"masseurmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// IdentityHandler ingests identity-verification vendor callbacks.
type IdentityHandler struct {
	*BaseHandler
	onboardingService services.OnboardingService
	webhookSecret     string
}

func NewIdentityHandler(base *BaseHandler, onboardingService services.OnboardingService, webhookSecret string) *IdentityHandler {
	return &IdentityHandler{
		BaseHandler:       base,
		onboardingService: onboardingService,
		webhookSecret:     webhookSecret,
	}
}

func (h *IdentityHandler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/identity", h.IdentityWebhook)
}

func (h *IdentityHandler) IdentityWebhook(c *gin.Context) {
	secret := c.GetHeader("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.IdentityWebhookRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.onboardingService.HandleIdentityResult(db, req.UserID, req.Verified); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
