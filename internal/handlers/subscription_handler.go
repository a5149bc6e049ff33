package handlers

import (
	"crypto/subtle"
	"net/http"

	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/services"
	"masseurmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
	webhookSecret       string
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService, webhookSecret string) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
		webhookSecret:       webhookSecret,
	}
}

// RegisterRoutes mounts the authenticated billing endpoints.
func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscription")
	{
		subs.GET("", h.GetMySubscription)
		subs.GET("/plans", h.ListPlans)
	}
}

// RegisterWebhookRoutes mounts the vendor callback outside the auth group.
func (h *SubscriptionHandler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/payments", h.PaymentWebhook)
}

func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	db := h.GetDB(c)

	plans, err := h.subscriptionService.ListPlans(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": plans})
}

func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	sub, err := h.subscriptionService.GetMySubscription(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) PaymentWebhook(c *gin.Context) {
	secret := c.GetHeader("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.PaymentWebhookRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.subscriptionService.HandlePaymentWebhook(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
