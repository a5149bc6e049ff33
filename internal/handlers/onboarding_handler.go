package handlers

import (
	"net/http"

	"masseurmatch_backend/internal/models"
	"masseurmatch_backend/internal/services"
	"masseurmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	*BaseHandler
	onboardingService services.OnboardingService
}

func NewOnboardingHandler(base *BaseHandler, onboardingService services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		BaseHandler:       base,
		onboardingService: onboardingService,
	}
}

func (h *OnboardingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	onboarding := rg.Group("/onboarding")
	{
		onboarding.GET("/state", h.GetState)
		onboarding.POST("/plan", h.SelectPlan)
		onboarding.POST("/submit", h.SubmitForReview)
	}
}

// GetState returns the dashboard view: stage, user-facing message, progress
// steps and the submission checklist.
func (h *OnboardingHandler) GetState(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	state, err := h.onboardingService.State(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *OnboardingHandler) SelectPlan(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.SelectPlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	state, err := h.onboardingService.SelectPlan(db, userID, models.SubscriptionPlan(req.Plan))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *OnboardingHandler) SubmitForReview(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	state, err := h.onboardingService.SubmitForReview(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
