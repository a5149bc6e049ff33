package handlers

import (
	"net/http"

	"masseurmatch_backend/internal/services"
	"masseurmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RateHandler struct {
	*BaseHandler
	rateService services.RateService
}

func NewRateHandler(base *BaseHandler, rateService services.RateService) *RateHandler {
	return &RateHandler{
		BaseHandler: base,
		rateService: rateService,
	}
}

func (h *RateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rates := rg.Group("/rates")
	{
		rates.GET("", h.ListMyRates)
		rates.POST("", h.CreateRate)
		rates.DELETE("/:id", h.DeactivateRate)
	}
}

func (h *RateHandler) ListMyRates(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	rates, err := h.rateService.ListMyRates(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rates})
}

func (h *RateHandler) CreateRate(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	rate, err := h.rateService.CreateRate(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rate)
}

func (h *RateHandler) DeactivateRate(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.rateService.DeactivateRate(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
