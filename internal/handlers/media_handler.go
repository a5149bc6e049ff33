package handlers

import (
	"net/http"

	"masseurmatch_backend/internal/appErrors"
	"masseurmatch_backend/internal/services"
	"masseurmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
	}
}

func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	media := rg.Group("/media")
	{
		media.GET("", h.ListMyMedia)
		media.POST("/photos", h.UploadPhoto)
		media.PUT("/:id/cover", h.SetCover)
		media.PUT("/order", h.Reorder)
		media.DELETE("/:id", h.DeleteMedia)
	}
}

func (h *MediaHandler) ListMyMedia(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	assets, err := h.mediaService.ListMyMedia(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": assets})
}

func (h *MediaHandler) UploadPhoto(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		appErrors.HandleError(c, appErrors.NewBadRequestError("Missing file field"))
		return
	}

	db := h.GetDB(c)

	asset, err := h.mediaService.UploadPhoto(c.Request.Context(), db, userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *MediaHandler) SetCover(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.mediaService.SetCover(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MediaHandler) Reorder(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.ReorderMediaRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.mediaService.Reorder(db, userID, req.OrderedIDs); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.mediaService.DeleteMedia(c.Request.Context(), db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
