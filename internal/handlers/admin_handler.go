package handlers

import (
	"net/http"

	"masseurmatch_backend/internal/services"
	"masseurmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
	mediaService services.MediaService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, mediaService services.MediaService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
		mediaService: mediaService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.GET("/queue", h.ReviewQueue)
		admin.POST("/profiles/:id/approve", h.Approve)
		admin.POST("/profiles/:id/request-changes", h.RequestChanges)
		admin.POST("/profiles/:id/reject", h.Reject)
		admin.POST("/profiles/:id/block", h.Block)
	}
}

// RegisterWebhookRoutes mounts the image-moderation vendor callback outside
// the auth group.
func (h *AdminHandler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/media-moderation", h.MediaModerationWebhook)
}

func (h *AdminHandler) ReviewQueue(c *gin.Context) {
	page, perPage := ParsePagination(c)

	db := h.GetDB(c)

	queue, err := h.adminService.ReviewQueue(db, page, perPage)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, queue)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	h.review(c, h.adminService.Approve)
}

func (h *AdminHandler) RequestChanges(c *gin.Context) {
	h.review(c, h.adminService.RequestChanges)
}

func (h *AdminHandler) Reject(c *gin.Context) {
	h.review(c, h.adminService.Reject)
}

func (h *AdminHandler) Block(c *gin.Context) {
	h.review(c, h.adminService.Block)
}

func (h *AdminHandler) review(c *gin.Context, verdict func(db *gorm.DB, profileID, notes string) error) {
	// Notes are optional; an approve without a body is fine.
	var req dto.AdminReviewRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := verdict(db, c.Param("id"), req.Notes); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile_id": c.Param("id")})
}

func (h *AdminHandler) MediaModerationWebhook(c *gin.Context) {
	var req dto.MediaModerationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.mediaService.ApplyModerationVerdict(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
