package handlers

import (
	"net/http"

	"masseurmatch_backend/internal/repositories"
	"masseurmatch_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the public, unauthenticated directory.
type DirectoryHandler struct {
	*BaseHandler
	directoryService services.DirectoryService
}

func NewDirectoryHandler(base *BaseHandler, directoryService services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		BaseHandler:      base,
		directoryService: directoryService,
	}
}

func (h *DirectoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	directory := rg.Group("/directory")
	{
		directory.GET("/therapists", h.Search)
		directory.GET("/therapists/:slug", h.GetBySlug)
	}
}

// parseBoolFilter keeps an absent query param distinct from false.
func parseBoolFilter(raw string) *bool {
	switch raw {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

func (h *DirectoryHandler) Search(c *gin.Context) {
	page, perPage := ParsePagination(c)

	criteria := repositories.DirectorySearchCriteria{
		CitySlug: c.Query("city"),
		Query:    c.Query("query"),
		Language: c.Query("language"),
		Service:  c.Query("service"),
		Incall:   parseBoolFilter(c.Query("incall")),
		Outcall:  parseBoolFilter(c.Query("outcall")),
		Page:     page,
		PerPage:  perPage,
	}

	db := h.GetDB(c)

	results, err := h.directoryService.Search(db, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *DirectoryHandler) GetBySlug(c *gin.Context) {
	db := h.GetDB(c)

	profile, err := h.directoryService.GetBySlug(db, c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
