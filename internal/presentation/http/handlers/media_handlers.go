package handlers

import (
	"net/http"

	"github.com/AssetGridHQ/assetgrid-go/internal/application/services"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// MediaHandlers contains thumbnail upload handlers
type MediaHandlers struct {
	mediaService *services.MediaService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewMediaHandlers creates media handlers with injected dependencies
func NewMediaHandlers(mediaService *services.MediaService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *MediaHandlers {
	return &MediaHandlers{
		mediaService: mediaService,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// AttachThumbnail accepts a multipart image upload and renders the entity's
// WebP thumbnail
func (h *MediaHandlers) AttachThumbnail(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	entityID := c.Param("id")
	if entityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity id is required"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	ref, err := h.mediaService.AttachThumbnail(c.Request.Context(), tenantCtx, entityID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"thumbnailRef": ref})
}
