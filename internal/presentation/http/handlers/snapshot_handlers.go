package handlers

import (
	"net/http"
	"strconv"

	"github.com/AssetGridHQ/assetgrid-go/internal/application/services"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SnapshotIDsRequest requests snapshots for an explicit id set.
type SnapshotIDsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// SnapshotHandlers contains the snapshot page HTTP handlers
type SnapshotHandlers struct {
	snapshotService *services.SnapshotService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewSnapshotHandlers creates snapshot handlers with injected dependencies
func NewSnapshotHandlers(snapshotService *services.SnapshotService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SnapshotHandlers {
	return &SnapshotHandlers{
		snapshotService: snapshotService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// GetPage returns one keyset-paginated page of lifecycle snapshots
func (h *SnapshotHandlers) GetPage(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	cursor := c.Query("cursor")
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	page, err := h.snapshotService.GetPage(c.Request.Context(), tenantCtx, cursor, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entities":   page.Entities,
		"nextCursor": page.NextCursor,
	})
}

// GetByIDs returns snapshots for an explicit id set. Absent ids mean
// "unknown"; the response lists found entities only.
func (h *SnapshotHandlers) GetByIDs(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	var req SnapshotIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entities, err := h.snapshotService.GetByIDs(c.Request.Context(), tenantCtx, req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entities": entities})
}
