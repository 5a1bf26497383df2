package handlers

import (
	"net/http"

	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/gin-gonic/gin"
)

// HealthHandlers contains health and operational status handlers
type HealthHandlers struct {
	tenantManager *tenant.Manager
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewHealthHandlers creates health handlers with injected dependencies
func NewHealthHandlers(tenantManager *tenant.Manager, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *HealthHandlers {
	return &HealthHandlers{
		tenantManager: tenantManager,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// Health returns liveness plus basic operational stats
func (h *HealthHandlers) Health(c *gin.Context) {
	activeCount, err := h.tenantManager.GetActiveTenantCount()
	if err != nil {
		activeCount = -1
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"uptime":        h.perfTracker.Uptime().String(),
		"activeTenants": activeCount,
		"dbPools":       tenant.GetPoolStats(),
	})
}

// RecentOperations returns the most recent performance markers
func (h *HealthHandlers) RecentOperations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"operations": h.perfTracker.RecentMarkers(50),
	})
}
