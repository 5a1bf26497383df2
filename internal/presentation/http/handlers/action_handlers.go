package handlers

import (
	"net/http"

	"github.com/AssetGridHQ/assetgrid-go/internal/application/services"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// EligibleCatalogRequest carries the page-visible ids and view flags needed
// to compute the filtered catalog.
type EligibleCatalogRequest struct {
	PageIDs     []string `json:"pageIds" binding:"required"`
	IsTrashView bool     `json:"isTrashView"`
}

// ActionHandlers contains the catalog and eligibility HTTP handlers
type ActionHandlers struct {
	catalogService   *services.CatalogService
	summaryService   *services.SummaryService
	selectionService *services.SelectionService
	snapshotService  *services.SnapshotService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewActionHandlers creates action handlers with injected dependencies
func NewActionHandlers(
	catalogService *services.CatalogService,
	summaryService *services.SummaryService,
	selectionService *services.SelectionService,
	snapshotService *services.SnapshotService,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *ActionHandlers {
	return &ActionHandlers{
		catalogService:   catalogService,
		summaryService:   summaryService,
		selectionService: selectionService,
		snapshotService:  snapshotService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// Catalog returns the full, unfiltered action catalog
func (h *ActionHandlers) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": h.catalogService.FullCatalog()})
}

// Eligible returns the catalog filtered to actions legal for the current
// selection. Missing snapshot data fails open for display: the full catalog
// comes back unfiltered.
func (h *ActionHandlers) Eligible(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-AssetGrid-Session-ID header is required"})
		return
	}
	op, exists := middleware.GetOperator(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req EligibleCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker := h.perfTracker.StartOperation("eligible_catalog_request", tenantCtx.TenantID)
	defer marker.Complete()

	snapshots, err := h.snapshotService.GetByIDs(c.Request.Context(), tenantCtx, req.PageIDs)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := h.summaryService.Summarize(h.selectionService.IDs(tenantCtx, sessionID), snapshots)
	mode := services.Mode{
		IsTrashView:    req.IsTrashView,
		CanForceDelete: op.Capabilities.CanForceDelete,
	}

	groups := h.catalogService.EligibleCatalog(summary, mode)
	marker.SetSuccess(true)

	c.JSON(http.StatusOK, gin.H{
		"groups":     groups,
		"summary":    summary,
		"unfiltered": summary == nil,
	})
}
