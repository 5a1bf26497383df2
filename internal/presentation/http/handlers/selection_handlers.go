package handlers

import (
	"net/http"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/application/services"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/AssetGridHQ/assetgrid-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SelectRequest carries one item for select/toggle operations.
type SelectRequest struct {
	Item selection.SelectedItem `json:"item" binding:"required"`
}

// SelectManyRequest carries a batch of items, typically page-select-all.
type SelectManyRequest struct {
	Items []selection.SelectedItem `json:"items" binding:"required"`
}

// OnPageRequest carries the ids visible on the currently-rendered page.
type OnPageRequest struct {
	PageIDs []string `json:"pageIds" binding:"required"`
}

// SelectionHandlers contains all selection-related HTTP handlers
type SelectionHandlers struct {
	selectionService *services.SelectionService
	summaryService   *services.SummaryService
	snapshotService  *services.SnapshotService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewSelectionHandlers creates selection handlers with injected dependencies
func NewSelectionHandlers(
	selectionService *services.SelectionService,
	summaryService *services.SummaryService,
	snapshotService *services.SnapshotService,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *SelectionHandlers {
	return &SelectionHandlers{
		selectionService: selectionService,
		summaryService:   summaryService,
		snapshotService:  snapshotService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

func (h *SelectionHandlers) sessionScope(c *gin.Context) (tenantCtx *tenant.Context, sessionID string, ok bool) {
	ctx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return nil, "", false
	}
	sessionID = middleware.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-AssetGrid-Session-ID header is required"})
		return nil, "", false
	}
	return ctx, sessionID, true
}

// Select adds one item to the session's selection
func (h *SelectionHandlers) Select(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.selectionService.Select(tenantCtx, sessionID, req.Item); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": h.selectionService.Count(tenantCtx, sessionID)})
}

// Deselect removes one id from the selection; unknown ids are a no-op
func (h *SelectionHandlers) Deselect(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	id := c.Param("id")
	h.selectionService.Deselect(tenantCtx, sessionID, id)

	c.JSON(http.StatusOK, gin.H{"count": h.selectionService.Count(tenantCtx, sessionID)})
}

// Toggle flips membership for one item
func (h *SelectionHandlers) Toggle(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selected, err := h.selectionService.Toggle(tenantCtx, sessionID, req.Item)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selected": selected,
		"count":    h.selectionService.Count(tenantCtx, sessionID),
	})
}

// SelectMany adds a batch of items
func (h *SelectionHandlers) SelectMany(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req SelectManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.selectionService.SelectMany(tenantCtx, sessionID, req.Items); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": h.selectionService.Count(tenantCtx, sessionID)})
}

// Clear empties the session's selection
func (h *SelectionHandlers) Clear(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	h.selectionService.Clear(tenantCtx, sessionID)
	h.logger.WithTenantAndSession(logging.ChannelSelection, tenantCtx.TenantID, sessionID).
		Info("Selection cleared manually")

	c.JSON(http.StatusOK, gin.H{"count": 0})
}

// Get returns the full selection with per-kind breakdown
func (h *SelectionHandlers) Get(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     h.selectionService.Items(tenantCtx, sessionID),
		"count":     h.selectionService.Count(tenantCtx, sessionID),
		"breakdown": h.selectionService.BreakdownByKind(tenantCtx, sessionID),
	})
}

// Summary derives lifecycle counts over the page-visible slice of the
// selection. A null summary means no selected entity is currently known.
func (h *SelectionHandlers) Summary(c *gin.Context) {
	start := time.Now()
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req OnPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker := h.perfTracker.StartOperation("selection_summary_request", tenantCtx.TenantID)
	defer marker.Complete()

	snapshots, err := h.snapshotService.GetByIDs(c.Request.Context(), tenantCtx, req.PageIDs)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := h.summaryService.Summarize(h.selectionService.IDs(tenantCtx, sessionID), snapshots)
	marker.SetSuccess(true)

	h.logger.Selection().Debug("Selection summary computed",
		"tenantId", tenantCtx.TenantID, "sessionId", sessionID, "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"onPage":  h.selectionService.OnPage(tenantCtx, sessionID, req.PageIDs),
	})
}
