package handlers

import (
	"errors"
	"net/http"

	"github.com/AssetGridHQ/assetgrid-go/internal/application/services"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/repositories"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/AssetGridHQ/assetgrid-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// PickRequest carries the operator's action choice.
type PickRequest struct {
	Action string `json:"action" binding:"required"`
}

// ConfigureRequest carries action-specific configuration input.
type ConfigureRequest struct {
	Reason string `json:"reason"`
}

// AdvanceRequest carries the page-visible ids and view flags for submission
// scoping and eligibility re-validation.
type AdvanceRequest struct {
	PageIDs     []string `json:"pageIds" binding:"required"`
	IsTrashView bool     `json:"isTrashView"`
}

// GateRequest resolves the pending confirmation gate.
type GateRequest struct {
	Accept bool `json:"accept"`
}

// MetadataRequest dispatches a metadata rewrite outside the workflow.
type MetadataRequest struct {
	Operation string            `json:"operation" binding:"required"`
	Fields    map[string]string `json:"fields"`
	PageIDs   []string          `json:"pageIds" binding:"required"`
}

// WorkflowHandlers contains the bulk-action workflow HTTP handlers
type WorkflowHandlers struct {
	workflowService *services.WorkflowService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewWorkflowHandlers creates workflow handlers with injected dependencies
func NewWorkflowHandlers(workflowService *services.WorkflowService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *WorkflowHandlers {
	return &WorkflowHandlers{
		workflowService: workflowService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

func (h *WorkflowHandlers) sessionScope(c *gin.Context) (*tenant.Context, string, bool) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return nil, "", false
	}
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-AssetGrid-Session-ID header is required"})
		return nil, "", false
	}
	return tenantCtx, sessionID, true
}

func respondMachineError(c *gin.Context, err error) {
	var validationErr *workflow.ValidationError
	var transitionErr *workflow.TransitionError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Status returns the session's live workflow machine
func (h *WorkflowHandlers) Status(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"workflow": h.workflowService.Get(tenantCtx, sessionID)})
}

// Pick records the action choice and moves to Configuring
func (h *WorkflowHandlers) Pick(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req PickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.workflowService.Pick(tenantCtx, sessionID, action.ID(req.Action))
	if err != nil {
		respondMachineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workflow": m})
}

// Configure stores action-specific input, currently the rejection reason
func (h *WorkflowHandlers) Configure(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.workflowService.SetReason(tenantCtx, sessionID, req.Reason)
	if err != nil {
		respondMachineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workflow": m})
}

// Advance validates and moves toward submission; with no pending gates the
// batch is dispatched within this request
func (h *WorkflowHandlers) Advance(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}
	op, exists := middleware.GetOperator(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := services.Mode{
		IsTrashView:    req.IsTrashView,
		CanForceDelete: op.Capabilities.CanForceDelete,
	}

	m, err := h.workflowService.Advance(c.Request.Context(), tenantCtx, sessionID, req.PageIDs, mode)
	if err != nil {
		respondMachineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workflow": m})
}

// Gate accepts or declines the pending confirmation gate
func (h *WorkflowHandlers) Gate(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req GateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.workflowService.ResolveGate(c.Request.Context(), tenantCtx, sessionID, req.Accept)
	if err != nil {
		respondMachineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workflow": m})
}

// Back returns from Configuring to Selecting
func (h *WorkflowHandlers) Back(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	m, err := h.workflowService.Back(tenantCtx, sessionID)
	if err != nil {
		respondMachineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workflow": m})
}

// Cancel discards the interaction unless a submission is in flight
func (h *WorkflowHandlers) Cancel(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	m, err := h.workflowService.Cancel(tenantCtx, sessionID)
	if err != nil {
		respondMachineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workflow": m})
}

// Metadata dispatches a metadata rewrite directly to the metadata editor
func (h *WorkflowHandlers) Metadata(c *gin.Context) {
	tenantCtx, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}
	op, exists := middleware.GetOperator(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req MetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metaOp := repositories.MetadataOperation(req.Operation)
	switch metaOp {
	case repositories.MetadataOpAdd, repositories.MetadataOpReplace, repositories.MetadataOpClear:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "operation must be add, replace, or clear"})
		return
	}

	outcome, err := h.workflowService.ApplyMetadata(c.Request.Context(), tenantCtx, sessionID, metaOp, req.Fields, req.PageIDs, op.Capabilities)
	if err != nil {
		respondMachineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome": outcome,
		"message": outcome.Message(),
	})
}
