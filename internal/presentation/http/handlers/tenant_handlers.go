package handlers

import (
	"net/http"

	"github.com/AssetGridHQ/assetgrid-go/internal/application/services"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/gin-gonic/gin"
)

// TenantHandlers contains tenant provisioning and registry handlers
type TenantHandlers struct {
	provisioningService *services.ProvisioningService
	tenantManager       *tenant.Manager
	logger              *logging.ChanneledLogger
}

// NewTenantHandlers creates tenant handlers with injected dependencies
func NewTenantHandlers(provisioningService *services.ProvisioningService, tenantManager *tenant.Manager, logger *logging.ChanneledLogger) *TenantHandlers {
	return &TenantHandlers{
		provisioningService: provisioningService,
		tenantManager:       tenantManager,
		logger:              logger,
	}
}

// Provision creates a new tenant with generated secrets
func (h *TenantHandlers) Provision(c *gin.Context) {
	var req services.ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenantId and adminPassword are required"})
		return
	}

	if err := h.provisioningService.Provision(&req); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	if err := h.tenantManager.GetDetector().RefreshRegistry(); err != nil {
		h.logger.Tenant().Warn("Registry refresh after provisioning failed", "tenantId", req.TenantID, "error", err)
	}

	c.JSON(http.StatusCreated, gin.H{"tenantId": req.TenantID, "status": "inactive"})
}

// Registry lists all registered tenants and their status
func (h *TenantHandlers) Registry(c *gin.Context) {
	registry := h.tenantManager.GetDetector().GetRegistry()

	tenants := make([]tenant.TenantInfo, 0, len(registry.Tenants))
	for _, info := range registry.Tenants {
		tenants = append(tenants, info)
	}

	c.JSON(http.StatusOK, gin.H{"tenants": tenants, "count": len(tenants)})
}
