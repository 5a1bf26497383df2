// Package handlers provides HTTP handlers for the dashboard API
package handlers

import (
	"net/http"

	"github.com/AssetGridHQ/assetgrid-go/internal/application/services"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// LoginRequest defines the operator login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// AuthHandlers contains all auth-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Login authenticates an operator and returns a capability-bearing token
func (h *AuthHandlers) Login(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	result := h.authService.AuthenticateOperator(req.Email, req.Password, tenantCtx)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"error": result.Error})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    result.Token,
		"role":     result.Role,
		"operator": result.Operator,
	})
}

// Profile returns the authenticated operator's view, including capabilities
func (h *AuthHandlers) Profile(c *gin.Context) {
	op, exists := middleware.GetOperator(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"operator": op})
}
