package middleware

import (
	"net/http"
	"strings"

	"github.com/AssetGridHQ/assetgrid-go/internal/application/services"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the operator's bearer token and stores the
// reconstructed operator on the request context. Capability claims ride on
// the token; handlers consume them as booleans.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantCtx, ok := GetTenantContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
			c.Abort()
			return
		}

		token := extractBearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		op, err := authService.ValidateToken(token, tenantCtx)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("operator", op)
		c.Next()
	}
}

// GetOperator retrieves the authenticated operator from gin context.
func GetOperator(c *gin.Context) (*user.Operator, bool) {
	value, exists := c.Get("operator")
	if !exists {
		return nil, false
	}
	op, ok := value.(*user.Operator)
	return op, ok
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Websocket upgrades cannot set the Authorization header from the
	// browser; fall back to a query param for those connections.
	return c.Query("token")
}
