// Package services provides application-level orchestration services
package services

import (
	"fmt"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/user"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/security"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles operator authentication and JWT operations. Capability
// claims are minted at login; the engine consumes them as booleans and never
// re-evaluates permissions.
type AuthService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthService {
	return &AuthService{
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Operator *user.Operator `json:"operator,omitempty"`
}

// AuthenticateOperator validates admin or editor credentials and generates a
// JWT with role and capability claims.
func (a *AuthService) AuthenticateOperator(email, password string, tenantCtx *tenant.Context) *AuthResult {
	marker := a.perfTracker.StartOperation("operator_login", tenantCtx.TenantID)
	defer marker.Complete()

	var role user.Role

	if tenantCtx.Config.AdminPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(tenantCtx.Config.AdminPassword), []byte(password)); err == nil {
			role = user.RoleAdmin
		}
	}

	if role == "" && tenantCtx.Config.EditorPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(tenantCtx.Config.EditorPassword), []byte(password)); err == nil {
			role = user.RoleEditor
		}
	}

	if role == "" {
		marker.SetSuccess(false)
		a.logger.Auth().Warn("Operator login rejected", "tenantId", tenantCtx.TenantID, "email", email)
		return &AuthResult{Success: false, Error: "invalid credentials"}
	}

	op := &user.Operator{
		ID:           security.GenerateULID(),
		TenantID:     tenantCtx.TenantID,
		Email:        email,
		Role:         role,
		Capabilities: user.CapabilitiesForRole(role),
	}

	token, err := security.GenerateOperatorToken(op, tenantCtx.Config.JWTSecret, config.TokenLifetime)
	if err != nil {
		marker.SetError(err)
		return &AuthResult{Success: false, Error: fmt.Sprintf("failed to generate token: %v", err)}
	}

	marker.SetSuccess(true)
	a.logger.Auth().Info("Operator authenticated", "tenantId", tenantCtx.TenantID, "role", string(role))

	return &AuthResult{
		Token:    token,
		Role:     string(role),
		Success:  true,
		Operator: op,
	}
}

// ValidateToken validates a JWT and reconstructs the operator view from its
// claims.
func (a *AuthService) ValidateToken(tokenString string, tenantCtx *tenant.Context) (*user.Operator, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	claims, err := security.ValidateJWT(tokenString, tenantCtx.Config.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	op, err := security.OperatorFromClaims(claims)
	if err != nil {
		return nil, err
	}
	if op.TenantID != tenantCtx.TenantID {
		return nil, fmt.Errorf("token issued for a different tenant")
	}

	return op, nil
}

// HashPassword hashes a password for storage in tenant config.
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
