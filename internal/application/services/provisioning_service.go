package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/security"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
)

var tenantIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

// ProvisioningService creates new tenants: registry entry, config directory,
// env.json with generated secrets and hashed operator passwords. Activation
// happens lazily on the tenant's first request.
type ProvisioningService struct {
	authService *AuthService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewProvisioningService creates a new provisioning service
func NewProvisioningService(authService *AuthService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ProvisioningService {
	return &ProvisioningService{
		authService: authService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// ProvisionRequest carries the inputs for a new tenant.
type ProvisionRequest struct {
	TenantID       string   `json:"tenantId" binding:"required"`
	Domains        []string `json:"domains"`
	AdminPassword  string   `json:"adminPassword" binding:"required"`
	EditorPassword string   `json:"editorPassword"`
	AlertEmail     string   `json:"alertEmail"`
}

// Provision registers the tenant and writes its config. Passwords are stored
// bcrypt-hashed; JWT and AES secrets are generated per tenant.
func (p *ProvisioningService) Provision(req *ProvisionRequest) error {
	marker := p.perfTracker.StartOperation("tenant_provision", req.TenantID)
	defer marker.Complete()

	if !tenantIDPattern.MatchString(req.TenantID) {
		return fmt.Errorf("invalid tenant id %q: lowercase letters, digits, and hyphens only", req.TenantID)
	}

	tenantDir := filepath.Join(config.ConfigDir, req.TenantID)
	if _, err := os.Stat(filepath.Join(tenantDir, "env.json")); err == nil {
		return fmt.Errorf("tenant %s already exists", req.TenantID)
	}

	jwtSecret, err := security.GenerateSecureKey(64)
	if err != nil {
		marker.SetError(err)
		return fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	aesKey, err := security.GenerateSecureKey(64)
	if err != nil {
		marker.SetError(err)
		return fmt.Errorf("failed to generate aes key: %w", err)
	}

	adminHash, err := p.authService.HashPassword(req.AdminPassword)
	if err != nil {
		marker.SetError(err)
		return err
	}
	editorHash := ""
	if req.EditorPassword != "" {
		editorHash, err = p.authService.HashPassword(req.EditorPassword)
		if err != nil {
			marker.SetError(err)
			return err
		}
	}

	domains := req.Domains
	if len(domains) == 0 {
		domains = []string{"*"}
	}

	tenantConfig := tenant.Config{
		TenantID:       req.TenantID,
		Domains:        domains,
		Status:         "inactive",
		DatabaseType:   "sqlite3",
		JWTSecret:      jwtSecret,
		AESKey:         aesKey,
		AdminPassword:  adminHash,
		EditorPassword: editorHash,
		AlertEmail:     req.AlertEmail,
	}

	if err := os.MkdirAll(filepath.Join(tenantDir, "db"), 0755); err != nil {
		marker.SetError(err)
		return fmt.Errorf("failed to create tenant directory: %w", err)
	}

	data, err := json.MarshalIndent(tenantConfig, "", "  ")
	if err != nil {
		marker.SetError(err)
		return fmt.Errorf("failed to marshal tenant config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tenantDir, "env.json"), data, 0600); err != nil {
		marker.SetError(err)
		return fmt.Errorf("failed to write tenant config: %w", err)
	}

	if err := tenant.RegisterTenant(req.TenantID); err != nil {
		marker.SetError(err)
		return fmt.Errorf("failed to register tenant: %w", err)
	}

	marker.SetSuccess(true)
	p.logger.Tenant().Info("Tenant provisioned", "tenantId", req.TenantID, "domains", len(domains))

	return nil
}
