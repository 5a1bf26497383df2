// Package tenant handles loading and providing tenant-specific configurations.
package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/security"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
)

// Config represents the structure of a single tenant's configuration
type Config struct {
	TenantID            string   `json:"tenantId"`
	Domains             []string `json:"domains"`
	Status              string   `json:"status"`
	DatabaseType        string   `json:"databaseType"`
	TursoDatabase       string   `json:"TURSO_DATABASE_URL"`
	TursoToken          string   `json:"TURSO_AUTH_TOKEN"`
	TursoTokenEncrypted bool     `json:"TURSO_AUTH_TOKEN_ENCRYPTED"`
	TursoEnabled        bool     `json:"TURSO_ENABLED"`
	JWTSecret           string   `json:"JWT_SECRET"`
	AESKey              string   `json:"AES_KEY"`
	AdminPassword       string   `json:"ADMIN_PASSWORD,omitempty"`
	EditorPassword      string   `json:"EDITOR_PASSWORD,omitempty"`
	AlertEmail          string   `json:"ALERT_EMAIL,omitempty"`
	ResendAPIKey        string   `json:"RESEND_API_KEY,omitempty"`
	SQLitePath          string   `json:"-"`
}

// LoadTenantConfig loads configuration for a specific tenant from its env.json file.
func LoadTenantConfig(tenantID string, logger *logging.ChanneledLogger) (*Config, error) {
	configPath := filepath.Join(config.ConfigDir, tenantID, "env.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("tenant config file not found at %s", configPath)
	}

	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read tenant config file: %w", err)
	}

	var tenantConfig Config
	if err := json.Unmarshal(configFile, &tenantConfig); err != nil {
		return nil, fmt.Errorf("could not parse tenant config json: %w", err)
	}

	tenantConfig.TenantID = tenantID
	tenantConfig.SQLitePath = filepath.Join(config.ConfigDir, tenantID, "db", "assetgrid.db")

	// Turso tokens are stored AES-GCM encrypted at rest; decrypt with the
	// server AES key before handing the config to the database layer.
	if tenantConfig.TursoTokenEncrypted && tenantConfig.TursoToken != "" {
		if config.AESKey == "" {
			return nil, fmt.Errorf("tenant %s has an encrypted turso token but AES_KEY is not set", tenantID)
		}
		decrypted, err := security.Decrypt(tenantConfig.TursoToken, config.AESKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt turso token for tenant %s: %w", tenantID, err)
		}
		tenantConfig.TursoToken = decrypted
	}

	if tenantConfig.JWTSecret == "" {
		tenantConfig.JWTSecret = config.JWTSecret
	}
	if tenantConfig.AESKey == "" {
		tenantConfig.AESKey = config.AESKey
	}

	if logger != nil {
		logger.Tenant().Debug("Loaded tenant config", "tenantId", tenantID, "tursoEnabled", tenantConfig.TursoEnabled)
	}

	return &tenantConfig, nil
}

// TenantRegistry holds the global tenant configuration
type TenantRegistry struct {
	Tenants map[string]TenantInfo `json:"tenants"`
}

// TenantInfo holds tenant metadata
type TenantInfo struct {
	TenantID     string   `json:"tenantId"`
	Domains      []string `json:"domains"`
	Status       string   `json:"status"`       // "unknown", "inactive", "active"
	DatabaseType string   `json:"databaseType"` // "turso", "sqlite3"
}

// LoadTenantRegistry loads the global tenant registry
func LoadTenantRegistry() (*TenantRegistry, error) {
	registryPath := filepath.Join(config.ConfigDir, "tenants.json")

	if _, err := os.Stat(registryPath); os.IsNotExist(err) {
		// Create default registry if it doesn't exist
		defaultRegistry := &TenantRegistry{
			Tenants: map[string]TenantInfo{
				"default": {
					TenantID:     "default",
					Domains:      []string{"*"},
					Status:       "inactive",
					DatabaseType: "",
				},
			},
		}
		return defaultRegistry, nil
	}

	data, err := os.ReadFile(registryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant registry: %w", err)
	}

	var registry TenantRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse tenant registry: %w", err)
	}

	return &registry, nil
}

// RegisterTenant adds a new tenant to the registry
func RegisterTenant(tenantID string) error {
	registryPath := filepath.Join(config.ConfigDir, "tenants.json")

	registry, err := LoadTenantRegistry()
	if err != nil {
		return err
	}

	if _, exists := registry.Tenants[tenantID]; !exists {
		registry.Tenants[tenantID] = TenantInfo{
			TenantID:     tenantID,
			Domains:      []string{"*"},
			Status:       "inactive",
			DatabaseType: "",
		}

		registryDir := filepath.Dir(registryPath)
		if err := os.MkdirAll(registryDir, 0755); err != nil {
			return fmt.Errorf("failed to create registry directory: %w", err)
		}

		data, err := json.MarshalIndent(registry, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal registry: %w", err)
		}

		if err := os.WriteFile(registryPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write registry: %w", err)
		}
	}

	return nil
}
