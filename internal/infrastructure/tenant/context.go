// Package tenant provides tenant context management for multi-tenant support.
package tenant

import (
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/repositories"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/caching/manager"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/persistence/assets"
)

// Context holds tenant-specific request context
type Context struct {
	TenantID     string
	Config       *Config
	Database     *Database
	Status       string
	CacheManager *manager.Manager
	Logger       *logging.ChanneledLogger
}

// Close cleans up the tenant context
func (ctx *Context) Close() error {
	if ctx.Database != nil {
		return ctx.Database.Close()
	}
	return nil
}

// GetTenantID returns the tenant ID for this context
func (ctx *Context) GetTenantID() string {
	return ctx.TenantID
}

// GetConfig returns the tenant configuration
func (ctx *Context) GetConfig() *Config {
	return ctx.Config
}

// GetDatabase returns the tenant database connection
func (ctx *Context) GetDatabase() *Database {
	return ctx.Database
}

// GetStatus returns the tenant status
func (ctx *Context) GetStatus() string {
	return ctx.Status
}

// GetCacheManager returns the cache manager
func (ctx *Context) GetCacheManager() *manager.Manager {
	return ctx.CacheManager
}

// IsActive returns true if the tenant is active
func (ctx *Context) IsActive() bool {
	return ctx.Status == "active"
}

// GetDatabaseInfo returns database connection information for logging
func (ctx *Context) GetDatabaseInfo() string {
	if ctx.Database != nil {
		return ctx.Database.GetConnectionInfo()
	}
	return "no database connection"
}

// =============================================================================
// Repository Factory Methods
// =============================================================================

// SnapshotRepo returns a lifecycle snapshot repository instance
func (ctx *Context) SnapshotRepo() repositories.SnapshotRepository {
	return assets.NewSnapshotRepository(ctx.Database.Conn, ctx.Logger)
}

// BatchExec returns a batch executor for lifecycle actions
func (ctx *Context) BatchExec() repositories.BatchExecutor {
	return assets.NewBatchExecutor(ctx.Database.Conn, ctx.Logger)
}

// MetadataRepo returns a metadata editor instance
func (ctx *Context) MetadataRepo() repositories.MetadataEditor {
	return assets.NewMetadataEditor(ctx.Database.Conn, ctx.Logger)
}

// MediaRepo returns the concrete snapshot repository for thumbnail writes
func (ctx *Context) MediaRepo() *assets.SnapshotRepository {
	return assets.NewSnapshotRepository(ctx.Database.Conn, ctx.Logger)
}
