// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/AssetGridHQ/assetgrid-go/internal/application/container"
	"github.com/AssetGridHQ/assetgrid-go/internal/presentation/http/handlers"
	"github.com/AssetGridHQ/assetgrid-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(c *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(c.AuthService, c.Logger, c.PerfTracker)
	selectionHandlers := handlers.NewSelectionHandlers(c.SelectionService, c.SummaryService, c.SnapshotService, c.Logger, c.PerfTracker)
	actionHandlers := handlers.NewActionHandlers(c.CatalogService, c.SummaryService, c.SelectionService, c.SnapshotService, c.Logger, c.PerfTracker)
	workflowHandlers := handlers.NewWorkflowHandlers(c.WorkflowService, c.Logger, c.PerfTracker)
	snapshotHandlers := handlers.NewSnapshotHandlers(c.SnapshotService, c.Logger, c.PerfTracker)
	mediaHandlers := handlers.NewMediaHandlers(c.MediaService, c.Logger, c.PerfTracker)
	wsHandlers := handlers.NewWSHandlers(c.Hub, c.Logger)
	healthHandlers := handlers.NewHealthHandlers(c.TenantManager, c.Logger, c.PerfTracker)
	tenantHandlers := handlers.NewTenantHandlers(c.ProvisioningService, c.TenantManager, c.Logger)

	r.GET("/health", healthHandlers.Health)

	// Admin console: log streaming and tenant provisioning
	r.GET("/admin/logs/stream", wsHandlers.StreamLogs)
	r.GET("/admin/tenants", tenantHandlers.Registry)
	r.POST("/admin/tenants", tenantHandlers.Provision)

	api := r.Group("/api/v1")
	api.Use(middleware.TenantMiddleware(c.TenantManager, c.PerfTracker))
	{
		api.POST("/auth/login", authHandlers.Login)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(c.AuthService))
		{
			authed.GET("/auth/profile", authHandlers.Profile)

			// Selection set
			authed.GET("/selection", selectionHandlers.Get)
			authed.POST("/selection/select", selectionHandlers.Select)
			authed.POST("/selection/select-many", selectionHandlers.SelectMany)
			authed.POST("/selection/toggle", selectionHandlers.Toggle)
			authed.DELETE("/selection/:id", selectionHandlers.Deselect)
			authed.DELETE("/selection", selectionHandlers.Clear)
			authed.POST("/selection/summary", selectionHandlers.Summary)

			// Action catalog and eligibility
			authed.GET("/actions/catalog", actionHandlers.Catalog)
			authed.POST("/actions/eligible", actionHandlers.Eligible)

			// Bulk-action workflow
			authed.GET("/workflow", workflowHandlers.Status)
			authed.POST("/workflow/pick", workflowHandlers.Pick)
			authed.POST("/workflow/configure", workflowHandlers.Configure)
			authed.POST("/workflow/advance", workflowHandlers.Advance)
			authed.POST("/workflow/gate", workflowHandlers.Gate)
			authed.POST("/workflow/back", workflowHandlers.Back)
			authed.POST("/workflow/cancel", workflowHandlers.Cancel)
			authed.POST("/workflow/metadata", workflowHandlers.Metadata)

			// Lifecycle snapshots
			authed.GET("/snapshots", snapshotHandlers.GetPage)
			authed.POST("/snapshots/by-ids", snapshotHandlers.GetByIDs)

			// Thumbnail uploads
			authed.POST("/media/:id/thumbnail", mediaHandlers.AttachThumbnail)

			// Operational status
			authed.GET("/ops/recent", healthHandlers.RecentOperations)

			// Workflow outcome push
			authed.GET("/ws/outcomes", wsHandlers.Outcomes)
		}
	}

	return r
}
