// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/AssetGridHQ/assetgrid-go/internal/application/services"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/caching/manager"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/email"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/messaging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Engine Services (stateless singletons)
	SelectionService   *services.SelectionService
	SummaryService     *services.SummaryService
	EligibilityService *services.EligibilityService
	CatalogService     *services.CatalogService
	SnapshotService    *services.SnapshotService
	WorkflowService    *services.WorkflowService
	AuthService        *services.AuthService
	MediaService       *services.MediaService

	// Admin Services
	ProvisioningService *services.ProvisioningService

	// Infrastructure Dependencies
	TenantManager *tenant.Manager
	CacheManager  *manager.Manager
	Logger        *logging.ChanneledLogger
	PerfTracker   *performance.Tracker
	Hub           *messaging.Hub
	EmailService  email.Service
}

// NewContainer creates and wires all singleton services
func NewContainer(tenantManager *tenant.Manager, cacheManager *manager.Manager, logger *logging.ChanneledLogger) *Container {
	perfTracker := performance.NewTracker()
	hub := messaging.NewHub(logger)

	// Alert email is optional; a missing API key just disables it.
	var emailService email.Service
	if config.AlertEmailEnabled {
		svc, err := email.NewService()
		if err != nil {
			logger.Startup().Warn("Batch failure alerts disabled", "error", err)
		} else {
			emailService = svc
		}
	}

	summaryService := services.NewSummaryService()
	eligibilityService := services.NewEligibilityService()
	catalogService := services.NewCatalogService(eligibilityService)
	selectionService := services.NewSelectionService()
	snapshotService := services.NewSnapshotService(perfTracker)
	workflowService := services.NewWorkflowService(
		summaryService,
		eligibilityService,
		selectionService,
		snapshotService,
		hub,
		emailService,
		logger,
		perfTracker,
	)
	authService := services.NewAuthService(logger, perfTracker)
	mediaService := services.NewMediaService(logger, perfTracker)
	provisioningService := services.NewProvisioningService(authService, logger, perfTracker)

	return &Container{
		SelectionService:   selectionService,
		SummaryService:     summaryService,
		EligibilityService: eligibilityService,
		CatalogService:     catalogService,
		SnapshotService:    snapshotService,
		WorkflowService:    workflowService,
		AuthService:        authService,
		MediaService:       mediaService,

		ProvisioningService: provisioningService,

		TenantManager: tenantManager,
		CacheManager:  cacheManager,
		Logger:        logger,
		PerfTracker:   perfTracker,
		Hub:           hub,
		EmailService:  emailService,
	}
}
