package cleanup

import (
	"context"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/caching/manager"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
)

// Worker handles background cache eviction: idle selection sessions, stale
// workflow machines, and expired snapshot pages.
type Worker struct {
	cache    *manager.Manager
	detector *tenant.Detector
	config   *Config
	logger   *logging.ChanneledLogger
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(cache *manager.Manager, detector *tenant.Detector, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cache:    cache,
		detector: detector,
		config:   config,
		logger:   logger,
	}
}

// Start begins the cleanup loop, using the configured interval
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.System().Info("Cache cleanup worker started",
		"interval", w.config.CleanupInterval,
		"sessionIdleTTL", w.config.SessionIdleTTL,
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.System().Info("Cache cleanup worker stopping")
			return
		case <-ticker.C:
			w.performCleanup(ctx)
		}
	}
}

// performCleanup executes eviction for all active tenants
func (w *Worker) performCleanup(ctx context.Context) {
	start := time.Now()

	tenants := w.detector.GetActiveTenantIDs()

	var totalSessions, totalSnapshots int
	for _, tenantID := range tenants {
		select {
		case <-ctx.Done():
			return
		default:
			sessionCutoff := time.Now().Add(-w.config.SessionIdleTTL).Unix()
			snapshotCutoff := time.Now().Add(-w.config.SnapshotStaleTTL).Unix()
			totalSessions += w.cache.EvictIdleSessions(tenantID, sessionCutoff)
			totalSnapshots += w.cache.PurgeStaleSnapshots(tenantID, snapshotCutoff)
		}
	}

	if w.config.VerboseReporting || totalSessions > 0 || totalSnapshots > 0 {
		w.logger.Cache().Info("Periodic cache cleanup completed",
			"tenants", len(tenants),
			"evictedSessions", totalSessions,
			"purgedSnapshotPages", totalSnapshots,
			"duration", time.Since(start),
		)
	}
}
