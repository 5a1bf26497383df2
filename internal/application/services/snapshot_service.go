package services

import (
	"context"
	"fmt"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/repositories"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
)

// SnapshotService supplies lifecycle snapshots for the currently-rendered
// page, cache-first with a database fallback. Absence of an id from a result
// means "unknown", never default-false.
type SnapshotService struct {
	perfTracker *performance.Tracker
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(perfTracker *performance.Tracker) *SnapshotService {
	return &SnapshotService{
		perfTracker: perfTracker,
	}
}

// GetPage returns one snapshot page for the given cursor.
func (s *SnapshotService) GetPage(ctx context.Context, tenantCtx *tenant.Context, cursor string, limit int) (*repositories.SnapshotPage, error) {
	if limit <= 0 {
		limit = config.DefaultSnapshotPageSize
	}
	if limit > config.MaxSnapshotPageSize {
		limit = config.MaxSnapshotPageSize
	}

	cache := tenantCtx.GetCacheManager()
	if entities, nextCursor, found := cache.GetPage(tenantCtx.TenantID, cursor); found {
		return &repositories.SnapshotPage{Entities: entities, NextCursor: nextCursor}, nil
	}

	marker := s.perfTracker.StartOperation("snapshot_page_load", tenantCtx.TenantID)
	defer marker.Complete()

	page, err := tenantCtx.SnapshotRepo().FindPage(ctx, cursor, limit)
	if err != nil {
		marker.SetError(err)
		return nil, fmt.Errorf("failed to load snapshot page: %w", err)
	}
	marker.SetSuccess(true)

	cache.SetPage(tenantCtx.TenantID, cursor, page.NextCursor, page.Entities)
	cache.SetEntities(tenantCtx.TenantID, page.Entities)

	return page, nil
}

// GetByIDs returns snapshots for an explicit id set, serving what it can
// from cache and loading the rest. Ids with no snapshot are simply absent.
func (s *SnapshotService) GetByIDs(ctx context.Context, tenantCtx *tenant.Context, ids []string) ([]selection.EntitySnapshot, error) {
	if len(ids) == 0 {
		return []selection.EntitySnapshot{}, nil
	}

	cache := tenantCtx.GetCacheManager()
	found, missing := cache.GetByIDs(tenantCtx.TenantID, ids)
	if len(missing) == 0 {
		return found, nil
	}

	loaded, err := tenantCtx.SnapshotRepo().FindByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots by ids: %w", err)
	}

	cache.SetEntities(tenantCtx.TenantID, loaded)
	return append(found, loaded...), nil
}

// Invalidate drops all cached snapshots for the tenant. Called after every
// batch submission so the next read reflects the new lifecycle state.
func (s *SnapshotService) Invalidate(tenantCtx *tenant.Context) {
	tenantCtx.GetCacheManager().Invalidate(tenantCtx.TenantID)
}
