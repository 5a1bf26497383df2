package stores

import (
	"sync"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/caching/types"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
)

// SnapshotsStore caches recently fetched lifecycle snapshot pages per
// tenant. It is a read-through cache in front of the snapshot repository;
// entities absent from the cache are unknown, never defaulted.
type SnapshotsStore struct {
	tenantCaches map[string]*types.TenantSnapshotCache
	mu           sync.RWMutex
	logger       *logging.ChanneledLogger
}

// NewSnapshotsStore creates a new snapshots cache store
func NewSnapshotsStore(logger *logging.ChanneledLogger) *SnapshotsStore {
	if logger != nil {
		logger.Cache().Info("Initializing snapshots cache store")
	}
	return &SnapshotsStore{
		tenantCaches: make(map[string]*types.TenantSnapshotCache),
		logger:       logger,
	}
}

// InitializeTenant creates cache structures for a tenant
func (ss *SnapshotsStore) InitializeTenant(tenantID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.tenantCaches[tenantID] == nil {
		ss.tenantCaches[tenantID] = &types.TenantSnapshotCache{
			Pages:        make(map[string]*types.CachedSnapshotPage),
			ByID:         make(map[string]selection.EntitySnapshot),
			LastAccessed: time.Now().UTC(),
		}
	}
}

// GetTenantCache safely retrieves a tenant's snapshot cache
func (ss *SnapshotsStore) GetTenantCache(tenantID string) (*types.TenantSnapshotCache, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	cache, exists := ss.tenantCaches[tenantID]
	return cache, exists
}

func (ss *SnapshotsStore) getOrInitTenantCache(tenantID string) *types.TenantSnapshotCache {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		ss.InitializeTenant(tenantID)
		cache, _ = ss.GetTenantCache(tenantID)
	}
	return cache
}

// GetPage returns a cached page and its next cursor if present and fresh.
func (ss *SnapshotsStore) GetPage(tenantID, cursor string) ([]selection.EntitySnapshot, string, bool) {
	start := time.Now()
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return nil, "", false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	page, found := cache.Pages[cursor]
	if !found || time.Since(page.LoadedAt) > config.SnapshotPageTTL {
		if ss.logger != nil {
			ss.logger.Cache().Debug("Cache operation", "operation", "get", "type", "snapshot_page", "tenantId", tenantID, "cursor", cursor, "hit", false, "duration", time.Since(start))
		}
		return nil, "", false
	}

	if ss.logger != nil {
		ss.logger.Cache().Debug("Cache operation", "operation", "get", "type", "snapshot_page", "tenantId", tenantID, "cursor", cursor, "hit", true, "duration", time.Since(start))
	}
	return page.Entities, page.NextCursor, true
}

// SetPage stores a fetched page and indexes its entities by id.
func (ss *SnapshotsStore) SetPage(tenantID, cursor, nextCursor string, entities []selection.EntitySnapshot) {
	cache := ss.getOrInitTenantCache(tenantID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Pages[cursor] = &types.CachedSnapshotPage{
		Cursor:     cursor,
		NextCursor: nextCursor,
		Entities:   entities,
		LoadedAt:   time.Now().UTC(),
	}
	for _, e := range entities {
		cache.ByID[e.ID] = e
	}
	cache.LastAccessed = time.Now().UTC()
}

// GetByIDs returns cached entities for the requested ids and the ids not
// present in the cache.
func (ss *SnapshotsStore) GetByIDs(tenantID string, ids []string) ([]selection.EntitySnapshot, []string) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return nil, ids
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	found := make([]selection.EntitySnapshot, 0, len(ids))
	missing := make([]string, 0)
	for _, id := range ids {
		if e, ok := cache.ByID[id]; ok {
			found = append(found, e)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

// SetEntities indexes entities by id without a page association.
func (ss *SnapshotsStore) SetEntities(tenantID string, entities []selection.EntitySnapshot) {
	cache := ss.getOrInitTenantCache(tenantID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	for _, e := range entities {
		cache.ByID[e.ID] = e
	}
	cache.LastAccessed = time.Now().UTC()
}

// Invalidate drops all cached snapshots for a tenant. Called after every
// batch submission since lifecycle state has changed server-side.
func (ss *SnapshotsStore) Invalidate(tenantID string) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Pages = make(map[string]*types.CachedSnapshotPage)
	cache.ByID = make(map[string]selection.EntitySnapshot)

	if ss.logger != nil {
		ss.logger.Cache().Debug("Cache operation", "operation", "invalidate", "type", "snapshots", "tenantId", tenantID)
	}
}

// PurgeStaleSnapshots removes pages loaded before the given unix time and
// returns how many were purged.
func (ss *SnapshotsStore) PurgeStaleSnapshots(tenantID string, before int64) int {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return 0
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	purged := 0
	cutoff := time.Unix(before, 0)
	for cursor, page := range cache.Pages {
		if page.LoadedAt.Before(cutoff) {
			delete(cache.Pages, cursor)
			purged++
		}
	}
	return purged
}
