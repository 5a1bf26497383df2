package stores

import (
	"sync"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/caching/types"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
)

// WorkflowsStore holds the single live bulk-action workflow machine per
// operator session with tenant isolation.
type WorkflowsStore struct {
	tenantCaches map[string]*types.TenantWorkflowCache
	mu           sync.RWMutex
	logger       *logging.ChanneledLogger
}

// NewWorkflowsStore creates a new workflows cache store
func NewWorkflowsStore(logger *logging.ChanneledLogger) *WorkflowsStore {
	if logger != nil {
		logger.Cache().Info("Initializing workflows cache store")
	}
	return &WorkflowsStore{
		tenantCaches: make(map[string]*types.TenantWorkflowCache),
		logger:       logger,
	}
}

// InitializeTenant creates cache structures for a tenant
func (ws *WorkflowsStore) InitializeTenant(tenantID string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.tenantCaches[tenantID] == nil {
		ws.tenantCaches[tenantID] = &types.TenantWorkflowCache{
			Sessions:     make(map[string]*types.WorkflowEntry),
			LastAccessed: time.Now().UTC(),
		}
	}
}

// GetTenantCache safely retrieves a tenant's workflow cache
func (ws *WorkflowsStore) GetTenantCache(tenantID string) (*types.TenantWorkflowCache, bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	cache, exists := ws.tenantCaches[tenantID]
	return cache, exists
}

// GetMachine returns the session's live workflow machine, if any.
func (ws *WorkflowsStore) GetMachine(tenantID, sessionID string) (*workflow.Machine, bool) {
	cache, exists := ws.GetTenantCache(tenantID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	entry, found := cache.Sessions[sessionID]
	if !found {
		return nil, false
	}
	entry.LastAccessed = time.Now().UTC()
	return entry.Machine, true
}

// SetMachine stores the session's workflow machine.
func (ws *WorkflowsStore) SetMachine(tenantID, sessionID string, m *workflow.Machine) {
	cache, exists := ws.GetTenantCache(tenantID)
	if !exists {
		ws.InitializeTenant(tenantID)
		cache, _ = ws.GetTenantCache(tenantID)
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.Sessions[sessionID] = &types.WorkflowEntry{
		Machine:      m,
		LastAccessed: time.Now().UTC(),
	}
}

// RemoveMachine discards the session's workflow machine.
func (ws *WorkflowsStore) RemoveMachine(tenantID, sessionID string) {
	cache, exists := ws.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	delete(cache.Sessions, sessionID)
}

// EvictIdleSessions removes machines idle since before the given unix time.
// A machine mid-submission is never evicted.
func (ws *WorkflowsStore) EvictIdleSessions(tenantID string, before int64) int {
	cache, exists := ws.GetTenantCache(tenantID)
	if !exists {
		return 0
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	evicted := 0
	cutoff := time.Unix(before, 0)
	for sessionID, entry := range cache.Sessions {
		if entry.Machine.Phase == workflow.PhaseSubmitting {
			continue
		}
		if entry.LastAccessed.Before(cutoff) {
			delete(cache.Sessions, sessionID)
			evicted++
		}
	}
	return evicted
}
