// Package stores provides concrete cache store implementations
package stores

import (
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/caching/types"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"sync"
)

// SelectionsStore implements the per-session selection set with tenant
// isolation. The selection survives pagination and navigation; it is
// discarded only on explicit clear, after a successful batch submission, or
// by idle eviction when the owning session goes quiet.
type SelectionsStore struct {
	tenantCaches map[string]*types.TenantSelectionCache
	mu           sync.RWMutex
	logger       *logging.ChanneledLogger
}

// NewSelectionsStore creates a new selections cache store
func NewSelectionsStore(logger *logging.ChanneledLogger) *SelectionsStore {
	if logger != nil {
		logger.Cache().Info("Initializing selections cache store")
	}
	return &SelectionsStore{
		tenantCaches: make(map[string]*types.TenantSelectionCache),
		logger:       logger,
	}
}

// InitializeTenant creates cache structures for a tenant
func (ss *SelectionsStore) InitializeTenant(tenantID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.tenantCaches[tenantID] == nil {
		ss.tenantCaches[tenantID] = &types.TenantSelectionCache{
			Sessions:     make(map[string]*types.SelectionSet),
			LastAccessed: time.Now().UTC(),
		}
		if ss.logger != nil {
			ss.logger.Cache().Info("Tenant selection cache initialized", "tenantId", tenantID)
		}
	}
}

// GetTenantCache safely retrieves a tenant's selection cache
func (ss *SelectionsStore) GetTenantCache(tenantID string) (*types.TenantSelectionCache, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	cache, exists := ss.tenantCaches[tenantID]
	return cache, exists
}

func (ss *SelectionsStore) getOrInitTenantCache(tenantID string) *types.TenantSelectionCache {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		ss.InitializeTenant(tenantID)
		cache, _ = ss.GetTenantCache(tenantID)
	}
	return cache
}

// set returns the session's selection set, creating it lazily. Caller must
// hold cache.Mu.
func (ss *SelectionsStore) set(cache *types.TenantSelectionCache, sessionID string) *types.SelectionSet {
	sel, exists := cache.Sessions[sessionID]
	if !exists {
		sel = types.NewSelectionSet()
		cache.Sessions[sessionID] = sel
	}
	sel.LastAccessed = time.Now().UTC()
	return sel
}

// Select adds an item to the session's selection. Re-selecting an already
// selected id overwrites its cached display metadata without duplicating it.
func (ss *SelectionsStore) Select(tenantID, sessionID string, item selection.SelectedItem) {
	cache := ss.getOrInitTenantCache(tenantID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	sel := ss.set(cache, sessionID)
	if _, exists := sel.Items[item.ID]; !exists {
		sel.Order = append(sel.Order, item.ID)
	}
	sel.Items[item.ID] = item

	if ss.logger != nil {
		ss.logger.Selection().Debug("Selection mutated", "operation", "select", "tenantId", tenantID, "sessionId", sessionID, "id", item.ID, "size", len(sel.Items))
	}
}

// Deselect removes an item from the session's selection. Removing a
// non-member id is a no-op.
func (ss *SelectionsStore) Deselect(tenantID, sessionID, id string) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	sel, exists := cache.Sessions[sessionID]
	if !exists {
		return
	}
	if _, member := sel.Items[id]; !member {
		return
	}
	delete(sel.Items, id)
	for i, orderedID := range sel.Order {
		if orderedID == id {
			sel.Order = append(sel.Order[:i], sel.Order[i+1:]...)
			break
		}
	}
	sel.LastAccessed = time.Now().UTC()

	if ss.logger != nil {
		ss.logger.Selection().Debug("Selection mutated", "operation", "deselect", "tenantId", tenantID, "sessionId", sessionID, "id", id, "size", len(sel.Items))
	}
}

// Toggle selects the item if absent, deselects it if present, and reports
// whether the item is selected afterwards.
func (ss *SelectionsStore) Toggle(tenantID, sessionID string, item selection.SelectedItem) bool {
	if ss.IsSelected(tenantID, sessionID, item.ID) {
		ss.Deselect(tenantID, sessionID, item.ID)
		return false
	}
	ss.Select(tenantID, sessionID, item)
	return true
}

// SelectMany adds a batch of items (page-select-all, range add). Idempotent
// per item.
func (ss *SelectionsStore) SelectMany(tenantID, sessionID string, items []selection.SelectedItem) {
	cache := ss.getOrInitTenantCache(tenantID)

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	sel := ss.set(cache, sessionID)
	for _, item := range items {
		if _, exists := sel.Items[item.ID]; !exists {
			sel.Order = append(sel.Order, item.ID)
		}
		sel.Items[item.ID] = item
	}

	if ss.logger != nil {
		ss.logger.Selection().Debug("Selection mutated", "operation", "select_many", "tenantId", tenantID, "sessionId", sessionID, "count", len(items), "size", len(sel.Items))
	}
}

// Clear empties the session's selection.
func (ss *SelectionsStore) Clear(tenantID, sessionID string) {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	if _, exists := cache.Sessions[sessionID]; exists {
		cache.Sessions[sessionID] = types.NewSelectionSet()
	}

	if ss.logger != nil {
		ss.logger.Selection().Debug("Selection mutated", "operation", "clear", "tenantId", tenantID, "sessionId", sessionID)
	}
}

// IsSelected reports membership of an id in the session's selection.
func (ss *SelectionsStore) IsSelected(tenantID, sessionID, id string) bool {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	sel, exists := cache.Sessions[sessionID]
	if !exists {
		return false
	}
	_, member := sel.Items[id]
	return member
}

// IDs returns the selected id set.
func (ss *SelectionsStore) IDs(tenantID, sessionID string) map[string]bool {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return map[string]bool{}
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	ids := make(map[string]bool)
	if sel, exists := cache.Sessions[sessionID]; exists {
		for id := range sel.Items {
			ids[id] = true
		}
	}
	return ids
}

// Items returns the selected items in insertion order.
func (ss *SelectionsStore) Items(tenantID, sessionID string) []selection.SelectedItem {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return []selection.SelectedItem{}
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	sel, exists := cache.Sessions[sessionID]
	if !exists {
		return []selection.SelectedItem{}
	}

	items := make([]selection.SelectedItem, 0, len(sel.Items))
	for _, id := range sel.Order {
		if item, ok := sel.Items[id]; ok {
			items = append(items, item)
		}
	}
	return items
}

// BreakdownByKind counts the selection per item kind.
func (ss *SelectionsStore) BreakdownByKind(tenantID, sessionID string) map[selection.ItemKind]int {
	breakdown := make(map[selection.ItemKind]int)
	for _, item := range ss.Items(tenantID, sessionID) {
		breakdown[item.Kind]++
	}
	return breakdown
}

// OnPage returns the selected items whose ids appear in the supplied page id
// list, i.e. the selectable-and-visible intersection for the current page.
func (ss *SelectionsStore) OnPage(tenantID, sessionID string, pageIDs []string) []selection.SelectedItem {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return []selection.SelectedItem{}
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	sel, exists := cache.Sessions[sessionID]
	if !exists {
		return []selection.SelectedItem{}
	}

	visible := make([]selection.SelectedItem, 0)
	for _, id := range pageIDs {
		if item, ok := sel.Items[id]; ok {
			visible = append(visible, item)
		}
	}
	return visible
}

// Count returns the selection cardinality.
func (ss *SelectionsStore) Count(tenantID, sessionID string) int {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return 0
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	if sel, exists := cache.Sessions[sessionID]; exists {
		return len(sel.Items)
	}
	return 0
}

// EvictIdleSessions removes selection sets idle since before the given unix
// time and returns how many were evicted.
func (ss *SelectionsStore) EvictIdleSessions(tenantID string, before int64) int {
	cache, exists := ss.GetTenantCache(tenantID)
	if !exists {
		return 0
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	evicted := 0
	cutoff := time.Unix(before, 0)
	for sessionID, sel := range cache.Sessions {
		if sel.LastAccessed.Before(cutoff) {
			delete(cache.Sessions, sessionID)
			evicted++
		}
	}

	if evicted > 0 && ss.logger != nil {
		ss.logger.Cache().Info("Evicted idle selection sessions", "tenantId", tenantID, "count", evicted)
	}
	return evicted
}
