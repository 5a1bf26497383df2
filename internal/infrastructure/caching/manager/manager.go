// Package manager composes the cache stores into a single tenant-scoped
// cache facade used by the application services and the cleanup worker.
package manager

import (
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/caching/stores"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
)

// Manager provides unified access to all tenant caches
type Manager struct {
	selections *stores.SelectionsStore
	snapshots  *stores.SnapshotsStore
	workflows  *stores.WorkflowsStore
	logger     *logging.ChanneledLogger
}

// NewManager creates a cache manager with all stores initialized
func NewManager(logger *logging.ChanneledLogger) *Manager {
	return &Manager{
		selections: stores.NewSelectionsStore(logger),
		snapshots:  stores.NewSnapshotsStore(logger),
		workflows:  stores.NewWorkflowsStore(logger),
		logger:     logger,
	}
}

// InitializeTenant prepares all cache structures for a tenant
func (m *Manager) InitializeTenant(tenantID string) {
	start := time.Now()
	m.selections.InitializeTenant(tenantID)
	m.snapshots.InitializeTenant(tenantID)
	m.workflows.InitializeTenant(tenantID)
	if m.logger != nil {
		m.logger.Cache().Debug("Tenant caches initialized", "tenantId", tenantID, "duration", time.Since(start))
	}
}

// =============================================================================
// Selection operations
// =============================================================================

func (m *Manager) Select(tenantID, sessionID string, item selection.SelectedItem) {
	m.selections.Select(tenantID, sessionID, item)
}

func (m *Manager) Deselect(tenantID, sessionID, id string) {
	m.selections.Deselect(tenantID, sessionID, id)
}

func (m *Manager) Toggle(tenantID, sessionID string, item selection.SelectedItem) bool {
	return m.selections.Toggle(tenantID, sessionID, item)
}

func (m *Manager) SelectMany(tenantID, sessionID string, items []selection.SelectedItem) {
	m.selections.SelectMany(tenantID, sessionID, items)
}

func (m *Manager) Clear(tenantID, sessionID string) {
	m.selections.Clear(tenantID, sessionID)
}

func (m *Manager) IsSelected(tenantID, sessionID, id string) bool {
	return m.selections.IsSelected(tenantID, sessionID, id)
}

func (m *Manager) IDs(tenantID, sessionID string) map[string]bool {
	return m.selections.IDs(tenantID, sessionID)
}

func (m *Manager) Items(tenantID, sessionID string) []selection.SelectedItem {
	return m.selections.Items(tenantID, sessionID)
}

func (m *Manager) BreakdownByKind(tenantID, sessionID string) map[selection.ItemKind]int {
	return m.selections.BreakdownByKind(tenantID, sessionID)
}

func (m *Manager) OnPage(tenantID, sessionID string, pageIDs []string) []selection.SelectedItem {
	return m.selections.OnPage(tenantID, sessionID, pageIDs)
}

func (m *Manager) Count(tenantID, sessionID string) int {
	return m.selections.Count(tenantID, sessionID)
}

// =============================================================================
// Snapshot operations
// =============================================================================

func (m *Manager) GetPage(tenantID, cursor string) ([]selection.EntitySnapshot, string, bool) {
	return m.snapshots.GetPage(tenantID, cursor)
}

func (m *Manager) SetPage(tenantID, cursor, nextCursor string, entities []selection.EntitySnapshot) {
	m.snapshots.SetPage(tenantID, cursor, nextCursor, entities)
}

func (m *Manager) GetByIDs(tenantID string, ids []string) ([]selection.EntitySnapshot, []string) {
	return m.snapshots.GetByIDs(tenantID, ids)
}

func (m *Manager) SetEntities(tenantID string, entities []selection.EntitySnapshot) {
	m.snapshots.SetEntities(tenantID, entities)
}

func (m *Manager) Invalidate(tenantID string) {
	m.snapshots.Invalidate(tenantID)
}

// =============================================================================
// Workflow operations
// =============================================================================

func (m *Manager) GetMachine(tenantID, sessionID string) (*workflow.Machine, bool) {
	return m.workflows.GetMachine(tenantID, sessionID)
}

func (m *Manager) SetMachine(tenantID, sessionID string, machine *workflow.Machine) {
	m.workflows.SetMachine(tenantID, sessionID, machine)
}

func (m *Manager) RemoveMachine(tenantID, sessionID string) {
	m.workflows.RemoveMachine(tenantID, sessionID)
}

// =============================================================================
// Cleanup operations
// =============================================================================

// EvictIdleSessions evicts idle selection sets and workflow machines across
// stores and returns the total evicted.
func (m *Manager) EvictIdleSessions(tenantID string, before int64) int {
	evicted := m.selections.EvictIdleSessions(tenantID, before)
	evicted += m.workflows.EvictIdleSessions(tenantID, before)
	return evicted
}

// PurgeStaleSnapshots drops snapshot pages older than the cutoff.
func (m *Manager) PurgeStaleSnapshots(tenantID string, before int64) int {
	return m.snapshots.PurgeStaleSnapshots(tenantID, before)
}
