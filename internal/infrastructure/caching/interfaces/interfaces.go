// Package interfaces defines the cache contracts consumed by the application
// layer. The concrete stores live in caching/stores and are composed by the
// caching/manager.
package interfaces

import (
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"
)

// SelectionCache is the per-session selection set abstraction. All
// operations are synchronous and total: deselecting a non-member id is a
// no-op, and every operation on an unknown session lazily creates an empty
// set.
type SelectionCache interface {
	Select(tenantID, sessionID string, item selection.SelectedItem)
	Deselect(tenantID, sessionID, id string)
	Toggle(tenantID, sessionID string, item selection.SelectedItem) bool
	SelectMany(tenantID, sessionID string, items []selection.SelectedItem)
	Clear(tenantID, sessionID string)
	IsSelected(tenantID, sessionID, id string) bool
	IDs(tenantID, sessionID string) map[string]bool
	Items(tenantID, sessionID string) []selection.SelectedItem
	BreakdownByKind(tenantID, sessionID string) map[selection.ItemKind]int
	OnPage(tenantID, sessionID string, pageIDs []string) []selection.SelectedItem
	Count(tenantID, sessionID string) int
}

// SnapshotCache caches recently fetched snapshot pages per tenant.
type SnapshotCache interface {
	GetPage(tenantID, cursor string) ([]selection.EntitySnapshot, string, bool)
	SetPage(tenantID, cursor, nextCursor string, entities []selection.EntitySnapshot)
	GetByIDs(tenantID string, ids []string) (found []selection.EntitySnapshot, missing []string)
	SetEntities(tenantID string, entities []selection.EntitySnapshot)
	Invalidate(tenantID string)
}

// WorkflowCache stores the single live workflow machine per operator
// session.
type WorkflowCache interface {
	GetMachine(tenantID, sessionID string) (*workflow.Machine, bool)
	SetMachine(tenantID, sessionID string, m *workflow.Machine)
	RemoveMachine(tenantID, sessionID string)
}

// Cache is the composed view used by the cleanup worker and reporting.
type Cache interface {
	SelectionCache
	SnapshotCache
	WorkflowCache
	InitializeTenant(tenantID string)
	EvictIdleSessions(tenantID string, before int64) int
	PurgeStaleSnapshots(tenantID string, before int64) int
}
