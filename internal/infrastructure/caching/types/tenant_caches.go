// Package types defines the per-tenant cache structures held by the cache
// manager. Each structure carries its own mutex so stores can lock at tenant
// granularity.
package types

import (
	"sync"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"
)

// SelectionSet is one operator session's selection. Membership is keyed by
// id alone; Order preserves insertion sequence so the dashboard tray renders
// stably across refreshes. Re-selecting an id refreshes its display metadata
// without duplicating the entry.
type SelectionSet struct {
	Items        map[string]selection.SelectedItem
	Order        []string
	LastAccessed time.Time
}

// NewSelectionSet creates an empty selection set.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{
		Items:        make(map[string]selection.SelectedItem),
		LastAccessed: time.Now().UTC(),
	}
}

// TenantSelectionCache holds every live selection set for one tenant, keyed
// by operator session id.
type TenantSelectionCache struct {
	Sessions     map[string]*SelectionSet
	Mu           sync.RWMutex
	LastAccessed time.Time
}

// CachedSnapshotPage is one page of entity snapshots with its fetch time for
// TTL eviction.
type CachedSnapshotPage struct {
	Cursor     string
	NextCursor string
	Entities   []selection.EntitySnapshot
	LoadedAt   time.Time
}

// TenantSnapshotCache holds recently fetched snapshot pages and an id index
// over their entities for one tenant.
type TenantSnapshotCache struct {
	Pages        map[string]*CachedSnapshotPage
	ByID         map[string]selection.EntitySnapshot
	Mu           sync.RWMutex
	LastAccessed time.Time
}

// WorkflowEntry pairs a workflow machine with its session for eviction
// bookkeeping.
type WorkflowEntry struct {
	Machine      *workflow.Machine
	LastAccessed time.Time
}

// TenantWorkflowCache holds the live bulk-action workflow instance per
// operator session for one tenant. At most one instance exists per session.
type TenantWorkflowCache struct {
	Sessions     map[string]*WorkflowEntry
	Mu           sync.RWMutex
	LastAccessed time.Time
}
