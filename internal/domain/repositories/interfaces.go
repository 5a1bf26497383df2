// Package repositories defines the persistence and write-path contracts the
// application layer depends on. Concrete implementations live in
// internal/infrastructure/persistence.
package repositories

import (
	"context"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"
)

// SnapshotPage is one page of lifecycle snapshots plus the cursor for the
// next page. An id absent from a page is unknown, never default-false.
type SnapshotPage struct {
	Entities   []selection.EntitySnapshot `json:"entities"`
	NextCursor string                     `json:"nextCursor,omitempty"`
}

// SnapshotRepository supplies lifecycle snapshots for the currently-rendered
// page and for explicit id sets.
type SnapshotRepository interface {
	FindPage(ctx context.Context, cursor string, limit int) (*SnapshotPage, error)
	FindByIDs(ctx context.Context, ids []string) ([]selection.EntitySnapshot, error)
}

// BatchExecutor is the single write-path dependency: it applies one lifecycle
// command to a target id set and reports per-item processed/skipped/error
// counts. Implementations must be idempotent-safe on client retry; the
// workflow does not deduplicate submissions.
type BatchExecutor interface {
	Submit(ctx context.Context, actionID action.ID, targetIDs []string, payload map[string]string) (*workflow.Outcome, error)
}

// MetadataOperation selects the rewrite mode for the metadata editor.
type MetadataOperation string

const (
	MetadataOpAdd     MetadataOperation = "add"
	MetadataOpReplace MetadataOperation = "replace"
	MetadataOpClear   MetadataOperation = "clear"
)

// MetadataEditor is invoked directly when a metadata action short-circuits
// the bulk workflow.
type MetadataEditor interface {
	Apply(ctx context.Context, targetIDs []string, op MetadataOperation, fields map[string]string) (*workflow.Outcome, error)
}
