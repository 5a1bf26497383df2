// Package assets provides the SQL persistence layer for entity lifecycle
// state. All queries run against the tenant's own database connection.
package assets

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/repositories"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
)

type SnapshotRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewSnapshotRepository(db *sql.DB, logger *logging.ChanneledLogger) *SnapshotRepository {
	return &SnapshotRepository{
		db:     db,
		logger: logger,
	}
}

const snapshotColumns = `id, kind, title, thumbnail_ref, is_published, archived_at, deleted_at, approval_status`

// FindPage returns one keyset-paginated page of snapshots ordered by id.
// The cursor is the last id of the previous page; empty means first page.
func (r *SnapshotRepository) FindPage(ctx context.Context, cursor string, limit int) (*repositories.SnapshotPage, error) {
	query := fmt.Sprintf(`SELECT %s FROM entities WHERE id > ? ORDER BY id LIMIT ?`, snapshotColumns)

	// Fetch one extra row to learn whether another page exists.
	rows, err := r.db.QueryContext(ctx, query, cursor, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot page: %w", err)
	}
	defer rows.Close()

	entities := make([]selection.EntitySnapshot, 0, limit)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot page iteration failed: %w", err)
	}

	page := &repositories.SnapshotPage{}
	if len(entities) > limit {
		entities = entities[:limit]
		page.NextCursor = entities[limit-1].ID
	}
	page.Entities = entities

	return page, nil
}

// FindByIDs returns snapshots for the given ids. Ids with no row are simply
// absent from the result; callers treat them as unknown.
func (r *SnapshotRepository) FindByIDs(ctx context.Context, ids []string) ([]selection.EntitySnapshot, error) {
	if len(ids) == 0 {
		return []selection.EntitySnapshot{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`SELECT %s FROM entities WHERE id IN (%s) ORDER BY id`, snapshotColumns, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots by ids: %w", err)
	}
	defer rows.Close()

	entities := make([]selection.EntitySnapshot, 0, len(ids))
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot id lookup iteration failed: %w", err)
	}

	return entities, nil
}

// SetThumbnailRef records the rendered thumbnail path on the entity row.
func (r *SnapshotRepository) SetThumbnailRef(ctx context.Context, id, ref string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE entities SET thumbnail_ref = ? WHERE id = ?`, ref, id)
	if err != nil {
		return fmt.Errorf("failed to update thumbnail ref: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("entity %s not found", id)
	}
	return nil
}

func scanSnapshot(rows *sql.Rows) (*selection.EntitySnapshot, error) {
	var (
		snapshot     selection.EntitySnapshot
		kind         string
		thumbnailRef sql.NullString
		isPublished  int
		archivedAt   sql.NullString
		deletedAt    sql.NullString
		approval     sql.NullString
	)

	if err := rows.Scan(&snapshot.ID, &kind, &snapshot.Title, &thumbnailRef,
		&isPublished, &archivedAt, &deletedAt, &approval); err != nil {
		return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
	}

	snapshot.Kind = selection.ItemKind(kind)
	if thumbnailRef.Valid {
		snapshot.ThumbnailRef = thumbnailRef.String
	}
	snapshot.Snapshot.IsPublished = isPublished != 0
	snapshot.Snapshot.ArchivedAt = parseTimestamp(archivedAt)
	snapshot.Snapshot.DeletedAt = parseTimestamp(deletedAt)
	if approval.Valid && approval.String != "" {
		snapshot.Snapshot.ApprovalStatus = selection.ApprovalStatus(approval.String)
	} else {
		snapshot.Snapshot.ApprovalStatus = selection.ApprovalNone
	}

	return &snapshot, nil
}

func parseTimestamp(value sql.NullString) *time.Time {
	if !value.Valid || value.String == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value.String); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", value.String); err == nil {
		return &t
	}
	return nil
}
