package assets

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
)

// BatchExecutor applies one lifecycle action to a target id set inside a
// single transaction. Items already in the requested state are counted as
// skipped rather than failed, which keeps client retries harmless.
type BatchExecutor struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewBatchExecutor(db *sql.DB, logger *logging.ChanneledLogger) *BatchExecutor {
	return &BatchExecutor{
		db:     db,
		logger: logger,
	}
}

// rowState is the minimal lifecycle view the executor needs per item.
type rowState struct {
	isPublished bool
	archivedAt  sql.NullString
	deletedAt   sql.NullString
	approval    sql.NullString
}

func (s *rowState) isArchived() bool { return s.archivedAt.Valid && s.archivedAt.String != "" }
func (s *rowState) isDeleted() bool  { return s.deletedAt.Valid && s.deletedAt.String != "" }

// Submit executes the action against each target and returns per-item counts.
// Metadata actions never reach this path; they are dispatched to the metadata
// editor instead.
func (e *BatchExecutor) Submit(ctx context.Context, actionID action.ID, targetIDs []string, payload map[string]string) (*workflow.Outcome, error) {
	if actionID.IsMetadata() {
		return nil, fmt.Errorf("metadata action %s is not a batch lifecycle command", actionID)
	}
	if !actionID.Valid() {
		return nil, fmt.Errorf("unknown action: %s", actionID)
	}
	if len(targetIDs) == 0 {
		return nil, fmt.Errorf("empty target set")
	}

	start := time.Now()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer tx.Rollback()

	outcome := &workflow.Outcome{}
	now := time.Now().UTC().Format(time.RFC3339)

	for _, id := range targetIDs {
		state, err := e.loadRow(ctx, tx, id)
		if err == sql.ErrNoRows {
			outcome.Errors = append(outcome.Errors, workflow.ItemError{ID: id, Message: "entity not found"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load entity %s: %w", id, err)
		}

		applied, err := e.applyAction(ctx, tx, actionID, id, state, now)
		if err != nil {
			outcome.Errors = append(outcome.Errors, workflow.ItemError{ID: id, Message: err.Error()})
			continue
		}
		if applied {
			outcome.Processed++
		} else {
			outcome.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch transaction: %w", err)
	}

	if e.logger != nil {
		e.logger.Batch().Info("Batch action applied",
			"action", string(actionID),
			"targets", len(targetIDs),
			"processed", outcome.Processed,
			"skipped", outcome.Skipped,
			"errors", len(outcome.Errors),
			"duration", time.Since(start),
		)
	}

	return outcome, nil
}

func (e *BatchExecutor) loadRow(ctx context.Context, tx *sql.Tx, id string) (*rowState, error) {
	var state rowState
	var publishedInt int
	err := tx.QueryRowContext(ctx,
		`SELECT is_published, archived_at, deleted_at, approval_status FROM entities WHERE id = ?`, id,
	).Scan(&publishedInt, &state.archivedAt, &state.deletedAt, &state.approval)
	if err != nil {
		return nil, err
	}
	state.isPublished = publishedInt != 0
	return &state, nil
}

// applyAction mutates a single row. Returns false when the row is already in
// the requested state.
func (e *BatchExecutor) applyAction(ctx context.Context, tx *sql.Tx, actionID action.ID, id string, state *rowState, now string) (bool, error) {
	switch actionID {
	case action.Publish:
		if state.isDeleted() {
			return false, fmt.Errorf("cannot publish a trashed entity")
		}
		if state.isArchived() {
			return false, fmt.Errorf("cannot publish an archived entity")
		}
		if state.isPublished {
			return false, nil
		}
		return e.exec(ctx, tx, `UPDATE entities SET is_published = 1 WHERE id = ?`, id)

	case action.Unpublish:
		if state.isDeleted() {
			return false, fmt.Errorf("cannot unpublish a trashed entity")
		}
		if !state.isPublished {
			return false, nil
		}
		return e.exec(ctx, tx, `UPDATE entities SET is_published = 0 WHERE id = ?`, id)

	case action.Archive:
		if state.isDeleted() {
			return false, fmt.Errorf("cannot archive a trashed entity")
		}
		if state.isArchived() {
			return false, nil
		}
		return e.execArg(ctx, tx, `UPDATE entities SET archived_at = ?, is_published = 0 WHERE id = ?`, now, id)

	case action.RestoreArchive:
		if state.isDeleted() {
			return false, fmt.Errorf("cannot restore a trashed entity from archive")
		}
		if !state.isArchived() {
			return false, nil
		}
		return e.exec(ctx, tx, `UPDATE entities SET archived_at = NULL WHERE id = ?`, id)

	case action.Approve:
		return e.setApproval(ctx, tx, id, state, "approved")

	case action.MarkPending:
		return e.setApproval(ctx, tx, id, state, "pending")

	case action.Reject:
		return e.setApproval(ctx, tx, id, state, "rejected")

	case action.SoftDelete:
		if state.isDeleted() {
			return false, nil
		}
		return e.execArg(ctx, tx, `UPDATE entities SET deleted_at = ?, is_published = 0 WHERE id = ?`, now, id)

	case action.RestoreTrash:
		if !state.isDeleted() {
			return false, nil
		}
		return e.exec(ctx, tx, `UPDATE entities SET deleted_at = NULL WHERE id = ?`, id)

	case action.ForceDelete:
		if _, err := tx.ExecContext(ctx, `DELETE FROM entity_metadata WHERE entity_id = ?`, id); err != nil {
			return false, fmt.Errorf("failed to delete entity metadata: %w", err)
		}
		return e.exec(ctx, tx, `DELETE FROM entities WHERE id = ?`, id)

	default:
		return false, fmt.Errorf("unsupported action: %s", actionID)
	}
}

func (e *BatchExecutor) setApproval(ctx context.Context, tx *sql.Tx, id string, state *rowState, status string) (bool, error) {
	if state.isDeleted() {
		return false, fmt.Errorf("cannot change approval of a trashed entity")
	}
	if state.approval.Valid && state.approval.String == status {
		return false, nil
	}
	return e.execArg(ctx, tx, `UPDATE entities SET approval_status = ? WHERE id = ?`, status, id)
}

func (e *BatchExecutor) exec(ctx context.Context, tx *sql.Tx, query, id string) (bool, error) {
	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (e *BatchExecutor) execArg(ctx context.Context, tx *sql.Tx, query, arg, id string) (bool, error) {
	result, err := tx.ExecContext(ctx, query, arg, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
