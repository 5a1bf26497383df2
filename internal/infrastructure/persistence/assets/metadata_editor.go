package assets

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/repositories"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
)

// MetadataEditor applies metadata field rewrites directly, outside the bulk
// workflow. Add only fills absent fields, replace overwrites, clear removes.
type MetadataEditor struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewMetadataEditor(db *sql.DB, logger *logging.ChanneledLogger) *MetadataEditor {
	return &MetadataEditor{
		db:     db,
		logger: logger,
	}
}

func (m *MetadataEditor) Apply(ctx context.Context, targetIDs []string, op repositories.MetadataOperation, fields map[string]string) (*workflow.Outcome, error) {
	if len(targetIDs) == 0 {
		return nil, fmt.Errorf("empty target set")
	}
	if op != repositories.MetadataOpClear && len(fields) == 0 {
		return nil, fmt.Errorf("metadata %s requires at least one field", op)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin metadata transaction: %w", err)
	}
	defer tx.Rollback()

	// Stable field order keeps retries and logs deterministic.
	fieldNames := make([]string, 0, len(fields))
	for name := range fields {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)

	outcome := &workflow.Outcome{}

	for _, id := range targetIDs {
		exists, err := m.entityExists(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check entity %s: %w", id, err)
		}
		if !exists {
			outcome.Errors = append(outcome.Errors, workflow.ItemError{ID: id, Message: "entity not found"})
			continue
		}

		changed, err := m.applyToEntity(ctx, tx, id, op, fieldNames, fields)
		if err != nil {
			outcome.Errors = append(outcome.Errors, workflow.ItemError{ID: id, Message: err.Error()})
			continue
		}
		if changed {
			outcome.Processed++
		} else {
			outcome.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit metadata transaction: %w", err)
	}

	if m.logger != nil {
		m.logger.Batch().Info("Metadata edit applied",
			"operation", string(op),
			"targets", len(targetIDs),
			"fields", len(fieldNames),
			"processed", outcome.Processed,
			"skipped", outcome.Skipped,
			"errors", len(outcome.Errors),
		)
	}

	return outcome, nil
}

func (m *MetadataEditor) entityExists(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM entities WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *MetadataEditor) applyToEntity(ctx context.Context, tx *sql.Tx, id string, op repositories.MetadataOperation, fieldNames []string, fields map[string]string) (bool, error) {
	changed := false

	switch op {
	case repositories.MetadataOpAdd:
		for _, name := range fieldNames {
			result, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO entity_metadata (entity_id, field, value) VALUES (?, ?, ?)`,
				id, name, fields[name])
			if err != nil {
				return false, err
			}
			if affected, _ := result.RowsAffected(); affected > 0 {
				changed = true
			}
		}

	case repositories.MetadataOpReplace:
		for _, name := range fieldNames {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO entity_metadata (entity_id, field, value) VALUES (?, ?, ?)
				 ON CONFLICT(entity_id, field) DO UPDATE SET value = excluded.value`,
				id, name, fields[name])
			if err != nil {
				return false, err
			}
			changed = true
		}

	case repositories.MetadataOpClear:
		if len(fieldNames) == 0 {
			result, err := tx.ExecContext(ctx, `DELETE FROM entity_metadata WHERE entity_id = ?`, id)
			if err != nil {
				return false, err
			}
			if affected, _ := result.RowsAffected(); affected > 0 {
				changed = true
			}
		} else {
			for _, name := range fieldNames {
				result, err := tx.ExecContext(ctx,
					`DELETE FROM entity_metadata WHERE entity_id = ? AND field = ?`, id, name)
				if err != nil {
					return false, err
				}
				if affected, _ := result.RowsAffected(); affected > 0 {
					changed = true
				}
			}
		}

	default:
		return false, fmt.Errorf("unknown metadata operation: %s", op)
	}

	return changed, nil
}
