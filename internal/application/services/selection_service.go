package services

import (
	"fmt"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
)

// SelectionService fronts the per-session selection cache and enforces the
// per-session size cap. The selection survives pagination and navigation; it
// is only cleared explicitly or after a successful batch submission.
type SelectionService struct{}

// NewSelectionService creates a new selection service
func NewSelectionService() *SelectionService {
	return &SelectionService{}
}

// Select adds one item to the session's selection. Re-selecting an existing
// id refreshes its display metadata without duplicating the entry.
func (s *SelectionService) Select(tenantCtx *tenant.Context, sessionID string, item selection.SelectedItem) error {
	if err := validateItem(item); err != nil {
		return err
	}

	cache := tenantCtx.GetCacheManager()
	if !cache.IsSelected(tenantCtx.TenantID, sessionID, item.ID) &&
		cache.Count(tenantCtx.TenantID, sessionID) >= config.MaxSelectionPerSession {
		return fmt.Errorf("selection limit of %d items reached", config.MaxSelectionPerSession)
	}

	cache.Select(tenantCtx.TenantID, sessionID, item)
	return nil
}

// Deselect removes an id from the selection; unknown ids are a no-op.
func (s *SelectionService) Deselect(tenantCtx *tenant.Context, sessionID, id string) {
	tenantCtx.GetCacheManager().Deselect(tenantCtx.TenantID, sessionID, id)
}

// Toggle flips membership for an item and reports the new state.
func (s *SelectionService) Toggle(tenantCtx *tenant.Context, sessionID string, item selection.SelectedItem) (bool, error) {
	if err := validateItem(item); err != nil {
		return false, err
	}

	cache := tenantCtx.GetCacheManager()
	if !cache.IsSelected(tenantCtx.TenantID, sessionID, item.ID) &&
		cache.Count(tenantCtx.TenantID, sessionID) >= config.MaxSelectionPerSession {
		return false, fmt.Errorf("selection limit of %d items reached", config.MaxSelectionPerSession)
	}

	return cache.Toggle(tenantCtx.TenantID, sessionID, item), nil
}

// SelectMany adds a batch of items, typically page-select-all. Idempotent per
// item; items beyond the session cap are refused as a whole.
func (s *SelectionService) SelectMany(tenantCtx *tenant.Context, sessionID string, items []selection.SelectedItem) error {
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return err
		}
	}

	cache := tenantCtx.GetCacheManager()
	newCount := 0
	for _, item := range items {
		if !cache.IsSelected(tenantCtx.TenantID, sessionID, item.ID) {
			newCount++
		}
	}
	if cache.Count(tenantCtx.TenantID, sessionID)+newCount > config.MaxSelectionPerSession {
		return fmt.Errorf("selection limit of %d items reached", config.MaxSelectionPerSession)
	}

	cache.SelectMany(tenantCtx.TenantID, sessionID, items)
	return nil
}

// Clear empties the session's selection.
func (s *SelectionService) Clear(tenantCtx *tenant.Context, sessionID string) {
	tenantCtx.GetCacheManager().Clear(tenantCtx.TenantID, sessionID)
}

// IsSelected reports membership for one id.
func (s *SelectionService) IsSelected(tenantCtx *tenant.Context, sessionID, id string) bool {
	return tenantCtx.GetCacheManager().IsSelected(tenantCtx.TenantID, sessionID, id)
}

// IDs returns the selected id set.
func (s *SelectionService) IDs(tenantCtx *tenant.Context, sessionID string) map[string]bool {
	return tenantCtx.GetCacheManager().IDs(tenantCtx.TenantID, sessionID)
}

// Items returns the selection in stable display order.
func (s *SelectionService) Items(tenantCtx *tenant.Context, sessionID string) []selection.SelectedItem {
	return tenantCtx.GetCacheManager().Items(tenantCtx.TenantID, sessionID)
}

// BreakdownByKind returns per-kind counts for the selection tray.
func (s *SelectionService) BreakdownByKind(tenantCtx *tenant.Context, sessionID string) map[selection.ItemKind]int {
	return tenantCtx.GetCacheManager().BreakdownByKind(tenantCtx.TenantID, sessionID)
}

// OnPage returns the selected items whose ids appear in the supplied page id
// list; this intersection is what a batch submission is scoped to.
func (s *SelectionService) OnPage(tenantCtx *tenant.Context, sessionID string, pageIDs []string) []selection.SelectedItem {
	return tenantCtx.GetCacheManager().OnPage(tenantCtx.TenantID, sessionID, pageIDs)
}

// Count returns the selection cardinality.
func (s *SelectionService) Count(tenantCtx *tenant.Context, sessionID string) int {
	return tenantCtx.GetCacheManager().Count(tenantCtx.TenantID, sessionID)
}

func validateItem(item selection.SelectedItem) error {
	if item.ID == "" {
		return fmt.Errorf("item id is required")
	}
	if !item.Kind.Valid() {
		return fmt.Errorf("unknown item kind %q", item.Kind)
	}
	return nil
}
