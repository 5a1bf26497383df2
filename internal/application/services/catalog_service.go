package services

import (
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
)

// CatalogService exposes the action taxonomy and its eligibility-filtered
// view for the dashboard.
type CatalogService struct {
	eligibilityService *EligibilityService
}

// NewCatalogService creates a new catalog service
func NewCatalogService(eligibilityService *EligibilityService) *CatalogService {
	return &CatalogService{
		eligibilityService: eligibilityService,
	}
}

// FullCatalog returns the complete, unfiltered action catalog in presentation
// order.
func (s *CatalogService) FullCatalog() []action.Group {
	return action.Catalog()
}

// EligibleCatalog returns the catalog filtered to the actions legal for the
// given summary and mode. With a nil summary the full catalog comes back
// unchanged; browsing is never blocked by missing data.
func (s *CatalogService) EligibleCatalog(summary *selection.SelectionSummary, mode Mode) []action.Group {
	eligible := s.eligibilityService.Eligible(summary, mode)
	return s.eligibilityService.FilterGroups(action.Catalog(), eligible)
}
