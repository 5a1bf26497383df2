package services

import (
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
)

// Mode carries the view and capability flags the eligibility engine consumes.
// Capabilities arrive as booleans from the operator's token; the engine never
// evaluates permissions itself.
type Mode struct {
	IsTrashView    bool `json:"isTrashView"`
	CanForceDelete bool `json:"canForceDelete"`
}

// EligibilityService maps a selection summary plus mode flags to the set of
// currently-legal actions. Pure and deterministic; no I/O.
type EligibilityService struct{}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService() *EligibilityService {
	return &EligibilityService{}
}

// Eligible returns the set of legal action ids for the given summary. A nil
// summary yields a nil set: callers show the full catalog unfiltered for
// display, but the submission path still requires a concrete decision before
// dispatch. The per-action condition table is a product decision and must be
// preserved exactly.
func (s *EligibilityService) Eligible(summary *selection.SelectionSummary, mode Mode) map[action.ID]bool {
	if summary == nil {
		return nil
	}

	eligible := make(map[action.ID]bool)

	if summary.UnpublishedCount > 0 {
		eligible[action.Publish] = true
	}
	if summary.PublishedCount > 0 {
		eligible[action.Unpublish] = true
	}
	if summary.ArchivedCount == 0 {
		eligible[action.Archive] = true
	}
	if summary.ArchivedCount > 0 {
		eligible[action.RestoreArchive] = true
	}
	if summary.Approval.Pending > 0 || summary.Approval.Rejected > 0 {
		eligible[action.Approve] = true
	}
	if summary.Approval.Approved > 0 || summary.Approval.Rejected > 0 {
		eligible[action.MarkPending] = true
	}
	if summary.Approval.Pending > 0 {
		eligible[action.Reject] = true
	}

	// Metadata rewrites have no lifecycle precondition.
	eligible[action.MetadataAdd] = true
	eligible[action.MetadataReplace] = true
	eligible[action.MetadataClear] = true

	if summary.DeletedCount == 0 {
		eligible[action.SoftDelete] = true
	}
	if summary.DeletedCount > 0 {
		eligible[action.RestoreTrash] = true
	}
	if mode.IsTrashView && summary.DeletedCount > 0 && mode.CanForceDelete {
		eligible[action.ForceDelete] = true
	}

	return eligible
}

// FilterGroups keeps only eligible actions in each catalog group and drops
// groups left empty. A nil eligible set returns the catalog unchanged.
// Presentation order is preserved.
func (s *EligibilityService) FilterGroups(catalog []action.Group, eligible map[action.ID]bool) []action.Group {
	if eligible == nil {
		return catalog
	}

	filtered := make([]action.Group, 0, len(catalog))
	for _, group := range catalog {
		kept := make([]action.Action, 0, len(group.Actions))
		for _, a := range group.Actions {
			if eligible[a.ID] {
				kept = append(kept, a)
			}
		}
		if len(kept) == 0 {
			continue
		}
		group.Actions = kept
		filtered = append(filtered, group)
	}

	return filtered
}
