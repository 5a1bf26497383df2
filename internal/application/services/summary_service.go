package services

import (
	"strings"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
)

// SummaryService derives aggregate lifecycle counts over the intersection of
// the selection and the entities currently known to the client. Pure and
// deterministic; no I/O.
type SummaryService struct{}

// NewSummaryService creates a new summary service
func NewSummaryService() *SummaryService {
	return &SummaryService{}
}

// Summarize folds every known entity that is part of the selection into the
// lifecycle counters. Returns nil when no selected entity is present in the
// supplied set, which callers read as "eligibility cannot be evaluated".
func (s *SummaryService) Summarize(selectedIDs map[string]bool, known []selection.EntitySnapshot) *selection.SelectionSummary {
	if len(selectedIDs) == 0 || len(known) == 0 {
		return nil
	}

	summary := &selection.SelectionSummary{}
	matched := 0

	for _, entity := range known {
		if !selectedIDs[entity.ID] {
			continue
		}
		matched++

		snap := entity.Snapshot
		if snap.IsPublished {
			summary.PublishedCount++
		} else {
			summary.UnpublishedCount++
		}
		if snap.IsArchived() {
			summary.ArchivedCount++
		}
		if snap.IsDeleted() {
			summary.DeletedCount++
		}

		// Unrecognized or absent approval values count toward none of the
		// three buckets.
		switch selection.ApprovalStatus(strings.ToLower(string(snap.ApprovalStatus))) {
		case selection.ApprovalApproved:
			summary.Approval.Approved++
		case selection.ApprovalPending:
			summary.Approval.Pending++
		case selection.ApprovalRejected:
			summary.Approval.Rejected++
		}
	}

	if matched == 0 {
		return nil
	}
	return summary
}
