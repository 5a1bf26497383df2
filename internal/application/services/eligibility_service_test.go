package services

import (
	"testing"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
)

func TestEligibleNilSummary(t *testing.T) {
	svc := NewEligibilityService()
	if got := svc.Eligible(nil, Mode{}); got != nil {
		t.Errorf("expected nil eligible set for nil summary, got %v", got)
	}
}

func TestEligibleRuleTable(t *testing.T) {
	svc := NewEligibilityService()

	tests := []struct {
		name    string
		summary selection.SelectionSummary
		mode    Mode
		want    map[action.ID]bool
		notWant []action.ID
	}{
		{
			name:    "all published",
			summary: selection.SelectionSummary{PublishedCount: 3},
			want:    map[action.ID]bool{action.Unpublish: true, action.Archive: true, action.SoftDelete: true},
			notWant: []action.ID{action.Publish, action.RestoreArchive, action.RestoreTrash, action.Reject},
		},
		{
			name:    "all unpublished",
			summary: selection.SelectionSummary{UnpublishedCount: 2},
			want:    map[action.ID]bool{action.Publish: true, action.Archive: true},
			notWant: []action.ID{action.Unpublish},
		},
		{
			name:    "mixed publication",
			summary: selection.SelectionSummary{PublishedCount: 1, UnpublishedCount: 1},
			want:    map[action.ID]bool{action.Publish: true, action.Unpublish: true},
		},
		{
			name:    "contains archived",
			summary: selection.SelectionSummary{UnpublishedCount: 2, ArchivedCount: 1},
			want:    map[action.ID]bool{action.RestoreArchive: true},
			notWant: []action.ID{action.Archive},
		},
		{
			name:    "pending approval",
			summary: selection.SelectionSummary{UnpublishedCount: 1, Approval: selection.ApprovalCounts{Pending: 1}},
			want:    map[action.ID]bool{action.Approve: true, action.Reject: true},
			notWant: []action.ID{action.MarkPending},
		},
		{
			name:    "approved only",
			summary: selection.SelectionSummary{PublishedCount: 1, Approval: selection.ApprovalCounts{Approved: 1}},
			want:    map[action.ID]bool{action.MarkPending: true},
			notWant: []action.ID{action.Approve, action.Reject},
		},
		{
			name:    "rejected only",
			summary: selection.SelectionSummary{UnpublishedCount: 1, Approval: selection.ApprovalCounts{Rejected: 1}},
			want:    map[action.ID]bool{action.Approve: true, action.MarkPending: true},
			notWant: []action.ID{action.Reject},
		},
		{
			name:    "deleted outside trash view",
			summary: selection.SelectionSummary{UnpublishedCount: 1, DeletedCount: 1},
			want:    map[action.ID]bool{action.RestoreTrash: true},
			notWant: []action.ID{action.SoftDelete, action.ForceDelete},
		},
		{
			name:    "trash view without capability",
			summary: selection.SelectionSummary{UnpublishedCount: 1, DeletedCount: 1},
			mode:    Mode{IsTrashView: true},
			notWant: []action.ID{action.ForceDelete},
		},
		{
			name:    "trash view with capability",
			summary: selection.SelectionSummary{UnpublishedCount: 1, DeletedCount: 1},
			mode:    Mode{IsTrashView: true, CanForceDelete: true},
			want:    map[action.ID]bool{action.ForceDelete: true, action.RestoreTrash: true},
		},
		{
			name:    "capability without trash view",
			summary: selection.SelectionSummary{UnpublishedCount: 1, DeletedCount: 1},
			mode:    Mode{CanForceDelete: true},
			notWant: []action.ID{action.ForceDelete},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible := svc.Eligible(&tt.summary, tt.mode)
			if eligible == nil {
				t.Fatal("expected a non-nil eligible set")
			}
			for id := range tt.want {
				if !eligible[id] {
					t.Errorf("expected %s to be eligible", id)
				}
			}
			for _, id := range tt.notWant {
				if eligible[id] {
					t.Errorf("expected %s to be ineligible", id)
				}
			}
		})
	}
}

func TestEligibleMetadataAlwaysAllowed(t *testing.T) {
	svc := NewEligibilityService()

	summaries := []selection.SelectionSummary{
		{PublishedCount: 1},
		{UnpublishedCount: 1, DeletedCount: 1},
		{UnpublishedCount: 1, ArchivedCount: 1},
	}
	for _, summary := range summaries {
		eligible := svc.Eligible(&summary, Mode{})
		for _, id := range []action.ID{action.MetadataAdd, action.MetadataReplace, action.MetadataClear} {
			if !eligible[id] {
				t.Errorf("metadata action %s should be eligible for %+v", id, summary)
			}
		}
	}
}

// Three unpublished assets awaiting approval: the operator can publish,
// archive, approve or reject, but not unpublish or restore.
func TestEligibleUnpublishedPendingBatch(t *testing.T) {
	svc := NewEligibilityService()

	summary := &selection.SelectionSummary{
		UnpublishedCount: 3,
		Approval:         selection.ApprovalCounts{Pending: 3},
	}
	eligible := svc.Eligible(summary, Mode{})

	for _, id := range []action.ID{action.Publish, action.Archive, action.Approve, action.Reject, action.SoftDelete} {
		if !eligible[id] {
			t.Errorf("expected %s to be eligible", id)
		}
	}
	for _, id := range []action.ID{action.Unpublish, action.RestoreArchive, action.MarkPending, action.RestoreTrash, action.ForceDelete} {
		if eligible[id] {
			t.Errorf("expected %s to be ineligible", id)
		}
	}
}

func TestFilterGroupsDropsEmptyGroupsAndKeepsOrder(t *testing.T) {
	svc := NewEligibilityService()
	catalog := action.Catalog()

	eligible := map[action.ID]bool{
		action.Publish:      true,
		action.MetadataAdd:  true,
		action.RestoreTrash: true,
	}

	filtered := svc.FilterGroups(catalog, eligible)

	wantGroups := []action.GroupID{action.GroupPublication, action.GroupMetadata, action.GroupTrash}
	if len(filtered) != len(wantGroups) {
		t.Fatalf("filtered group count = %d, want %d", len(filtered), len(wantGroups))
	}
	for i, group := range filtered {
		if group.ID != wantGroups[i] {
			t.Errorf("group[%d] = %s, want %s", i, group.ID, wantGroups[i])
		}
	}

	// Every surviving action is eligible, and every eligible action survives.
	seen := make(map[action.ID]bool)
	for _, group := range filtered {
		if len(group.Actions) == 0 {
			t.Errorf("group %s kept with no actions", group.ID)
		}
		for _, a := range group.Actions {
			if !eligible[a.ID] {
				t.Errorf("ineligible action %s survived filtering", a.ID)
			}
			seen[a.ID] = true
		}
	}
	for id := range eligible {
		if !seen[id] {
			t.Errorf("eligible action %s missing from filtered catalog", id)
		}
	}
}

func TestFilterGroupsNilEligiblePassesThrough(t *testing.T) {
	svc := NewEligibilityService()
	catalog := action.Catalog()

	filtered := svc.FilterGroups(catalog, nil)
	if len(filtered) != len(catalog) {
		t.Fatalf("nil eligible set should return the full catalog, got %d groups", len(filtered))
	}
}

func TestFilterGroupsDoesNotMutateSource(t *testing.T) {
	svc := NewEligibilityService()
	catalog := action.Catalog()
	before := len(catalog[0].Actions)

	svc.FilterGroups(catalog, map[action.ID]bool{action.Publish: true})

	if len(catalog[0].Actions) != before {
		t.Error("filtering mutated the source catalog")
	}
}
