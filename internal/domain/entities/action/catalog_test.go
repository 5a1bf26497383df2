package action

import "testing"

func TestCatalogContainsEveryAction(t *testing.T) {
	all := []ID{
		Publish, Unpublish, Archive, RestoreArchive,
		Approve, MarkPending, Reject,
		MetadataAdd, MetadataReplace, MetadataClear,
		SoftDelete, RestoreTrash, ForceDelete,
	}

	present := make(map[ID]bool)
	for _, group := range Catalog() {
		for _, a := range group.Actions {
			if present[a.ID] {
				t.Errorf("action %s appears twice in the catalog", a.ID)
			}
			present[a.ID] = true
			if a.Group != group.ID {
				t.Errorf("action %s carries group %s inside group %s", a.ID, a.Group, group.ID)
			}
		}
	}

	for _, id := range all {
		if !present[id] {
			t.Errorf("action %s missing from catalog", id)
		}
	}
	if len(present) != len(all) {
		t.Errorf("catalog has %d actions, want %d", len(present), len(all))
	}
}

func TestCatalogReturnsFreshSlices(t *testing.T) {
	first := Catalog()
	first[0].Actions = first[0].Actions[:1]
	first[0].Actions[0].Label = "mutated"

	second := Catalog()
	if len(second[0].Actions) != 2 || second[0].Actions[0].Label == "mutated" {
		t.Error("catalog mutation leaked into subsequent calls")
	}
}

func TestIDClassification(t *testing.T) {
	if ID("explode").Valid() {
		t.Error("unknown id reported valid")
	}
	for _, id := range []ID{MetadataAdd, MetadataReplace, MetadataClear} {
		if !id.IsMetadata() {
			t.Errorf("%s should be a metadata action", id)
		}
		if id.IsLifecycle() {
			t.Errorf("%s should not be a lifecycle action", id)
		}
	}
	for _, id := range []ID{Publish, Archive, ForceDelete} {
		if id.IsMetadata() {
			t.Errorf("%s should not be a metadata action", id)
		}
		if !id.IsLifecycle() {
			t.Errorf("%s should be a lifecycle action", id)
		}
	}
	// Reject collects a reason instead of rendering the plain lifecycle
	// confirmation summary.
	if Reject.IsLifecycle() {
		t.Error("reject should not be classified as a plain lifecycle action")
	}
}

func TestForceDeleteIsDanger(t *testing.T) {
	for _, group := range Catalog() {
		for _, a := range group.Actions {
			if a.ID == ForceDelete && a.Tint != TintDanger {
				t.Errorf("force delete tint = %s, want %s", a.Tint, TintDanger)
			}
		}
	}
}
