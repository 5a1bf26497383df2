package stores

import (
	"testing"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
)

func snapshot(id string) selection.EntitySnapshot {
	return selection.EntitySnapshot{
		ID:    id,
		Kind:  selection.KindAsset,
		Title: "entity " + id,
	}
}

func TestGetPageMissOnColdCache(t *testing.T) {
	store := NewSnapshotsStore(nil)
	if _, _, hit := store.GetPage("t1", ""); hit {
		t.Error("cold cache reported a page hit")
	}
}

func TestSetPageRoundTrip(t *testing.T) {
	store := NewSnapshotsStore(nil)

	entities := []selection.EntitySnapshot{snapshot("a"), snapshot("b")}
	store.SetPage("t1", "", "b", entities)

	got, next, hit := store.GetPage("t1", "")
	if !hit {
		t.Fatal("expected a page hit after SetPage")
	}
	if next != "b" {
		t.Errorf("next cursor = %q, want b", next)
	}
	if len(got) != 2 || got[0].ID != "a" {
		t.Errorf("entities = %+v", got)
	}

	if _, _, hit := store.GetPage("t1", "b"); hit {
		t.Error("unrelated cursor reported a hit")
	}
}

func TestGetByIDsReportsMissing(t *testing.T) {
	store := NewSnapshotsStore(nil)
	store.SetEntities("t1", []selection.EntitySnapshot{snapshot("a"), snapshot("c")})

	found, missing := store.GetByIDs("t1", []string{"a", "b", "c"})
	if len(found) != 2 {
		t.Errorf("found = %d, want 2", len(found))
	}
	if len(missing) != 1 || missing[0] != "b" {
		t.Errorf("missing = %v, want [b]", missing)
	}
}

func TestSetPageIndexesEntitiesByID(t *testing.T) {
	store := NewSnapshotsStore(nil)
	store.SetPage("t1", "", "", []selection.EntitySnapshot{snapshot("a")})

	found, missing := store.GetByIDs("t1", []string{"a"})
	if len(found) != 1 || len(missing) != 0 {
		t.Errorf("page entities not indexed by id: found=%d missing=%v", len(found), missing)
	}
}

func TestInvalidateDropsEverything(t *testing.T) {
	store := NewSnapshotsStore(nil)
	store.SetPage("t1", "", "b", []selection.EntitySnapshot{snapshot("a")})
	store.SetEntities("t1", []selection.EntitySnapshot{snapshot("c")})

	store.Invalidate("t1")

	if _, _, hit := store.GetPage("t1", ""); hit {
		t.Error("page survived invalidation")
	}
	if found, _ := store.GetByIDs("t1", []string{"a", "c"}); len(found) != 0 {
		t.Errorf("entities survived invalidation: %+v", found)
	}
}

func TestInvalidateIsTenantScoped(t *testing.T) {
	store := NewSnapshotsStore(nil)
	store.SetEntities("t1", []selection.EntitySnapshot{snapshot("a")})
	store.SetEntities("t2", []selection.EntitySnapshot{snapshot("a")})

	store.Invalidate("t1")

	if found, _ := store.GetByIDs("t2", []string{"a"}); len(found) != 1 {
		t.Error("invalidation leaked across tenants")
	}
}
