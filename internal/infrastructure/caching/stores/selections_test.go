package stores

import (
	"testing"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
)

func item(id string, kind selection.ItemKind) selection.SelectedItem {
	return selection.SelectedItem{ID: id, Kind: kind, DisplayName: "item " + id}
}

func TestSelectIsIdempotent(t *testing.T) {
	store := NewSelectionsStore(nil)

	store.Select("t1", "s1", item("a", selection.KindAsset))
	store.Select("t1", "s1", item("a", selection.KindAsset))

	if got := store.Count("t1", "s1"); got != 1 {
		t.Errorf("count after double select = %d, want 1", got)
	}
}

func TestSelectOverwritesDisplayMetadata(t *testing.T) {
	store := NewSelectionsStore(nil)

	store.Select("t1", "s1", item("a", selection.KindAsset))
	renamed := item("a", selection.KindAsset)
	renamed.DisplayName = "renamed"
	store.Select("t1", "s1", renamed)

	items := store.Items("t1", "s1")
	if len(items) != 1 || items[0].DisplayName != "renamed" {
		t.Errorf("items = %+v, want single renamed entry", items)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	store := NewSelectionsStore(nil)

	if selected := store.Toggle("t1", "s1", item("a", selection.KindAsset)); !selected {
		t.Error("first toggle should select")
	}
	if !store.IsSelected("t1", "s1", "a") {
		t.Error("item should be selected after toggle")
	}
	if selected := store.Toggle("t1", "s1", item("a", selection.KindAsset)); selected {
		t.Error("second toggle should deselect")
	}
	if store.IsSelected("t1", "s1", "a") {
		t.Error("item should be deselected after second toggle")
	}
}

func TestDeselectNonMemberIsNoOp(t *testing.T) {
	store := NewSelectionsStore(nil)

	store.Select("t1", "s1", item("a", selection.KindAsset))
	store.Deselect("t1", "s1", "missing")
	store.Deselect("t1", "missing-session", "a")
	store.Deselect("other-tenant", "s1", "a")

	if got := store.Count("t1", "s1"); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	store := NewSelectionsStore(nil)

	store.Select("t1", "s1", item("c", selection.KindAsset))
	store.Select("t1", "s1", item("a", selection.KindExecution))
	store.Select("t1", "s1", item("b", selection.KindAsset))
	store.Deselect("t1", "s1", "a")
	store.Select("t1", "s1", item("a", selection.KindExecution))

	items := store.Items("t1", "s1")
	want := []string{"c", "b", "a"}
	if len(items) != len(want) {
		t.Fatalf("items = %d, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d] = %s, want %s", i, items[i].ID, id)
		}
	}
}

func TestSelectManyAndBreakdown(t *testing.T) {
	store := NewSelectionsStore(nil)

	store.Select("t1", "s1", item("a", selection.KindAsset))
	store.SelectMany("t1", "s1", []selection.SelectedItem{
		item("a", selection.KindAsset),
		item("b", selection.KindAsset),
		item("c", selection.KindCollection),
	})

	if got := store.Count("t1", "s1"); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
	breakdown := store.BreakdownByKind("t1", "s1")
	if breakdown[selection.KindAsset] != 2 || breakdown[selection.KindCollection] != 1 {
		t.Errorf("breakdown = %v", breakdown)
	}
}

func TestClearEmptiesOnlyOwningSession(t *testing.T) {
	store := NewSelectionsStore(nil)

	store.Select("t1", "s1", item("a", selection.KindAsset))
	store.Select("t1", "s2", item("b", selection.KindAsset))
	store.Clear("t1", "s1")

	if got := store.Count("t1", "s1"); got != 0 {
		t.Errorf("cleared session count = %d, want 0", got)
	}
	if got := store.Count("t1", "s2"); got != 1 {
		t.Errorf("sibling session count = %d, want 1", got)
	}
}

func TestTenantIsolation(t *testing.T) {
	store := NewSelectionsStore(nil)

	store.Select("t1", "s1", item("a", selection.KindAsset))
	store.Select("t2", "s1", item("b", selection.KindAsset))

	if store.IsSelected("t2", "s1", "a") {
		t.Error("selection leaked across tenants")
	}
	if got := store.Count("t2", "s1"); got != 1 {
		t.Errorf("tenant t2 count = %d, want 1", got)
	}
}

func TestOnPageReturnsVisibleIntersection(t *testing.T) {
	store := NewSelectionsStore(nil)

	store.SelectMany("t1", "s1", []selection.SelectedItem{
		item("a", selection.KindAsset),
		item("b", selection.KindAsset),
		item("c", selection.KindAsset),
	})

	visible := store.OnPage("t1", "s1", []string{"b", "x", "c", "y"})
	if len(visible) != 2 {
		t.Fatalf("visible = %d items, want 2", len(visible))
	}
	if visible[0].ID != "b" || visible[1].ID != "c" {
		t.Errorf("visible order = %s,%s, want b,c (page order)", visible[0].ID, visible[1].ID)
	}

	if got := store.OnPage("t1", "s1", []string{"x", "y"}); len(got) != 0 {
		t.Errorf("disjoint page should yield no targets, got %d", len(got))
	}
}

func TestEvictIdleSessions(t *testing.T) {
	store := NewSelectionsStore(nil)

	store.Select("t1", "stale", item("a", selection.KindAsset))
	cutoff := time.Now().UTC().Add(time.Minute).Unix()

	if evicted := store.EvictIdleSessions("t1", cutoff); evicted != 1 {
		t.Errorf("evicted = %d, want 1", evicted)
	}
	if got := store.Count("t1", "stale"); got != 0 {
		t.Errorf("count after eviction = %d, want 0", got)
	}
}
