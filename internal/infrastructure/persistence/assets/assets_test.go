package assets

import (
	"context"
	"database/sql"
	"testing"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/selection"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/repositories"
	_ "github.com/mattn/go-sqlite3"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("schema bootstrap failed: %v", err)
	}
	return db
}

func seedEntity(t *testing.T, db *sql.DB, id string, published bool, archivedAt, deletedAt, approval string) {
	t.Helper()
	pub := 0
	if published {
		pub = 1
	}
	var archived, deleted any
	if archivedAt != "" {
		archived = archivedAt
	}
	if deletedAt != "" {
		deleted = deletedAt
	}
	if approval == "" {
		approval = "none"
	}
	_, err := db.Exec(
		`INSERT INTO entities (id, kind, title, is_published, archived_at, deleted_at, approval_status)
		 VALUES (?, 'asset', ?, ?, ?, ?, ?)`,
		id, "entity "+id, pub, archived, deleted, approval)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func loadState(t *testing.T, db *sql.DB, id string) (published bool, archived, deleted bool, approval string) {
	t.Helper()
	var pub int
	var archivedAt, deletedAt sql.NullString
	err := db.QueryRow(
		`SELECT is_published, archived_at, deleted_at, approval_status FROM entities WHERE id = ?`, id,
	).Scan(&pub, &archivedAt, &deletedAt, &approval)
	if err != nil {
		t.Fatalf("state load failed: %v", err)
	}
	return pub != 0, archivedAt.Valid, deletedAt.Valid, approval
}

func TestSubmitPublishMixedBatch(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", false, "", "", "pending")
	seedEntity(t, db, "b", true, "", "", "approved")
	seedEntity(t, db, "c", false, "", "", "pending")

	exec := NewBatchExecutor(db, nil)
	outcome, err := exec.Submit(context.Background(), action.Publish, []string{"a", "b", "c"}, nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Processed != 2 || outcome.Skipped != 1 || len(outcome.Errors) != 0 {
		t.Errorf("outcome = %+v, want 2 processed, 1 skipped", outcome)
	}

	for _, id := range []string{"a", "b", "c"} {
		if published, _, _, _ := loadState(t, db, id); !published {
			t.Errorf("entity %s not published", id)
		}
	}
	if got := outcome.Message(); got != "2 updated, 1 skipped" {
		t.Errorf("message = %q", got)
	}
}

func TestSubmitPublishRefusedForArchivedAndTrashed(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "archived", false, "2026-01-01T00:00:00Z", "", "")
	seedEntity(t, db, "trashed", false, "", "2026-01-01T00:00:00Z", "")

	exec := NewBatchExecutor(db, nil)
	outcome, err := exec.Submit(context.Background(), action.Publish, []string{"archived", "trashed"}, nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Processed != 0 || len(outcome.Errors) != 2 {
		t.Errorf("outcome = %+v, want 2 per-item errors", outcome)
	}
}

func TestSubmitArchiveUnpublishes(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", true, "", "", "")

	exec := NewBatchExecutor(db, nil)
	if _, err := exec.Submit(context.Background(), action.Archive, []string{"a"}, nil); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	published, archived, _, _ := loadState(t, db, "a")
	if published || !archived {
		t.Errorf("archive should unpublish and set archived_at, got published=%v archived=%v", published, archived)
	}
}

func TestSubmitSoftDeleteAndRestoreRoundTrip(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", true, "", "", "")

	exec := NewBatchExecutor(db, nil)
	if _, err := exec.Submit(context.Background(), action.SoftDelete, []string{"a"}, nil); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	published, _, deleted, _ := loadState(t, db, "a")
	if published || !deleted {
		t.Errorf("soft delete should unpublish and set deleted_at, got published=%v deleted=%v", published, deleted)
	}

	// A second soft delete is a harmless skip.
	outcome, err := exec.Submit(context.Background(), action.SoftDelete, []string{"a"}, nil)
	if err != nil {
		t.Fatalf("repeat soft delete failed: %v", err)
	}
	if outcome.Skipped != 1 || outcome.Processed != 0 {
		t.Errorf("repeat outcome = %+v, want a skip", outcome)
	}

	if _, err := exec.Submit(context.Background(), action.RestoreTrash, []string{"a"}, nil); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if _, _, deleted, _ := loadState(t, db, "a"); deleted {
		t.Error("restore should clear deleted_at")
	}
}

func TestSubmitApprovalTransitions(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", false, "", "", "pending")
	seedEntity(t, db, "b", false, "", "", "approved")

	exec := NewBatchExecutor(db, nil)
	outcome, err := exec.Submit(context.Background(), action.Approve, []string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if outcome.Processed != 1 || outcome.Skipped != 1 {
		t.Errorf("outcome = %+v, want 1 processed (pending) and 1 skipped (already approved)", outcome)
	}
	if _, _, _, approval := loadState(t, db, "a"); approval != "approved" {
		t.Errorf("approval = %s, want approved", approval)
	}

	if _, err := exec.Submit(context.Background(), action.Reject, []string{"a"}, map[string]string{"reason": "out of policy"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, _, _, approval := loadState(t, db, "a"); approval != "rejected" {
		t.Errorf("approval = %s, want rejected", approval)
	}
}

func TestSubmitForceDeleteRemovesRowAndMetadata(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", false, "", "2026-01-01T00:00:00Z", "")
	if _, err := db.Exec(`INSERT INTO entity_metadata (entity_id, field, value) VALUES ('a', 'author', 'kim')`); err != nil {
		t.Fatalf("metadata seed failed: %v", err)
	}

	exec := NewBatchExecutor(db, nil)
	outcome, err := exec.Submit(context.Background(), action.ForceDelete, []string{"a"}, nil)
	if err != nil {
		t.Fatalf("force delete failed: %v", err)
	}
	if outcome.Processed != 1 {
		t.Errorf("outcome = %+v, want 1 processed", outcome)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entities WHERE id = 'a'`).Scan(&count); err != nil || count != 0 {
		t.Errorf("entity row survived force delete (count=%d err=%v)", count, err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM entity_metadata WHERE entity_id = 'a'`).Scan(&count); err != nil || count != 0 {
		t.Errorf("metadata survived force delete (count=%d err=%v)", count, err)
	}
}

func TestSubmitReportsMissingEntities(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", false, "", "", "")

	exec := NewBatchExecutor(db, nil)
	outcome, err := exec.Submit(context.Background(), action.Publish, []string{"a", "ghost"}, nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if outcome.Processed != 1 || len(outcome.Errors) != 1 {
		t.Fatalf("outcome = %+v, want 1 processed and 1 error", outcome)
	}
	if outcome.Errors[0].ID != "ghost" {
		t.Errorf("error id = %s, want ghost", outcome.Errors[0].ID)
	}
}

func TestSubmitRejectsMetadataActionsAndEmptyTargets(t *testing.T) {
	db := testDB(t)
	exec := NewBatchExecutor(db, nil)

	if _, err := exec.Submit(context.Background(), action.MetadataAdd, []string{"a"}, nil); err == nil {
		t.Error("metadata action should be refused by the batch executor")
	}
	if _, err := exec.Submit(context.Background(), action.Publish, nil, nil); err == nil {
		t.Error("empty target set should be refused")
	}
	if _, err := exec.Submit(context.Background(), action.ID("explode"), []string{"a"}, nil); err == nil {
		t.Error("unknown action should be refused")
	}
}

func TestMetadataAddOnlyFillsAbsentFields(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", false, "", "", "")
	if _, err := db.Exec(`INSERT INTO entity_metadata (entity_id, field, value) VALUES ('a', 'author', 'kim')`); err != nil {
		t.Fatalf("metadata seed failed: %v", err)
	}

	editor := NewMetadataEditor(db, nil)
	outcome, err := editor.Apply(context.Background(), []string{"a"}, repositories.MetadataOpAdd,
		map[string]string{"author": "lee", "license": "cc-by"})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if outcome.Processed != 1 {
		t.Errorf("outcome = %+v, want 1 processed", outcome)
	}

	var value string
	if err := db.QueryRow(`SELECT value FROM entity_metadata WHERE entity_id = 'a' AND field = 'author'`).Scan(&value); err != nil {
		t.Fatalf("field load failed: %v", err)
	}
	if value != "kim" {
		t.Errorf("add overwrote an existing field: %q", value)
	}
	if err := db.QueryRow(`SELECT value FROM entity_metadata WHERE entity_id = 'a' AND field = 'license'`).Scan(&value); err != nil || value != "cc-by" {
		t.Errorf("absent field not added (value=%q err=%v)", value, err)
	}
}

func TestMetadataReplaceOverwrites(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", false, "", "", "")
	if _, err := db.Exec(`INSERT INTO entity_metadata (entity_id, field, value) VALUES ('a', 'author', 'kim')`); err != nil {
		t.Fatalf("metadata seed failed: %v", err)
	}

	editor := NewMetadataEditor(db, nil)
	if _, err := editor.Apply(context.Background(), []string{"a"}, repositories.MetadataOpReplace,
		map[string]string{"author": "lee"}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	var value string
	if err := db.QueryRow(`SELECT value FROM entity_metadata WHERE entity_id = 'a' AND field = 'author'`).Scan(&value); err != nil || value != "lee" {
		t.Errorf("replace did not overwrite (value=%q err=%v)", value, err)
	}
}

func TestMetadataClearRemovesNamedOrAllFields(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", false, "", "", "")
	for _, field := range []string{"author", "license", "camera"} {
		if _, err := db.Exec(`INSERT INTO entity_metadata (entity_id, field, value) VALUES ('a', ?, 'x')`, field); err != nil {
			t.Fatalf("metadata seed failed: %v", err)
		}
	}

	editor := NewMetadataEditor(db, nil)
	if _, err := editor.Apply(context.Background(), []string{"a"}, repositories.MetadataOpClear,
		map[string]string{"author": ""}); err != nil {
		t.Fatalf("named clear failed: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entity_metadata WHERE entity_id = 'a'`).Scan(&count); err != nil || count != 2 {
		t.Fatalf("named clear count = %d, want 2", count)
	}

	if _, err := editor.Apply(context.Background(), []string{"a"}, repositories.MetadataOpClear, nil); err != nil {
		t.Fatalf("full clear failed: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM entity_metadata WHERE entity_id = 'a'`).Scan(&count); err != nil || count != 0 {
		t.Errorf("full clear count = %d, want 0", count)
	}
}

func TestMetadataApplyValidatesInput(t *testing.T) {
	db := testDB(t)
	editor := NewMetadataEditor(db, nil)

	if _, err := editor.Apply(context.Background(), nil, repositories.MetadataOpAdd, map[string]string{"a": "b"}); err == nil {
		t.Error("empty target set should be refused")
	}
	if _, err := editor.Apply(context.Background(), []string{"a"}, repositories.MetadataOpAdd, nil); err == nil {
		t.Error("add without fields should be refused")
	}
}

func TestFindPageKeysetPagination(t *testing.T) {
	db := testDB(t)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seedEntity(t, db, id, false, "", "", "")
	}

	repo := NewSnapshotRepository(db, nil)

	page, err := repo.FindPage(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	if len(page.Entities) != 2 || page.Entities[0].ID != "a" || page.Entities[1].ID != "b" {
		t.Fatalf("first page = %+v", page.Entities)
	}
	if page.NextCursor != "b" {
		t.Errorf("next cursor = %q, want b", page.NextCursor)
	}

	page, err = repo.FindPage(context.Background(), page.NextCursor, 2)
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}
	if len(page.Entities) != 2 || page.Entities[0].ID != "c" {
		t.Fatalf("second page = %+v", page.Entities)
	}

	page, err = repo.FindPage(context.Background(), page.NextCursor, 2)
	if err != nil {
		t.Fatalf("last page failed: %v", err)
	}
	if len(page.Entities) != 1 || page.Entities[0].ID != "e" {
		t.Fatalf("last page = %+v", page.Entities)
	}
	if page.NextCursor != "" {
		t.Errorf("last page cursor = %q, want empty", page.NextCursor)
	}
}

func TestFindByIDsOmitsMissingRows(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", true, "", "", "approved")
	seedEntity(t, db, "b", false, "", "2026-01-01T00:00:00Z", "pending")

	repo := NewSnapshotRepository(db, nil)
	got, err := repo.FindByIDs(context.Background(), []string{"a", "b", "ghost"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("found %d snapshots, want 2 (missing ids omitted)", len(got))
	}
	if !got[0].Snapshot.IsPublished || got[0].Snapshot.ApprovalStatus != selection.ApprovalApproved {
		t.Errorf("snapshot a = %+v", got[0].Snapshot)
	}
	if !got[1].Snapshot.IsDeleted() {
		t.Errorf("snapshot b should carry a deleted_at timestamp")
	}

	empty, err := repo.FindByIDs(context.Background(), nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("empty id lookup = %v, %v", empty, err)
	}
}

func TestSetThumbnailRef(t *testing.T) {
	db := testDB(t)
	seedEntity(t, db, "a", false, "", "", "")

	repo := NewSnapshotRepository(db, nil)
	if err := repo.SetThumbnailRef(context.Background(), "a", "thumbnails/a.webp"); err != nil {
		t.Fatalf("set thumbnail failed: %v", err)
	}

	got, err := repo.FindByIDs(context.Background(), []string{"a"})
	if err != nil || len(got) != 1 {
		t.Fatalf("reload failed: %v", err)
	}
	if got[0].ThumbnailRef != "thumbnails/a.webp" {
		t.Errorf("thumbnail ref = %q", got[0].ThumbnailRef)
	}

	if err := repo.SetThumbnailRef(context.Background(), "ghost", "x"); err == nil {
		t.Error("expected missing entity to be reported")
	}
}
