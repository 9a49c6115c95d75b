package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/parallax-dev/parallax/internal/pathsafe"
	"github.com/parallax-dev/parallax/internal/testutil"
)

func canonicalTemp(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := canonicalTemp(t)
	return NewStore(filepath.Join(dir, "state", "workspaces.json")), dir
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
}

func TestStore_UpsertLoadDelete(t *testing.T) {
	store, dir := newTestStore(t)
	ws := filepath.Join(dir, "workspaces", "repo__task")
	src := filepath.Join(dir, "repos", "repo")

	if err := store.Upsert(ws, src, "agent/task", time.Time{}); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	rec, ok := loaded[ws]
	if !ok {
		t.Fatalf("record for %s missing: %v", ws, loaded)
	}
	if rec.WorkspacePath != ws || rec.SourceRepoPath != src || rec.BranchName != "agent/task" {
		t.Errorf("record = %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should default to now")
	}

	if err := store.Delete(ws); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Load() after delete = %v, want empty", loaded)
	}
}

func TestStore_DeleteAbsentIsNoop(t *testing.T) {
	store, dir := newTestStore(t)
	if err := store.Delete(filepath.Join(dir, "nope")); err != nil {
		t.Errorf("Delete() of absent record error: %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("Delete() of absent record should not create the file, stat err = %v", err)
	}
}

func TestStore_UpsertPreservesCreatedAt(t *testing.T) {
	store, dir := newTestStore(t)
	ws := filepath.Join(dir, "repo__task")
	first := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := store.Upsert(ws, "/src/repo", "agent/task", first); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ws, "/src/repo", "agent/renamed", first.Add(48*time.Hour)); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	rec := loaded[ws]
	if !rec.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want %v", rec.CreatedAt, first)
	}
	if rec.BranchName != "agent/renamed" {
		t.Errorf("BranchName = %q, want agent/renamed", rec.BranchName)
	}
}

func TestStore_CanonicalizesThroughSymlinks(t *testing.T) {
	store, dir := newTestStore(t)
	realRoot := filepath.Join(dir, "real")
	aliasRoot := filepath.Join(dir, "alias")
	for _, d := range []string{filepath.Join(realRoot, "repo__task"), filepath.Join(realRoot, "source-repo")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Symlink(realRoot, aliasRoot); err != nil {
		t.Fatal(err)
	}

	err := store.Upsert(filepath.Join(aliasRoot, "repo__task"), filepath.Join(aliasRoot, "source-repo"), "agent/task", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	// The same workspace through its real spelling must collapse to one record.
	err = store.Upsert(filepath.Join(realRoot, "repo__task"), filepath.Join(realRoot, "source-repo"), "agent/task", time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Load() = %d records, want 1: %v", len(loaded), loaded)
	}
	rec, ok := loaded[filepath.Join(realRoot, "repo__task")]
	if !ok {
		t.Fatalf("canonical key missing: %v", loaded)
	}
	if rec.SourceRepoPath != filepath.Join(realRoot, "source-repo") {
		t.Errorf("SourceRepoPath = %q, want canonical", rec.SourceRepoPath)
	}
}

func TestStore_LoadCanonicalizesLegacyFile(t *testing.T) {
	store, dir := newTestStore(t)
	realRoot := filepath.Join(dir, "real")
	aliasRoot := filepath.Join(dir, "alias")
	if err := os.MkdirAll(filepath.Join(realRoot, "repo__task"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(realRoot, aliasRoot); err != nil {
		t.Fatal(err)
	}

	alias := filepath.Join(aliasRoot, "repo__task")
	raw := `{"workspaces":{"` + alias + `":{"workspacePath":"` + alias + `","sourceRepoPath":"` +
		filepath.Join(aliasRoot, "src") + `","branchName":"agent/task","createdAt":"1970-01-01T00:00:00Z"}}}`
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]Record{
		filepath.Join(realRoot, "repo__task"): {
			WorkspacePath:  filepath.Join(realRoot, "repo__task"),
			SourceRepoPath: filepath.Join(realRoot, "src"),
			BranchName:     "agent/task",
			CreatedAt:      time.Unix(0, 0).UTC(),
		},
	}
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_PersistReplacesContents(t *testing.T) {
	store, dir := newTestStore(t)
	if err := store.Upsert(filepath.Join(dir, "old__one"), "/src/old", "agent/one", time.Time{}); err != nil {
		t.Fatal(err)
	}

	ws := filepath.Join(dir, "repo__task")
	rec := Record{
		WorkspacePath:  ws,
		SourceRepoPath: "/tmp/repos/repo",
		BranchName:     "agent/task",
		CreatedAt:      time.Unix(0, 0).UTC(),
	}
	if err := store.Persist(map[string]Record{ws: rec}); err != nil {
		t.Fatalf("Persist() error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]Record{ws: {
		WorkspacePath:  ws,
		SourceRepoPath: pathsafe.Canonicalize("/tmp/repos/repo"),
		BranchName:     "agent/task",
		CreatedAt:      time.Unix(0, 0).UTC(),
	}}
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Errorf("Load() after Persist mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_DecodeError(t *testing.T) {
	store, _ := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load()
	if !IsDecode(err) {
		t.Fatalf("Load() error = %v, want decode StoreError", err)
	}
	if err := store.Upsert("/ws/a__b", "/src/a", "agent/b", time.Time{}); !IsDecode(err) {
		t.Errorf("Upsert() over corrupt file error = %v, want decode StoreError", err)
	}
}

func TestStore_ReadError(t *testing.T) {
	dir := canonicalTemp(t)
	// A directory where the file should be cannot be read as a file.
	path := filepath.Join(dir, "workspaces.json")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := NewStore(path).Load()
	var storeErr *StoreError
	if !errors.As(err, &storeErr) || storeErr.Op != OpRead {
		t.Errorf("Load() error = %v, want read StoreError", err)
	}
}

func TestRecord_Equal(t *testing.T) {
	base := Record{WorkspacePath: "/w", SourceRepoPath: "/s", BranchName: "agent/x", CreatedAt: time.Unix(10, 0)}
	same := base
	same.CreatedAt = time.Unix(10, 0).In(time.FixedZone("X", 3600))
	if !base.Equal(same) {
		t.Error("records differing only in time zone should be equal")
	}
	changed := base
	changed.BranchName = "agent/y"
	if base.Equal(changed) {
		t.Error("records with different branches should differ")
	}
}

func TestStore_LoadLegacyFixture(t *testing.T) {
	dir := canonicalTemp(t)
	path := testutil.WriteFixture(t, "legacy_workspaces.json", dir, "workspaces.json")

	loaded, err := NewStore(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	key := pathsafe.Canonicalize("/tmp/parallax-legacy/repo__task")
	rec, ok := loaded[key]
	if !ok {
		t.Fatalf("record %s missing: %v", key, loaded)
	}
	if want := pathsafe.Canonicalize("/tmp/parallax-legacy/src/repo"); rec.SourceRepoPath != want {
		t.Errorf("SourceRepoPath = %q, want %q", rec.SourceRepoPath, want)
	}
	if want := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC); !rec.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", rec.CreatedAt, want)
	}
}
