package graph

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func countRelationships(t *testing.T, store *SQLiteStore) int {
	t.Helper()
	var n int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM relationships`).Scan(&n); err != nil {
		t.Fatalf("count relationships: %v", err)
	}
	return n
}

func TestSQLiteStore_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	created, err := store.CreateNode(ctx, map[string]any{"id": "a-1", "type": "actor", "name": "Alan Rickman"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Handle == "" {
		t.Fatal("expected a handle to be assigned")
	}
	if _, err := store.CreateNode(ctx, map[string]any{"id": "m-1", "type": "movie", "title": "Dogma"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	node, err := store.IndexedNode(ctx, "id", "a-1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if node == nil || node.Data["name"] != "Alan Rickman" {
		t.Fatalf("unexpected node %+v", node)
	}

	actors, err := store.IndexedNodes(ctx, "type", "actor")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(actors) != 1 {
		t.Fatalf("expected 1 actor, got %d", len(actors))
	}

	missing, err := store.IndexedNode(ctx, "id", "does-not-exist")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil, got %+v", missing)
	}
}

func TestSQLiteStore_SaveNode(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	node, err := store.CreateNode(ctx, map[string]any{"id": "a-1", "type": "actor", "name": "Alan"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	node.Data["name"] = "A. Rickman"
	saved, err := store.SaveNode(ctx, node)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Handle != node.Handle || saved.Data["name"] != "A. Rickman" {
		t.Fatalf("unexpected saved node %+v", saved)
	}

	_, err = store.SaveNode(ctx, Node{Handle: "9999", Data: map[string]any{}})
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestSQLiteStore_DeleteDetachesRelationships(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	for _, data := range []map[string]any{
		{"id": "a-1", "type": "actor", "name": "Alan Rickman"},
		{"id": "m-1", "type": "movie", "title": "Galaxy Quest"},
		{"id": "m-2", "type": "movie", "title": "Dogma"},
	} {
		if _, err := store.CreateNode(ctx, data); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	for _, movie := range []string{"m-1", "m-2"} {
		if err := store.Relate(ctx, Match{Key: "id", Value: "a-1"}, Match{Key: "id", Value: movie}, "ACTED_IN"); err != nil {
			t.Fatalf("relate: %v", err)
		}
	}
	if got := countRelationships(t, store); got != 2 {
		t.Fatalf("expected 2 relationships, got %d", got)
	}

	if err := store.DeleteNodes(ctx, Match{Key: "id", Value: "a-1"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := countRelationships(t, store); got != 0 {
		t.Fatalf("expected orphaned relationships to be removed, %d left", got)
	}
	node, err := store.IndexedNode(ctx, "id", "a-1")
	if err != nil || node != nil {
		t.Fatalf("expected node to be gone, got %+v (err=%v)", node, err)
	}

	// Deleting again is a no-op.
	if err := store.DeleteNodes(ctx, Match{Key: "id", Value: "a-1"}); err != nil {
		t.Fatalf("repeated delete: %v", err)
	}
}

func TestSQLiteStore_RelateMissingNode(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	if _, err := store.CreateNode(ctx, map[string]any{"id": "a-1", "type": "actor"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := store.Relate(ctx, Match{Key: "id", Value: "a-1"}, Match{Key: "id", Value: "m-404"}, "ACTED_IN")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "gremlin"})
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}

type recordingObserver struct {
	ops  []string
	errs []error
}

func (r *recordingObserver) ObserveGraphOperation(op string, _ time.Duration, err error) {
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

func TestObserve_ReportsOperations(t *testing.T) {
	boom := errors.New("boom")
	obs := &recordingObserver{}
	store := Observe(NewCypherStore(NewMemoryClient().WithError(boom)), obs)

	_, _ = store.IndexedNodes(context.Background(), "type", "actor")
	_ = store.DeleteNodes(context.Background(), Match{Key: "id", Value: "a-1"})

	if len(obs.ops) != 2 || obs.ops[0] != "indexed_nodes" || obs.ops[1] != "delete_nodes" {
		t.Fatalf("unexpected operations %v", obs.ops)
	}
	if !errors.Is(obs.errs[0], boom) {
		t.Fatalf("expected observed error, got %v", obs.errs[0])
	}
}
