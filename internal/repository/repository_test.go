package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/graph"
)

func newSQLiteRepository(t *testing.T) *Repository {
	t.Helper()
	store, err := graph.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "repo.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return New(store)
}

func TestRepository_ActorLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	created, err := repo.CreateActor(ctx, domain.Actor{ID: "a-1", Type: domain.KindActor, Name: "Alan Rickman", Bio: "actor"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetActor(ctx, "a-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != created {
		t.Fatalf("get mismatch: want %+v got %+v", created, got)
	}

	updated, err := repo.UpdateActor(ctx, "a-1", func(a *domain.Actor) {
		a.Name = "A. Rickman"
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "A. Rickman" || updated.ID != "a-1" || updated.Bio != "actor" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if err := repo.DeleteActor(ctx, "a-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetActor(ctx, "a-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteActor(ctx, "a-1"); err != nil {
		t.Fatalf("repeated delete should succeed, got %v", err)
	}
}

func TestRepository_ListScopedByKind(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	if _, err := repo.CreateActor(ctx, domain.Actor{ID: "a-1", Type: domain.KindActor, Name: "Emma Thompson"}); err != nil {
		t.Fatalf("create actor: %v", err)
	}
	if _, err := repo.CreateMovie(ctx, domain.Movie{ID: "m-1", Type: domain.KindMovie, Title: "Sense and Sensibility", Year: "1995"}); err != nil {
		t.Fatalf("create movie: %v", err)
	}

	actors, err := repo.ListActors(ctx)
	if err != nil {
		t.Fatalf("list actors: %v", err)
	}
	if len(actors) != 1 || actors[0].ID != "a-1" {
		t.Fatalf("unexpected actors %+v", actors)
	}
	movies, err := repo.ListMovies(ctx)
	if err != nil {
		t.Fatalf("list movies: %v", err)
	}
	if len(movies) != 1 || movies[0].Year != "1995" {
		t.Fatalf("unexpected movies %+v", movies)
	}
}

func TestRepository_EmptyListIsNotNil(t *testing.T) {
	repo := newSQLiteRepository(t)

	actors, err := repo.ListActors(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if actors == nil || len(actors) != 0 {
		t.Fatalf("expected empty slice, got %#v", actors)
	}
}

func TestRepository_CrossKindLookupIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	if _, err := repo.CreateMovie(ctx, domain.Movie{ID: "m-1", Type: domain.KindMovie, Title: "Dogma"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.GetActor(ctx, "m-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteActor(ctx, "m-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetMovie(ctx, "m-1"); err != nil {
		t.Fatalf("movie must survive an actor delete, got %v", err)
	}
}

func TestRepository_MovieAttributesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	movie := domain.Movie{
		ID:         "m-1",
		Type:       domain.KindMovie,
		Title:      "Brazil",
		Year:       "1985",
		Attributes: map[string]any{"director": "Terry Gilliam"},
	}
	if _, err := repo.CreateMovie(ctx, movie); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.UpdateMovie(ctx, "m-1", func(m *domain.Movie) { m.Title = "Brazil (Director's Cut)" })
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Attributes["director"] != "Terry Gilliam" {
		t.Fatalf("expected attributes to survive update, got %+v", updated.Attributes)
	}
	if updated.Year != "1985" {
		t.Fatalf("expected year to survive update, got %q", updated.Year)
	}
}

func TestRepository_UpdateClearsYear(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	movie := domain.Movie{ID: "m-2", Type: domain.KindMovie, Title: "Heat", Year: "1995"}
	if _, err := repo.CreateMovie(ctx, movie); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.UpdateMovie(ctx, "m-2", func(m *domain.Movie) { m.Year = "" }); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetMovie(ctx, "m-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Year != "" || got.Title != "Heat" {
		t.Fatalf("expected year to be cleared, got %+v", got)
	}
}

func TestRepository_UpdateMissing(t *testing.T) {
	repo := newSQLiteRepository(t)

	called := false
	_, err := repo.UpdateActor(context.Background(), "ghost", func(*domain.Actor) { called = true })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if called {
		t.Fatal("mutation must not run for missing records")
	}
}

func TestRepository_LinkCast(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	if _, err := repo.CreateActor(ctx, domain.Actor{ID: "a-1", Type: domain.KindActor}); err != nil {
		t.Fatalf("create actor: %v", err)
	}
	if _, err := repo.CreateMovie(ctx, domain.Movie{ID: "m-1", Type: domain.KindMovie}); err != nil {
		t.Fatalf("create movie: %v", err)
	}
	if err := repo.LinkCast(ctx, "a-1", "m-1"); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := repo.LinkCast(ctx, "a-1", "m-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_DeleteIssuesSingleScopedQuery(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(graph.NewCypherStore(mem))

	if err := repo.DeleteMovie(context.Background(), "m-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	calls := mem.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one query, got %d", len(calls))
	}
	if calls[0].Params["p0"] != "m-1" || calls[0].Params["p1"] != "movie" {
		t.Fatalf("unexpected params %v", calls[0].Params)
	}
}

func TestRepository_StoreFailureIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	repo := New(graph.NewCypherStore(graph.NewMemoryClient().WithError(boom)))

	_, err := repo.GetActor(context.Background(), "a-1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("store failures must not look like not-found")
	}
}
