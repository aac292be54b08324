package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/graph"
	"github.com/vanshika/moviedb/internal/repository"
	"github.com/vanshika/moviedb/internal/server"
	"github.com/vanshika/moviedb/internal/service"
)

func newCatalogServer(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	store, err := graph.NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(ctx) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers, err := server.NewCatalogHandlers(logger, service.NewCatalogService(repository.New(store)))
	if err != nil {
		t.Fatalf("NewCatalogHandlers: %v", err)
	}
	ts := httptest.NewServer(server.NewRouter(logger, server.RouterDependencies{Catalog: handlers}))
	t.Cleanup(ts.Close)

	client, err := New(ts.URL+"/", ts.Client())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestMovieRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newCatalogServer(t)

	created, err := client.CreateMovie(ctx, domain.MovieDraft{Title: "Heat", Year: "1995", Attributes: map[string]any{"director": "Mann"}})
	if err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	if created.ID == "" || created.Type != domain.KindMovie {
		t.Fatalf("unexpected movie %+v", created)
	}

	created.Title = "Heat (1995)"
	created.Attributes["director"] = "someone else"
	updated, err := client.UpdateMovie(ctx, created)
	if err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}
	if updated.Title != "Heat (1995)" || updated.Attributes["director"] != "Mann" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	movies, err := client.ListMovies(ctx)
	if err != nil || len(movies) != 1 {
		t.Fatalf("ListMovies = %v, %v", movies, err)
	}

	if err := client.DeleteMovie(ctx, created.ID); err != nil {
		t.Fatalf("DeleteMovie: %v", err)
	}
	_, err = client.GetMovie(ctx, created.ID)
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStatusErrorCarriesBody(t *testing.T) {
	client := newCatalogServer(t)

	_, err := client.CreateMovie(context.Background(), domain.MovieDraft{Title: "Old", Year: "1850"})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusBadRequest || se.Method != http.MethodPost || se.Body == "" {
		t.Fatalf("unexpected status error %+v", se)
	}
}

func TestActorRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newCatalogServer(t)

	created, err := client.CreateActor(ctx, domain.ActorDraft{Name: "Alan Rickman"})
	if err != nil {
		t.Fatalf("CreateActor: %v", err)
	}
	got, err := client.GetActor(ctx, created.ID)
	if err != nil || got != created {
		t.Fatalf("GetActor = %+v, %v", got, err)
	}
	got.Bio = "updated"
	if _, err := client.UpdateActor(ctx, got); err != nil {
		t.Fatalf("UpdateActor: %v", err)
	}
	actors, err := client.ListActors(ctx)
	if err != nil || len(actors) != 1 || actors[0].Bio != "updated" {
		t.Fatalf("ListActors = %+v, %v", actors, err)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New("/movies", nil); err == nil {
		t.Fatalf("expected error for relative base url")
	}
}
