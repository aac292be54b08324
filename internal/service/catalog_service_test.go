package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/validation"
)

func TestCreateActorAssignsIDAndType(t *testing.T) {
	svc := NewCatalogService(newStubRepository())

	actor, err := svc.CreateActor(context.Background(), domain.ActorDraft{Name: "Tom", Bio: "b"})
	if err != nil {
		t.Fatalf("CreateActor: %v", err)
	}
	if _, err := uuid.Parse(actor.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", actor.ID)
	}
	if actor.Type != domain.KindActor {
		t.Fatalf("expected type actor, got %q", actor.Type)
	}
	if actor.Name != "Tom" || actor.Bio != "b" {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestCreateIDsAreUnique(t *testing.T) {
	svc := NewCatalogService(newStubRepository())
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		m, err := svc.CreateMovie(context.Background(), domain.MovieDraft{Title: fmt.Sprint(i)})
		if err != nil {
			t.Fatalf("CreateMovie: %v", err)
		}
		if seen[m.ID] {
			t.Fatalf("duplicate id %s", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestCreateMovieKeepsAttributes(t *testing.T) {
	svc := NewCatalogService(newStubRepository())
	svc.WithIDGenerator(func() string { return "m-1" })

	movie, err := svc.CreateMovie(context.Background(), domain.MovieDraft{
		Title:      "Heat",
		Year:       "1995",
		Attributes: map[string]any{"director": "Mann"},
	})
	if err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	if movie.ID != "m-1" || movie.Type != domain.KindMovie {
		t.Fatalf("unexpected identity %q/%q", movie.ID, movie.Type)
	}
	if movie.Attributes["director"] != "Mann" {
		t.Fatalf("expected director attribute, got %v", movie.Attributes)
	}
}

func TestCreateMovieRejectsInvalidYear(t *testing.T) {
	repo := newStubRepository()
	svc := NewCatalogService(repo)

	_, err := svc.CreateMovie(context.Background(), domain.MovieDraft{Title: "Old", Year: "1899"})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	var verr *validation.Error
	if !errors.As(err, &verr) || len(verr.Fields) != 1 || verr.Fields[0].Field != "year" {
		t.Fatalf("expected a year field error, got %v", err)
	}
	if len(repo.movies) != 0 {
		t.Fatalf("invalid movie must not be stored")
	}
}

func TestUpdateMovieOverwritesOnlyTitleAndYear(t *testing.T) {
	repo := newStubRepository()
	repo.movies["m-1"] = domain.Movie{
		ID: "m-1", Type: domain.KindMovie, Title: "Old", Year: "2000",
		Attributes: map[string]any{"rating": "R"},
	}
	svc := NewCatalogService(repo)

	updated, err := svc.UpdateMovie(context.Background(), "m-1", domain.MovieDraft{
		Title:      "New",
		Attributes: map[string]any{"rating": "PG"},
	})
	if err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}
	if updated.Title != "New" || updated.Year != "" {
		t.Fatalf("unexpected title/year %q/%q", updated.Title, updated.Year)
	}
	if updated.ID != "m-1" || updated.Type != domain.KindMovie {
		t.Fatalf("identity changed: %+v", updated)
	}
	if updated.Attributes["rating"] != "R" {
		t.Fatalf("attributes must not be overwritten, got %v", updated.Attributes)
	}
}

func TestUpdateActorNotFound(t *testing.T) {
	svc := NewCatalogService(newStubRepository())
	_, err := svc.UpdateActor(context.Background(), "missing", domain.ActorDraft{Name: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMovieValidatesBeforeLookup(t *testing.T) {
	svc := NewCatalogService(newStubRepository())
	_, err := svc.UpdateMovie(context.Background(), "missing", domain.MovieDraft{Year: "soon"})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}
