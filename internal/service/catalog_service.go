package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/repository"
	"github.com/vanshika/moviedb/internal/validation"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = repository.ErrNotFound
	// ErrInvalidRecord wraps field validation failures.
	ErrInvalidRecord = errors.New("invalid record")
)

// CatalogRepository is the storage contract required by the catalog service.
type CatalogRepository interface {
	ListActors(ctx context.Context) ([]domain.Actor, error)
	GetActor(ctx context.Context, id string) (domain.Actor, error)
	CreateActor(ctx context.Context, actor domain.Actor) (domain.Actor, error)
	UpdateActor(ctx context.Context, id string, mutate func(*domain.Actor)) (domain.Actor, error)
	DeleteActor(ctx context.Context, id string) error

	ListMovies(ctx context.Context) ([]domain.Movie, error)
	GetMovie(ctx context.Context, id string) (domain.Movie, error)
	CreateMovie(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	UpdateMovie(ctx context.Context, id string, mutate func(*domain.Movie)) (domain.Movie, error)
	DeleteMovie(ctx context.Context, id string) error

	LinkCast(ctx context.Context, actorID, movieID string) error
}

// CatalogService assigns identifiers and type tags, and restricts updates
// to the client-writable fields of each record type.
type CatalogService struct {
	repo  CatalogRepository
	newID func() string
}

// NewCatalogService constructs the service over repo.
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo:  repo,
		newID: func() string { return uuid.NewString() },
	}
}

// WithIDGenerator overrides the identifier source, for deterministic tests.
func (s *CatalogService) WithIDGenerator(fn func() string) {
	if fn != nil {
		s.newID = fn
	}
}

func (s *CatalogService) ListActors(ctx context.Context) ([]domain.Actor, error) {
	return s.repo.ListActors(ctx)
}

func (s *CatalogService) GetActor(ctx context.Context, id string) (domain.Actor, error) {
	return s.repo.GetActor(ctx, id)
}

// CreateActor stores draft as a new actor with a fresh id.
func (s *CatalogService) CreateActor(ctx context.Context, draft domain.ActorDraft) (domain.Actor, error) {
	return s.repo.CreateActor(ctx, domain.Actor{
		ID:   s.newID(),
		Type: domain.KindActor,
		Name: draft.Name,
		Bio:  draft.Bio,
	})
}

// UpdateActor overwrites name and bio only.
func (s *CatalogService) UpdateActor(ctx context.Context, id string, draft domain.ActorDraft) (domain.Actor, error) {
	return s.repo.UpdateActor(ctx, id, func(a *domain.Actor) {
		a.Name = draft.Name
		a.Bio = draft.Bio
	})
}

func (s *CatalogService) DeleteActor(ctx context.Context, id string) error {
	return s.repo.DeleteActor(ctx, id)
}

func (s *CatalogService) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	return s.repo.ListMovies(ctx)
}

func (s *CatalogService) GetMovie(ctx context.Context, id string) (domain.Movie, error) {
	return s.repo.GetMovie(ctx, id)
}

// CreateMovie validates draft and stores it as a new movie with a fresh id.
// Attributes beyond title and year are kept as supplied.
func (s *CatalogService) CreateMovie(ctx context.Context, draft domain.MovieDraft) (domain.Movie, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Movie{}, err
	}
	return s.repo.CreateMovie(ctx, domain.Movie{
		ID:         s.newID(),
		Type:       domain.KindMovie,
		Title:      draft.Title,
		Year:       draft.Year,
		Attributes: draft.Attributes,
	})
}

// UpdateMovie validates draft and overwrites title and year only.
func (s *CatalogService) UpdateMovie(ctx context.Context, id string, draft domain.MovieDraft) (domain.Movie, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Movie{}, err
	}
	return s.repo.UpdateMovie(ctx, id, func(m *domain.Movie) {
		m.Title = draft.Title
		m.Year = draft.Year
	})
}

func (s *CatalogService) DeleteMovie(ctx context.Context, id string) error {
	return s.repo.DeleteMovie(ctx, id)
}

// LinkCast records that an actor appears in a movie.
func (s *CatalogService) LinkCast(ctx context.Context, actorID, movieID string) error {
	return s.repo.LinkCast(ctx, actorID, movieID)
}

func validateDraft(draft domain.MovieDraft) error {
	if err := validation.Struct(draft); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}
