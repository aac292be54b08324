package service

import (
	"context"
	"sync"

	"github.com/vanshika/moviedb/internal/domain"
)

type stubRepository struct {
	mu     sync.Mutex
	actors map[string]domain.Actor
	movies map[string]domain.Movie
	cast   [][2]string
	err    error
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		actors: make(map[string]domain.Actor),
		movies: make(map[string]domain.Movie),
	}
}

func (r *stubRepository) ListActors(context.Context) ([]domain.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Actor, 0, len(r.actors))
	for _, a := range r.actors {
		out = append(out, a)
	}
	return out, nil
}

func (r *stubRepository) GetActor(_ context.Context, id string) (domain.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.actors[id]
	if !ok {
		return domain.Actor{}, ErrNotFound
	}
	return a, nil
}

func (r *stubRepository) CreateActor(_ context.Context, a domain.Actor) (domain.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return domain.Actor{}, r.err
	}
	r.actors[a.ID] = a
	return a, nil
}

func (r *stubRepository) UpdateActor(_ context.Context, id string, mutate func(*domain.Actor)) (domain.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.actors[id]
	if !ok {
		return domain.Actor{}, ErrNotFound
	}
	mutate(&a)
	r.actors[id] = a
	return a, nil
}

func (r *stubRepository) DeleteActor(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actors, id)
	return nil
}

func (r *stubRepository) ListMovies(context.Context) ([]domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		out = append(out, m)
	}
	return out, nil
}

func (r *stubRepository) GetMovie(_ context.Context, id string) (domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return domain.Movie{}, ErrNotFound
	}
	return m, nil
}

func (r *stubRepository) CreateMovie(_ context.Context, m domain.Movie) (domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return domain.Movie{}, r.err
	}
	r.movies[m.ID] = m
	return m, nil
}

func (r *stubRepository) UpdateMovie(_ context.Context, id string, mutate func(*domain.Movie)) (domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return domain.Movie{}, ErrNotFound
	}
	mutate(&m)
	r.movies[id] = m
	return m, nil
}

func (r *stubRepository) DeleteMovie(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.movies, id)
	return nil
}

func (r *stubRepository) LinkCast(_ context.Context, actorID, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.actors[actorID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.movies[movieID]; !ok {
		return ErrNotFound
	}
	r.cast = append(r.cast, [2]string{actorID, movieID})
	return nil
}
