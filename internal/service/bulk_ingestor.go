package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vanshika/moviedb/internal/domain"
)

// ErrUnknownSeed is returned when a cast link names a key that was not imported.
var ErrUnknownSeed = errors.New("unknown seed key")

// TaskError accumulates the per-record errors of a bulk import.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d records failed:", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString(" ")
		b.WriteString(err.Error())
		b.WriteString(";")
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// ActorSeed is an actor to import, addressed by a dataset-local key.
type ActorSeed struct {
	Key   string            `json:"key"`
	Actor domain.ActorDraft `json:"actor"`
}

// MovieSeed is a movie to import, addressed by a dataset-local key.
type MovieSeed struct {
	Key   string            `json:"key"`
	Movie domain.MovieDraft `json:"movie"`
}

// CastLink joins an actor seed to a movie seed by their keys.
type CastLink struct {
	Actor string `json:"actor"`
	Movie string `json:"movie"`
}

// Dataset is a complete catalog import.
type Dataset struct {
	Actors []ActorSeed `json:"actors"`
	Movies []MovieSeed `json:"movies"`
	Cast   []CastLink  `json:"cast"`
}

// Report maps dataset keys to the ids assigned on import.
type Report struct {
	Actors map[string]string
	Movies map[string]string
	Linked int
}

// BulkIngestor imports catalog datasets using a worker pool.
type BulkIngestor struct {
	service *CatalogService
	workers int
}

// NewBulkIngestor creates a new BulkIngestor instance with the provided concurrency.
func NewBulkIngestor(service *CatalogService, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	return &BulkIngestor{
		service: service,
		workers: workers,
	}
}

// Ingest creates every actor and movie, then links the cast. Cast links whose
// keys did not import are reported as errors. The report is populated with
// whatever succeeded even when an error is returned.
func (bi *BulkIngestor) Ingest(ctx context.Context, ds Dataset) (Report, error) {
	var (
		report  Report
		taskErr TaskError
	)

	actors, err := bi.IngestActors(ctx, ds.Actors)
	report.Actors = actors
	if err != nil && !collect(&taskErr, err) {
		return report, err
	}
	movies, err := bi.IngestMovies(ctx, ds.Movies)
	report.Movies = movies
	if err != nil && !collect(&taskErr, err) {
		return report, err
	}

	linked, err := bi.IngestCast(ctx, ds.Cast, actors, movies)
	report.Linked = linked
	if err != nil && !collect(&taskErr, err) {
		return report, err
	}
	return report, taskErr.asError()
}

// IngestActors creates the actor seeds concurrently and returns key to id.
func (bi *BulkIngestor) IngestActors(ctx context.Context, seeds []ActorSeed) (map[string]string, error) {
	ids := make(map[string]string, len(seeds))
	var mu sync.Mutex
	err := bi.run(ctx, len(seeds), func(idx int) error {
		seed := seeds[idx]
		actor, err := bi.service.CreateActor(ctx, seed.Actor)
		if err != nil {
			return fmt.Errorf("actor %q: %w", seed.Key, err)
		}
		mu.Lock()
		ids[seed.Key] = actor.ID
		mu.Unlock()
		return nil
	})
	return ids, err
}

// IngestMovies creates the movie seeds concurrently and returns key to id.
func (bi *BulkIngestor) IngestMovies(ctx context.Context, seeds []MovieSeed) (map[string]string, error) {
	ids := make(map[string]string, len(seeds))
	var mu sync.Mutex
	err := bi.run(ctx, len(seeds), func(idx int) error {
		seed := seeds[idx]
		movie, err := bi.service.CreateMovie(ctx, seed.Movie)
		if err != nil {
			return fmt.Errorf("movie %q: %w", seed.Key, err)
		}
		mu.Lock()
		ids[seed.Key] = movie.ID
		mu.Unlock()
		return nil
	})
	return ids, err
}

// IngestCast links actors to movies using the id maps produced by the
// actor and movie imports.
func (bi *BulkIngestor) IngestCast(ctx context.Context, links []CastLink, actors, movies map[string]string) (int, error) {
	var linked atomic.Int64
	err := bi.run(ctx, len(links), func(idx int) error {
		link := links[idx]
		actorID, ok := actors[link.Actor]
		if !ok {
			return fmt.Errorf("cast %s->%s: %w: actor %q", link.Actor, link.Movie, ErrUnknownSeed, link.Actor)
		}
		movieID, ok := movies[link.Movie]
		if !ok {
			return fmt.Errorf("cast %s->%s: %w: movie %q", link.Actor, link.Movie, ErrUnknownSeed, link.Movie)
		}
		if err := bi.service.LinkCast(ctx, actorID, movieID); err != nil {
			return fmt.Errorf("cast %s->%s: %w", link.Actor, link.Movie, err)
		}
		linked.Add(1)
		return nil
	})
	return int(linked.Load()), err
}

// collect merges a TaskError into dst. It reports false for any other error,
// which the caller should return directly.
func collect(dst *TaskError, err error) bool {
	var te *TaskError
	if !errors.As(err, &te) {
		return false
	}
	dst.Errors = append(dst.Errors, te.Errors...)
	return true
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
