package web

import (
	"context"
	"errors"

	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/validation"
)

// ErrInvalidYear is returned by movie saves rejected on the client.
var ErrInvalidYear = errors.New("invalid release year")

// InvalidYearMessage is the alert shown for a rejected year.
const InvalidYearMessage = "Invalid release year!"

// HeaderController marks the navigation entry of the current view.
type HeaderController struct {
	location *Location
}

// IsActive reports whether path is the current location path.
func (h *HeaderController) IsActive(path string) bool {
	return path == h.location.Path()
}

// WelcomeController lists movies on the landing page.
type WelcomeController struct {
	Movies []domain.Movie
}

func newWelcomeController(_ *App, movies []domain.Movie) Controller {
	return &WelcomeController{Movies: movies}
}

func (*WelcomeController) View() string { return "welcome" }

// MoviesListController lists every movie.
type MoviesListController struct {
	app    *App
	Movies []domain.Movie
}

func newMoviesListController(app *App, movies []domain.Movie) Controller {
	return &MoviesListController{app: app, Movies: movies}
}

func (*MoviesListController) View() string { return "movies/list" }

// Add opens the new movie form.
func (c *MoviesListController) Add() {
	c.app.Navigate("/movies/new")
}

// MovieAddController holds the draft behind the new movie form.
type MovieAddController struct {
	app   *App
	Movie domain.MovieDraft
}

func newMovieAddController(app *App, _ struct{}) Controller {
	return &MovieAddController{app: app}
}

func (*MovieAddController) View() string { return "movies/add" }

// Save creates the movie and opens its detail view. An invalid year is
// alerted and nothing is sent.
func (c *MovieAddController) Save(ctx context.Context) error {
	if !c.app.checkYear(c.Movie.Year) {
		return ErrInvalidYear
	}
	movie, err := c.app.backend.CreateMovie(ctx, c.Movie)
	if err != nil {
		return err
	}
	c.app.Navigate("/movies/" + movie.ID)
	return nil
}

// MovieDetailController shows one movie.
type MovieDetailController struct {
	app   *App
	Movie domain.Movie
}

func newMovieDetailController(app *App, movie domain.Movie) Controller {
	return &MovieDetailController{app: app, Movie: movie}
}

func (*MovieDetailController) View() string { return "movies/detail" }

// Delete removes the movie and returns to the list.
func (c *MovieDetailController) Delete(ctx context.Context) error {
	if err := c.app.backend.DeleteMovie(ctx, c.Movie.ID); err != nil {
		return err
	}
	c.app.Navigate("/movies")
	return nil
}

// MovieEditController holds the movie behind the edit form.
type MovieEditController struct {
	app   *App
	Movie domain.Movie
}

func newMovieEditController(app *App, movie domain.Movie) Controller {
	return &MovieEditController{app: app, Movie: movie}
}

func (*MovieEditController) View() string { return "movies/edit" }

// Save submits the edited movie and opens its detail view.
func (c *MovieEditController) Save(ctx context.Context) error {
	if !c.app.checkYear(c.Movie.Year) {
		return ErrInvalidYear
	}
	if _, err := c.app.backend.UpdateMovie(ctx, c.Movie); err != nil {
		return err
	}
	c.app.Navigate("/movies/" + c.Movie.ID)
	return nil
}

// ActorsListController lists every actor.
type ActorsListController struct {
	app    *App
	Actors []domain.Actor
}

func newActorsListController(app *App, actors []domain.Actor) Controller {
	return &ActorsListController{app: app, Actors: actors}
}

func (*ActorsListController) View() string { return "actors/list" }

// Add opens the new actor form.
func (c *ActorsListController) Add() {
	c.app.Navigate("/actors/new")
}

// ActorAddController holds the draft behind the new actor form.
type ActorAddController struct {
	app   *App
	Actor domain.ActorDraft
}

func newActorAddController(app *App, _ struct{}) Controller {
	return &ActorAddController{app: app}
}

func (*ActorAddController) View() string { return "actors/add" }

// Save creates the actor and opens its detail view.
func (c *ActorAddController) Save(ctx context.Context) error {
	actor, err := c.app.backend.CreateActor(ctx, c.Actor)
	if err != nil {
		return err
	}
	c.app.Navigate("/actors/" + actor.ID)
	return nil
}

// ActorDetailController shows one actor.
type ActorDetailController struct {
	app   *App
	Actor domain.Actor
}

func newActorDetailController(app *App, actor domain.Actor) Controller {
	return &ActorDetailController{app: app, Actor: actor}
}

func (*ActorDetailController) View() string { return "actors/detail" }

// Delete removes the actor and returns to the list.
func (c *ActorDetailController) Delete(ctx context.Context) error {
	if err := c.app.backend.DeleteActor(ctx, c.Actor.ID); err != nil {
		return err
	}
	c.app.Navigate("/actors")
	return nil
}

// ActorEditController holds the actor behind the edit form.
type ActorEditController struct {
	app   *App
	Actor domain.Actor
}

func newActorEditController(app *App, actor domain.Actor) Controller {
	return &ActorEditController{app: app, Actor: actor}
}

func (*ActorEditController) View() string { return "actors/edit" }

// Save submits the edited actor and opens its detail view.
func (c *ActorEditController) Save(ctx context.Context) error {
	if _, err := c.app.backend.UpdateActor(ctx, c.Actor); err != nil {
		return err
	}
	c.app.Navigate("/actors/" + c.Actor.ID)
	return nil
}

const unknownCulprit = "unknown beast"

// NotFoundController explains a missing route.
type NotFoundController struct {
	Culprit string
}

func newNotFoundController(app *App, _ struct{}) Controller {
	return &NotFoundController{Culprit: culprit(app)}
}

func (*NotFoundController) View() string { return "404" }

// ErrorController explains a failed resolve.
type ErrorController struct {
	Culprit string
}

func newErrorController(app *App, _ struct{}) Controller {
	return &ErrorController{Culprit: culprit(app)}
}

func (*ErrorController) View() string { return "error" }

func culprit(app *App) string {
	if c := app.Location.Search("culprit"); c != "" {
		return c
	}
	return unknownCulprit
}

// checkYear applies the release year rule and alerts on failure. An empty
// year is no year and passes.
func (a *App) checkYear(year domain.Year) bool {
	if year == "" || validation.ValidYear(string(year)) {
		return true
	}
	a.alerter.Alert(InvalidYearMessage)
	return false
}
