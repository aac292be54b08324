// Package web holds the catalog front-end's route controllers: a route
// table with resolve steps, and one controller per view bound to the REST
// client. Rendering is left to the caller.
package web

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vanshika/moviedb/internal/domain"
)

// Title is the application title shown in every view.
const Title = "The Movie Database"

// Backend is the REST surface the controllers talk to.
type Backend interface {
	ListActors(ctx context.Context) ([]domain.Actor, error)
	GetActor(ctx context.Context, id string) (domain.Actor, error)
	CreateActor(ctx context.Context, draft domain.ActorDraft) (domain.Actor, error)
	UpdateActor(ctx context.Context, actor domain.Actor) (domain.Actor, error)
	DeleteActor(ctx context.Context, id string) error

	ListMovies(ctx context.Context) ([]domain.Movie, error)
	GetMovie(ctx context.Context, id string) (domain.Movie, error)
	CreateMovie(ctx context.Context, draft domain.MovieDraft) (domain.Movie, error)
	UpdateMovie(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

// Alerter shows blocking messages to the user.
type Alerter interface {
	Alert(msg string)
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(msg string)

func (f AlerterFunc) Alert(msg string) { f(msg) }

// Controller is the state behind one view.
type Controller interface {
	// View names the template the controller binds to.
	View() string
}

// AppController carries state shared by every view.
type AppController struct {
	Title string
}

// App owns the current location and builds controllers for it.
type App struct {
	backend  Backend
	alerter  Alerter
	logger   *slog.Logger
	Location *Location
	Header   *HeaderController
	Root     AppController
}

// NewApp starts at "/".
func NewApp(backend Backend, alerter Alerter, logger *slog.Logger) (*App, error) {
	if backend == nil {
		return nil, errors.New("web: backend is required")
	}
	if alerter == nil {
		alerter = AlerterFunc(func(string) {})
	}
	if logger == nil {
		logger = slog.Default()
	}
	loc := NewLocation("/")
	return &App{
		backend:  backend,
		alerter:  alerter,
		logger:   logger.With("component", "web"),
		Location: loc,
		Header:   &HeaderController{location: loc},
		Root:     AppController{Title: Title},
	}, nil
}

// Navigate replaces the current location without rendering.
func (a *App) Navigate(target string) {
	a.Location.Navigate(target)
}

// Visit navigates to target and renders it.
func (a *App) Visit(ctx context.Context, target string) (Controller, error) {
	a.Navigate(target)
	return a.Render(ctx)
}

// Render runs the resolve step of the route matching the current location
// and builds its controller. Unknown paths redirect to the not-found view;
// a failed resolve redirects to the error view naming the failed path. The
// returned error is the resolve failure, if any.
func (a *App) Render(ctx context.Context) (Controller, error) {
	path := a.Location.Path()
	r, params, ok := lookupRoute(path)
	if !ok {
		a.logger.Debug("unknown route", "path", path)
		a.Navigate(NotFoundPath)
		r, params, _ = lookupRoute(NotFoundPath)
	}

	ctrl, err := r.resolve(ctx, a, params)
	if err == nil {
		return ctrl, nil
	}

	a.logger.Error("route resolve failed", "path", path, "error", err)
	a.Navigate(withQuery(ErrorPath, "culprit", path))
	errRoute, errParams, _ := lookupRoute(ErrorPath)
	ctrl, _ = errRoute.resolve(ctx, a, errParams)
	return ctrl, err
}
