package web

import (
	"context"
	"strings"

	"github.com/vanshika/moviedb/internal/domain"
)

// Params holds the named segments of a matched route.
type Params map[string]string

// Route binds a path pattern to a resolve step and the controller built
// from its result.
type Route struct {
	Pattern string
	resolve func(ctx context.Context, app *App, params Params) (Controller, error)
}

// route pairs a typed resolver with a typed controller constructor.
func route[R any](pattern string, resolve func(context.Context, *App, Params) (R, error), build func(*App, R) Controller) Route {
	return Route{
		Pattern: pattern,
		resolve: func(ctx context.Context, app *App, params Params) (Controller, error) {
			var data R
			if resolve != nil {
				var err error
				if data, err = resolve(ctx, app, params); err != nil {
					return nil, err
				}
			}
			return build(app, data), nil
		},
	}
}

// Routes is the client route table, matched in order.
var Routes = []Route{
	route("/", resolveMovies, newWelcomeController),
	route("/movies", resolveMovies, newMoviesListController),
	route[struct{}]("/movies/new", nil, newMovieAddController),
	route("/movies/:id", resolveMovie, newMovieDetailController),
	route("/movies/:id/edit", resolveMovie, newMovieEditController),
	route("/actors", resolveActors, newActorsListController),
	route[struct{}]("/actors/new", nil, newActorAddController),
	route("/actors/:id", resolveActor, newActorDetailController),
	route("/actors/:id/edit", resolveActor, newActorEditController),
	route[struct{}](NotFoundPath, nil, newNotFoundController),
	route[struct{}](ErrorPath, nil, newErrorController),
}

// Special routes.
const (
	NotFoundPath = "/404"
	ErrorPath    = "/error"
)

func match(pattern, path string) (Params, bool) {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return nil, false
	}
	params := Params{}
	for i, seg := range want {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if got[i] == "" {
				return nil, false
			}
			params[name] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

func lookupRoute(path string) (Route, Params, bool) {
	for _, r := range Routes {
		if params, ok := match(r.Pattern, path); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

func resolveMovies(ctx context.Context, app *App, _ Params) ([]domain.Movie, error) {
	return app.backend.ListMovies(ctx)
}

func resolveMovie(ctx context.Context, app *App, params Params) (domain.Movie, error) {
	return app.backend.GetMovie(ctx, params["id"])
}

func resolveActors(ctx context.Context, app *App, _ Params) ([]domain.Actor, error) {
	return app.backend.ListActors(ctx)
}

func resolveActor(ctx context.Context, app *App, params Params) (domain.Actor, error) {
	return app.backend.GetActor(ctx, params["id"])
}
