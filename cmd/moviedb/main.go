// Command moviedb is a terminal front-end for the catalog server. Each
// subcommand drives the same route controllers a browser client would.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/vanshika/moviedb/internal/config"
	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/logging"
	"github.com/vanshika/moviedb/internal/web"
	"github.com/vanshika/moviedb/internal/web/api"
)

// Globals are the flags shared by every subcommand.
type Globals struct {
	Server  string        `help:"Base URL of the catalog server." default:"http://localhost:8080" env:"MOVIEDB_SERVER"`
	Timeout time.Duration `help:"Request timeout." default:"10s"`
	Debug   bool          `help:"Log controller activity to stderr."`
}

type cli struct {
	Globals `embed:""`

	Go          goCmd          `cmd:"" help:"Open a route, e.g. /movies or /actors/{id}."`
	AddMovie    addMovieCmd    `cmd:"" help:"Create a movie."`
	EditMovie   editMovieCmd   `cmd:"" help:"Change a movie's title or year."`
	DeleteMovie deleteMovieCmd `cmd:"" help:"Delete a movie."`
	AddActor    addActorCmd    `cmd:"" help:"Create an actor."`
	EditActor   editActorCmd   `cmd:"" help:"Change an actor's name or bio."`
	DeleteActor deleteActorCmd `cmd:"" help:"Delete an actor."`
}

// session bundles what every subcommand needs.
type session struct {
	app *web.App
	out io.Writer
}

func newSession(g Globals, out, errOut io.Writer) (*session, error) {
	client, err := api.New(g.Server, &http.Client{Timeout: g.Timeout})
	if err != nil {
		return nil, err
	}
	logger := logging.Discard()
	if g.Debug {
		logger = logging.NewWithWriter(errOut, config.LoggingConfig{Level: "debug"})
	}
	alerter := web.AlerterFunc(func(msg string) {
		fmt.Fprintln(errOut, "alert:", msg)
	})
	app, err := web.NewApp(client, alerter, logger)
	if err != nil {
		return nil, err
	}
	return &session{app: app, out: out}, nil
}

// show renders the current location.
func (s *session) show(ctx context.Context) error {
	ctrl, err := s.app.Render(ctx)
	if ctrl != nil {
		render(s.out, s.app, ctrl)
	}
	return err
}

type goCmd struct {
	Path string `arg:"" optional:"" help:"Route path." default:"/"`
}

func (c *goCmd) Run(ctx context.Context, s *session) error {
	s.app.Navigate(c.Path)
	return s.show(ctx)
}

type addMovieCmd struct {
	Title string            `help:"Movie title." required:""`
	Year  string            `help:"Release year, four digits from 1900 on, or \"unknown\"."`
	Attr  map[string]string `help:"Additional attributes as key=value."`
}

func (c *addMovieCmd) Run(ctx context.Context, s *session) error {
	ctrl, err := s.app.Visit(ctx, "/movies/new")
	if err != nil {
		return err
	}
	add := ctrl.(*web.MovieAddController)
	add.Movie = domain.MovieDraft{Title: c.Title, Year: domain.Year(c.Year)}
	if len(c.Attr) > 0 {
		add.Movie.Attributes = make(map[string]any, len(c.Attr))
		for k, v := range c.Attr {
			add.Movie.Attributes[k] = v
		}
	}
	if err := add.Save(ctx); err != nil {
		return err
	}
	return s.show(ctx)
}

type editMovieCmd struct {
	ID    string `arg:"" help:"Movie id."`
	Title string `help:"New title; unchanged when empty."`
	Year  string `help:"New release year; unchanged when empty."`
}

func (c *editMovieCmd) Run(ctx context.Context, s *session) error {
	ctrl, err := s.app.Visit(ctx, "/movies/"+c.ID+"/edit")
	if err != nil {
		render(s.out, s.app, ctrl)
		return err
	}
	edit := ctrl.(*web.MovieEditController)
	if c.Title != "" {
		edit.Movie.Title = c.Title
	}
	if c.Year != "" {
		edit.Movie.Year = domain.Year(c.Year)
	}
	if err := edit.Save(ctx); err != nil {
		return err
	}
	return s.show(ctx)
}

type deleteMovieCmd struct {
	ID string `arg:"" help:"Movie id."`
}

func (c *deleteMovieCmd) Run(ctx context.Context, s *session) error {
	ctrl, err := s.app.Visit(ctx, "/movies/"+c.ID)
	if err != nil {
		render(s.out, s.app, ctrl)
		return err
	}
	if err := ctrl.(*web.MovieDetailController).Delete(ctx); err != nil {
		return err
	}
	return s.show(ctx)
}

type addActorCmd struct {
	Name string `help:"Actor name." required:""`
	Bio  string `help:"Short biography."`
}

func (c *addActorCmd) Run(ctx context.Context, s *session) error {
	ctrl, err := s.app.Visit(ctx, "/actors/new")
	if err != nil {
		return err
	}
	add := ctrl.(*web.ActorAddController)
	add.Actor = domain.ActorDraft{Name: c.Name, Bio: c.Bio}
	if err := add.Save(ctx); err != nil {
		return err
	}
	return s.show(ctx)
}

type editActorCmd struct {
	ID   string `arg:"" help:"Actor id."`
	Name string `help:"New name; unchanged when empty."`
	Bio  string `help:"New biography; unchanged when empty."`
}

func (c *editActorCmd) Run(ctx context.Context, s *session) error {
	ctrl, err := s.app.Visit(ctx, "/actors/"+c.ID+"/edit")
	if err != nil {
		render(s.out, s.app, ctrl)
		return err
	}
	edit := ctrl.(*web.ActorEditController)
	if c.Name != "" {
		edit.Actor.Name = c.Name
	}
	if c.Bio != "" {
		edit.Actor.Bio = c.Bio
	}
	if err := edit.Save(ctx); err != nil {
		return err
	}
	return s.show(ctx)
}

type deleteActorCmd struct {
	ID string `arg:"" help:"Actor id."`
}

func (c *deleteActorCmd) Run(ctx context.Context, s *session) error {
	ctrl, err := s.app.Visit(ctx, "/actors/"+c.ID)
	if err != nil {
		render(s.out, s.app, ctrl)
		return err
	}
	if err := ctrl.(*web.ActorDetailController).Delete(ctx); err != nil {
		return err
	}
	return s.show(ctx)
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("moviedb"),
		kong.Description(web.Title+": browse and edit the movie catalog."),
		kong.UsageOnError(),
	)

	s, err := newSession(c.Globals, os.Stdout, os.Stderr)
	kctx.FatalIfErrorf(err)

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.FatalIfErrorf(kctx.Run(s))
}
