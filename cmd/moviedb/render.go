package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/web"
)

// render prints a controller's state as plain text.
func render(out io.Writer, app *web.App, ctrl web.Controller) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s  [%s]\n\n", app.Root.Title, app.Location)

	switch c := ctrl.(type) {
	case *web.WelcomeController:
		fmt.Fprintln(tw, "Welcome! Movies in the catalog:")
		movieRows(tw, c.Movies)
	case *web.MoviesListController:
		movieRows(tw, c.Movies)
	case *web.MovieDetailController:
		movieDetail(tw, c.Movie)
	case *web.MovieEditController:
		movieDetail(tw, c.Movie)
	case *web.MovieAddController:
		fmt.Fprintln(tw, "New movie")
	case *web.ActorsListController:
		actorRows(tw, c.Actors)
	case *web.ActorDetailController:
		actorDetail(tw, c.Actor)
	case *web.ActorEditController:
		actorDetail(tw, c.Actor)
	case *web.ActorAddController:
		fmt.Fprintln(tw, "New actor")
	case *web.NotFoundController:
		fmt.Fprintf(tw, "Nothing here. Culprit: %s\n", c.Culprit)
	case *web.ErrorController:
		fmt.Fprintf(tw, "Something went wrong. Culprit: %s\n", c.Culprit)
	default:
		fmt.Fprintf(tw, "(%s)\n", ctrl.View())
	}
}

func movieRows(tw io.Writer, movies []domain.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(tw, "no movies")
		return
	}
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR")
	for _, m := range movies {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Title, m.Year)
	}
}

func movieDetail(tw io.Writer, m domain.Movie) {
	fmt.Fprintf(tw, "id\t%s\n", m.ID)
	fmt.Fprintf(tw, "title\t%s\n", m.Title)
	fmt.Fprintf(tw, "year\t%s\n", m.Year)
	keys := make([]string, 0, len(m.Attributes))
	for k := range m.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", k, m.Attributes[k])
	}
}

func actorRows(tw io.Writer, actors []domain.Actor) {
	if len(actors) == 0 {
		fmt.Fprintln(tw, "no actors")
		return
	}
	fmt.Fprintln(tw, "ID\tNAME")
	for _, a := range actors {
		fmt.Fprintf(tw, "%s\t%s\n", a.ID, a.Name)
	}
}

func actorDetail(tw io.Writer, a domain.Actor) {
	fmt.Fprintf(tw, "id\t%s\n", a.ID)
	fmt.Fprintf(tw, "name\t%s\n", a.Name)
	fmt.Fprintf(tw, "bio\t%s\n", a.Bio)
}
