package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/service"
)

// Generator produces a synthetic catalog of actors, movies and cast links.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments fragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumActors <= 0 {
		cfg.NumActors = def.NumActors
	}
	if cfg.NumMovies <= 0 {
		cfg.NumMovies = def.NumMovies
	}
	if cfg.MaxCast <= 0 {
		cfg.MaxCast = def.MaxCast
	}
	if cfg.UnknownYearChance < 0 {
		cfg.UnknownYearChance = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultFragments(),
	}
}

// Generate synthesises the catalog. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (service.Dataset, error) {
	actors := make([]service.ActorSeed, g.cfg.NumActors)
	for i := range actors {
		if err := ctx.Err(); err != nil {
			return service.Dataset{}, err
		}
		name := g.randomName()
		actors[i] = service.ActorSeed{
			Key: fmt.Sprintf("ACT-%05d", i+1),
			Actor: domain.ActorDraft{
				Name: name,
				Bio:  g.randomBio(name),
			},
		}
	}

	movies := make([]service.MovieSeed, g.cfg.NumMovies)
	var cast []service.CastLink
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return service.Dataset{}, err
		}
		key := fmt.Sprintf("MOV-%05d", i+1)
		movies[i] = service.MovieSeed{
			Key: key,
			Movie: domain.MovieDraft{
				Title: g.randomTitle(),
				Year:  g.randomYear(),
				Attributes: map[string]any{
					"genre":    g.pick(g.fragments.genres),
					"director": g.randomName(),
				},
			},
		}

		size := 1 + g.rand.Intn(g.cfg.MaxCast)
		if size > len(actors) {
			size = len(actors)
		}
		for _, idx := range g.rand.Perm(len(actors))[:size] {
			cast = append(cast, service.CastLink{Actor: actors[idx].Key, Movie: key})
		}
	}

	return service.Dataset{Actors: actors, Movies: movies, Cast: cast}, nil
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) randomName() string {
	return fmt.Sprintf("%s %s", g.pick(g.fragments.first), g.pick(g.fragments.last))
}

func (g *Generator) randomBio(name string) string {
	return fmt.Sprintf("%s was born in %s and is known for %s roles.",
		name, g.pick(g.fragments.cities), g.pick(g.fragments.roles))
}

func (g *Generator) randomTitle() string {
	return fmt.Sprintf("%s %s", g.pick(g.fragments.adjectives), g.pick(g.fragments.nouns))
}

func (g *Generator) randomYear() domain.Year {
	if g.rand.Float64() < g.cfg.UnknownYearChance {
		return "unknown"
	}
	return domain.Year(fmt.Sprintf("%d", 1920+g.rand.Intn(106)))
}

type fragments struct {
	first      []string
	last       []string
	cities     []string
	roles      []string
	adjectives []string
	nouns      []string
	genres     []string
}

func defaultFragments() fragments {
	return fragments{
		first:      []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara"},
		last:       []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee"},
		cities:     []string{"London", "Lagos", "Mumbai", "Seoul", "Lyon", "Austin", "Melbourne", "Toronto", "Madrid"},
		roles:      []string{"comic", "villainous", "dramatic", "action", "supporting", "romantic"},
		adjectives: []string{"Silent", "Crimson", "Last", "Midnight", "Golden", "Broken", "Hidden", "Distant", "Wild"},
		nouns:      []string{"Harbor", "Empire", "Summer", "Signal", "Garden", "Frontier", "Orchard", "Mirror", "Voyage"},
		genres:     []string{"drama", "comedy", "thriller", "western", "science fiction", "documentary"},
	}
}
