package generator

// Config drives the synthetic catalog generator.
type Config struct {
	NumActors int
	NumMovies int
	// MaxCast bounds the number of actors linked to each movie.
	MaxCast           int
	UnknownYearChance float64
	Seed              int64
}

// DefaultConfig returns a small catalog suitable for local development.
func DefaultConfig() Config {
	return Config{
		NumActors:         200,
		NumMovies:         100,
		MaxCast:           6,
		UnknownYearChance: 0.05,
		Seed:              42,
	}
}
