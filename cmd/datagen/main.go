package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/vanshika/moviedb/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		actors      = flag.Int("actors", cfg.NumActors, "number of actors to generate")
		movies      = flag.Int("movies", cfg.NumMovies, "number of movies to generate")
		maxCast     = flag.Int("max-cast", cfg.MaxCast, "maximum number of actors per movie")
		unknownYear = flag.Float64("unknown-year-chance", cfg.UnknownYearChance, "probability of a movie year being \"unknown\"")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "seed-data", "directory to write actors.json, movies.json and cast.json")
		writeStdout = flag.Bool("stdout", false, "write combined dataset to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumActors:         *actors,
		NumMovies:         *movies,
		MaxCast:           *maxCast,
		UnknownYearChance: clampProbability(*unknownYear),
		Seed:              *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dataset, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d actors, %d movies and %d cast links into %s\n",
		len(dataset.Actors), len(dataset.Movies), len(dataset.Cast), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
