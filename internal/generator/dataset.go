package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/vanshika/moviedb/internal/service"
)

// Dataset file names inside a dataset directory.
const (
	ActorsFile = "actors.json"
	MoviesFile = "movies.json"
	CastFile   = "cast.json"
)

// ErrMissingDataset is returned when a required dataset file is absent.
var ErrMissingDataset = errors.New("dataset not found")

// WriteDataset serializes the dataset into actors.json, movies.json and cast.json under dir.
func WriteDataset(dataset service.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, ActorsFile), dataset.Actors); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, MoviesFile), dataset.Movies); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, CastFile), dataset.Cast)
}

// ReadDataset loads a dataset written by WriteDataset. actors.json and
// movies.json are required; cast.json is optional.
func ReadDataset(dir string) (service.Dataset, error) {
	var ds service.Dataset
	if err := readJSON(filepath.Join(dir, ActorsFile), &ds.Actors, true); err != nil {
		return service.Dataset{}, err
	}
	if err := readJSON(filepath.Join(dir, MoviesFile), &ds.Movies, true); err != nil {
		return service.Dataset{}, err
	}
	if err := readJSON(filepath.Join(dir, CastFile), &ds.Cast, false); err != nil {
		return service.Dataset{}, err
	}
	return ds, nil
}

func writeJSON(path string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, target any, required bool) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		if required {
			return fmt.Errorf("%w: %s", ErrMissingDataset, path)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
