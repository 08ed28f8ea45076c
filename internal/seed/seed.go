package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"movieapi/internal/models"
	"movieapi/internal/validation"

	"github.com/google/uuid"
)

//go:embed movies.json
var defaultMovies []byte

// Load returns the initial movie collection. With an empty path the embedded
// collection is used. Every entry must pass full validation and carry either
// no id or a valid UUID.
func Load(path string, v *validation.MovieValidator) ([]models.Movie, error) {
	data := defaultMovies
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
		}
		data = b
	}
	return Parse(data, v)
}

// Parse decodes and validates a JSON array of movies.
func Parse(data []byte, v *validation.MovieValidator) ([]models.Movie, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode seed movies: %w", err)
	}

	movies := make([]models.Movie, 0, len(raw))
	for i, entry := range raw {
		id, err := seedID(entry["id"])
		if err != nil {
			return nil, fmt.Errorf("seed movie %d: %w", i, err)
		}
		in, err := v.ValidateFull(entry)
		if err != nil {
			return nil, fmt.Errorf("seed movie %d: %w", i, err)
		}
		movies = append(movies, in.NewMovie(id))
	}
	return movies, nil
}

func seedID(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("id must be a string, got %T", v)
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid id %q: %w", s, err)
	}
	return s, nil
}
