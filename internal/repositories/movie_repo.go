package repositories

import (
	"errors"

	"movieapi/internal/models"
)

// ErrMovieNotFound is returned when no movie has the requested ID.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepository defines the interface for movie data access.
type MovieRepository interface {
	// GetAll returns every movie in storage order. A non-empty genre keeps
	// only the movies tagged with it, compared case-insensitively.
	GetAll(genre string) ([]models.Movie, error)
	GetByID(id string) (*models.Movie, error)
	// Create stores in under a freshly generated UUID v4.
	Create(in models.MovieInput) (*models.Movie, error)
	// Update merges patch over the stored movie and replaces it in place.
	Update(id string, patch models.MoviePatch) (*models.Movie, error)
	Delete(id string) error
	// Seed loads an initial collection, keeping the IDs it carries.
	Seed(movies []models.Movie) error
}
