package repositories

import (
	"fmt"
	"sync"

	"movieapi/internal/models"

	"github.com/google/uuid"
)

// MemoryMovieRepository is an in-memory, insertion-ordered implementation of MovieRepository.
type MemoryMovieRepository struct {
	movies []models.Movie
	mu     sync.RWMutex
}

// NewMemoryMovieRepository creates a new instance of MemoryMovieRepository.
func NewMemoryMovieRepository() *MemoryMovieRepository {
	return &MemoryMovieRepository{
		movies: make([]models.Movie, 0),
	}
}

// GetAll returns all movies, optionally filtered by genre.
func (r *MemoryMovieRepository) GetAll(genre string) ([]models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movieList := make([]models.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		if genre != "" && !m.HasGenre(genre) {
			continue
		}
		movieList = append(movieList, m.Clone())
	}
	return movieList, nil
}

// GetByID returns a movie by its ID.
func (r *MemoryMovieRepository) GetByID(id string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("movie with ID %s: %w", id, ErrMovieNotFound)
	}
	movie := r.movies[i].Clone()
	return &movie, nil
}

// Create appends a new movie.
func (r *MemoryMovieRepository) Create(in models.MovieInput) (*models.Movie, error) {
	movie := in.NewMovie(uuid.New().String())

	r.mu.Lock()
	r.movies = append(r.movies, movie)
	r.mu.Unlock()

	out := movie.Clone()
	return &out, nil
}

// Update merges patch into an existing movie.
func (r *MemoryMovieRepository) Update(id string, patch models.MoviePatch) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("movie with ID %s not found for update: %w", id, ErrMovieNotFound)
	}
	r.movies[i] = patch.Apply(r.movies[i])
	movie := r.movies[i].Clone()
	return &movie, nil
}

// Delete removes a movie by its ID.
func (r *MemoryMovieRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("movie with ID %s not found for deletion: %w", id, ErrMovieNotFound)
	}
	r.movies = append(r.movies[:i], r.movies[i+1:]...)
	return nil
}

// Seed appends movies, assigning an ID to those that carry none.
func (r *MemoryMovieRepository) Seed(movies []models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range movies {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if r.indexOf(m.ID) >= 0 {
			return fmt.Errorf("duplicate movie ID %s in seed data", m.ID)
		}
		r.movies = append(r.movies, m.Clone())
	}
	return nil
}

// indexOf must be called with r.mu held.
func (r *MemoryMovieRepository) indexOf(id string) int {
	for i := range r.movies {
		if r.movies[i].ID == id {
			return i
		}
	}
	return -1
}
