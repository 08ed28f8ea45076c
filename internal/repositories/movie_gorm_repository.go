package repositories

import (
	"errors"
	"fmt"

	"movieapi/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMovieRepository is a GORM implementation of MovieRepository.
// It is meant to run over an in-memory SQLite database.
type GORMMovieRepository struct {
	db *gorm.DB
}

// NewGORMMovieRepository creates a new instance of GORMMovieRepository and
// migrates the movies table.
func NewGORMMovieRepository(db *gorm.DB) (*GORMMovieRepository, error) {
	if err := db.AutoMigrate(&models.Movie{}); err != nil {
		return nil, fmt.Errorf("failed to migrate movies table: %w", err)
	}
	return &GORMMovieRepository{
		db: db,
	}, nil
}

// GetAll retrieves all movies from the database, optionally filtered by genre.
// Genres are stored as a JSON column, so the filter is applied after loading.
func (r *GORMMovieRepository) GetAll(genre string) ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.db.Order("rowid").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to get all movies: %w", err)
	}

	movieList := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if genre != "" && !m.HasGenre(genre) {
			continue
		}
		movieList = append(movieList, m)
	}
	return movieList, nil
}

// GetByID retrieves a single movie by its ID from the database.
func (r *GORMMovieRepository) GetByID(id string) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.First(&movie, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("movie with ID %s: %w", id, ErrMovieNotFound)
		}
		return nil, fmt.Errorf("failed to get movie by ID %s: %w", id, err)
	}
	return &movie, nil
}

// Create creates a new movie in the database.
func (r *GORMMovieRepository) Create(in models.MovieInput) (*models.Movie, error) {
	movie := in.NewMovie(uuid.New().String())
	if err := r.db.Create(&movie).Error; err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return &movie, nil
}

// Update merges patch into an existing movie inside a transaction.
func (r *GORMMovieRepository) Update(id string, patch models.MoviePatch) (*models.Movie, error) {
	var updated models.Movie
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current models.Movie
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("movie with ID %s not found for update: %w", id, ErrMovieNotFound)
			}
			return err
		}
		updated = patch.Apply(current)
		// Save writes every column, including zero values.
		return tx.Save(&updated).Error
	})
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}
	return &updated, nil
}

// Delete deletes a movie by its ID from the database.
func (r *GORMMovieRepository) Delete(id string) error {
	res := r.db.Delete(&models.Movie{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete movie: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("movie with ID %s not found for deletion: %w", id, ErrMovieNotFound)
	}
	return nil
}

// Seed inserts movies in one transaction, assigning an ID to those that carry none.
func (r *GORMMovieRepository) Seed(movies []models.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	batch := make([]models.Movie, len(movies))
	for i, m := range movies {
		batch[i] = m.Clone()
		if batch[i].ID == "" {
			batch[i].ID = uuid.New().String()
		}
	}
	if err := r.db.Create(&batch).Error; err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}
	return nil
}
