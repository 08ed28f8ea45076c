package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"movieapi/internal/models"
	"movieapi/internal/repositories"
	"movieapi/pkg/rabbitmq"
)

// Movie change event routing keys.
const (
	EventMovieCreated = "movie.created"
	EventMovieUpdated = "movie.updated"
	EventMovieDeleted = "movie.deleted"
)

// EventPublisher publishes a message to an exchange. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// MovieEvent is the body of a movie change event.
type MovieEvent struct {
	Type       string        `json:"type"`
	MovieID    string        `json:"movie_id"`
	Movie      *models.Movie `json:"movie,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// MovieService handles business logic related to movies. It only accepts
// already validated input, so nothing unvalidated reaches the repository.
type MovieService struct {
	repo      repositories.MovieRepository
	publisher EventPublisher
	now       func() time.Time
}

// NewMovieService creates a new MovieService. publisher may be nil, in which
// case change events are not published.
func NewMovieService(repo repositories.MovieRepository, publisher EventPublisher) *MovieService {
	return &MovieService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// GetAllMovies retrieves all movies, filtered by genre when genre is not empty.
func (s *MovieService) GetAllMovies(genre string) ([]models.Movie, error) {
	return s.repo.GetAll(genre)
}

// GetMovieByID retrieves a single movie by its ID.
func (s *MovieService) GetMovieByID(id string) (*models.Movie, error) {
	return s.repo.GetByID(id)
}

// CreateMovie stores a new movie under a server-assigned ID.
func (s *MovieService) CreateMovie(in models.MovieInput) (*models.Movie, error) {
	movie, err := s.repo.Create(in)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	observeMutation("create")
	s.publish(EventMovieCreated, movie.ID, movie)
	return movie, nil
}

// UpdateMovie merges patch into the movie with the given ID.
func (s *MovieService) UpdateMovie(id string, patch models.MoviePatch) (*models.Movie, error) {
	if patch.IsEmpty() {
		return s.repo.GetByID(id)
	}
	movie, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	observeMutation("update")
	s.publish(EventMovieUpdated, movie.ID, movie)
	return movie, nil
}

// DeleteMovie deletes a movie by its ID.
func (s *MovieService) DeleteMovie(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	observeMutation("delete")
	s.publish(EventMovieDeleted, id, nil)
	return nil
}

// publish is best effort: a failure is logged and never fails the request.
func (s *MovieService) publish(eventType, movieID string, movie *models.Movie) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(MovieEvent{
		Type:       eventType,
		MovieID:    movieID,
		Movie:      movie,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for movie %s: %v", eventType, movieID, err)
		return
	}

	if err := s.publisher.Publish(rabbitmq.MoviesExchange, eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for movie %s: %v", eventType, movieID, err)
	}
}
