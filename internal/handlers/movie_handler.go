package handlers

import (
	"errors"
	"log"

	"movieapi/internal/repositories"
	"movieapi/internal/services"
	"movieapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const movieNotFoundMessage = "Movie not found"

// MovieHandler handles HTTP requests for movies.
type MovieHandler struct {
	service   *services.MovieService
	validator *validation.MovieValidator
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(service *services.MovieService, validator *validation.MovieValidator) *MovieHandler {
	return &MovieHandler{
		service:   service,
		validator: validator,
	}
}

// RegisterRoutes registers the movie routes with the Fiber app.
func (h *MovieHandler) RegisterRoutes(router fiber.Router) {
	movieRoutes := router.Group("/movies")
	movieRoutes.Get("/", h.HandleGetMovies)
	movieRoutes.Get("/:id", h.HandleGetMovieByID)
	movieRoutes.Post("/", h.HandleCreateMovie)
	movieRoutes.Patch("/:id", h.HandleUpdateMovie)
	movieRoutes.Delete("/:id", h.HandleDeleteMovie)
}

// HandleGetMovies retrieves all movies, optionally filtered by the genre query parameter.
func (h *MovieHandler) HandleGetMovies(c *fiber.Ctx) error {
	movies, err := h.service.GetAllMovies(c.Query("genre"))
	if err != nil {
		log.Printf("Error getting movies: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve movies",
			"error":   err.Error(),
		})
	}
	return c.JSON(movies)
}

// HandleGetMovieByID retrieves a single movie by its ID.
func (h *MovieHandler) HandleGetMovieByID(c *fiber.Ctx) error {
	movieID := c.Params("id")
	movie, err := h.service.GetMovieByID(movieID)
	if err != nil {
		return h.lookupError(c, "retrieve", movieID, err)
	}
	return c.JSON(movie)
}

// HandleCreateMovie validates the full body and creates a new movie.
func (h *MovieHandler) HandleCreateMovie(c *fiber.Ctx) error {
	raw, err := parseBody(c)
	if err != nil {
		return invalidBody(c, err)
	}

	input, err := h.validator.ValidateFull(raw)
	if err != nil {
		return validationFailed(c, err)
	}

	createdMovie, err := h.service.CreateMovie(input)
	if err != nil {
		log.Printf("Error creating movie: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create movie",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(createdMovie)
}

// HandleUpdateMovie validates the supplied fields and merges them into an existing movie.
// The body is validated before the ID is looked up.
func (h *MovieHandler) HandleUpdateMovie(c *fiber.Ctx) error {
	movieID := c.Params("id")

	raw, err := parseBody(c)
	if err != nil {
		return invalidBody(c, err)
	}

	patch, err := h.validator.ValidatePartial(raw)
	if err != nil {
		return validationFailed(c, err)
	}

	updatedMovie, err := h.service.UpdateMovie(movieID, patch)
	if err != nil {
		return h.lookupError(c, "update", movieID, err)
	}
	return c.JSON(updatedMovie)
}

// HandleDeleteMovie deletes a movie by its ID.
func (h *MovieHandler) HandleDeleteMovie(c *fiber.Ctx) error {
	movieID := c.Params("id")
	if err := h.service.DeleteMovie(movieID); err != nil {
		return h.lookupError(c, "delete", movieID, err)
	}
	return c.JSON(fiber.Map{
		"message": "Movie deleted",
	})
}

func (h *MovieHandler) lookupError(c *fiber.Ctx, action, movieID string, err error) error {
	if errors.Is(err, repositories.ErrMovieNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": movieNotFoundMessage,
		})
	}
	log.Printf("Error trying to %s movie %s: %v", action, movieID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not " + action + " movie",
		"error":   err.Error(),
	})
}

// parseBody decodes the request body as an untyped JSON object.
func parseBody(c *fiber.Ctx) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validation.Errors
	if !errors.As(err, &validationErrors) {
		validationErrors = validation.Errors{{Rule: "invalid", Message: err.Error()}}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": validationErrors,
	})
}
