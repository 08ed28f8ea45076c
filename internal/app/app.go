package app

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"movieapi/internal/config"
	"movieapi/internal/handlers"
	"movieapi/internal/middleware"
	"movieapi/internal/services"
	"movieapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP layer is built on.
type Deps struct {
	Service   *services.MovieService
	Validator *validation.MovieValidator
	// AccessLog receives the request log; nil means stdout.
	AccessLog io.Writer
}

// New assembles the Fiber app: boundary filters first, then the routes.
//
// Filters run in this order: panic recovery, request id, access log,
// metrics, origin policy, CORS headers, rate limiting.
func New(cfg config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "movieapi",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	accessLog := deps.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: accessLog,
	}))
	if cfg.MetricsEnabled {
		app.Use(middleware.Metrics())
	}
	app.Use(middleware.OriginRequired(middleware.NewOriginPolicy(cfg.AllowedOrigins)))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods: "GET,POST,PATCH,DELETE",
	}))
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"message": "Rate limit exceeded",
				})
			},
		}))
	}

	app.Get("/", handlers.HandleWelcome)
	app.Get("/health", handlers.HandleHealth)
	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	movieHandler := handlers.NewMovieHandler(deps.Service, deps.Validator)
	movieHandler.RegisterRoutes(app)

	return app
}

// errorHandler renders errors that escaped the handlers, including recovered panics.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}
