package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/streadway/amqp"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"movieapi/internal/app"
	"movieapi/internal/config"
	"movieapi/internal/repositories"
	"movieapi/internal/seed"
	"movieapi/internal/services"
	"movieapi/internal/validation"
	"movieapi/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	server, cleanup, err := newServer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer cleanup()

	// --- Start HTTP Server ---
	log.Printf("server listening on port http://localhost%s", cfg.Addr())

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// newServer wires the store, the seed collection, the optional event
// publisher and the HTTP app. cleanup releases what was opened.
func newServer(cfg config.Config) (*fiber.App, func(), error) {
	validator := validation.NewMovieValidator()

	movieRepo, err := newMovieRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Seed data is copied into the store once, at startup.
	movies, err := seed.Load(cfg.SeedFile, validator)
	if err != nil {
		return nil, nil, err
	}
	if err := movieRepo.Seed(movies); err != nil {
		return nil, nil, err
	}
	log.Printf("Seeded %d movies into the %s store", len(movies), cfg.StoreDriver)

	cleanup := func() {}
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		cleanup = func() {
			if err := mqClient.Close(); err != nil {
				log.Printf("Error closing RabbitMQ client: %v", err)
			}
		}
		publisher = mqClient

		if err := mqClient.ConsumeMovieEvents(logMovieEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL is not set. Movie events will not be published.")
	}

	movieService := services.NewMovieService(movieRepo, publisher)

	server := app.New(cfg, app.Deps{
		Service:   movieService,
		Validator: validator,
	})
	return server, cleanup, nil
}

// newMovieRepository builds the store selected by STORE_DRIVER.
func newMovieRepository(cfg config.Config) (repositories.MovieRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLiteDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return repositories.NewGORMMovieRepository(db)
	default:
		return repositories.NewMemoryMovieRepository(), nil
	}
}

// logMovieEvent is the audit consumer for the movie events queue.
func logMovieEvent(msg amqp.Delivery) error {
	log.Printf("Received movie event %s (Tag: %d): %s", msg.RoutingKey, msg.DeliveryTag, string(msg.Body))
	return nil
}
