// Command main is the entry point for the TaskQuest backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskquest/internal/cache"
	"taskquest/internal/config"
	"taskquest/internal/database"
	"taskquest/internal/models"
	"taskquest/internal/observability"
	"taskquest/internal/seed"
	"taskquest/internal/server"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Tracing is opt-in
	if cfg.TracingEnabled {
		shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
			Exporter:     cfg.TraceExporter,
			OTLPEndpoint: cfg.OTLPEndpoint,
			SamplerRatio: cfg.TraceSampling,
			Environment:  cfg.Env,
		})
		if err != nil {
			log.Fatalf("Failed to initialize tracing: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(ctx)
		}()
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	cache.InitRedis(cfg.RedisURL)

	// Reference data (rank ladder, shop catalog) must exist before the first
	// signup grants default items.
	if cfg.SeedOnStartup {
		if err := seed.SeedReferenceData(db); err != nil {
			log.Fatalf("Failed to seed reference data: %v", err)
		}
	}

	// Create server with dependency injection
	srv, err := server.NewServerWithDeps(cfg, db, cache.GetClient())
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "TaskQuest API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, models.HTTPStatus(err), err)
		},
	})

	// Setup middleware and routes
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
