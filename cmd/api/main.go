package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/TheOneTrueGod/lomithBackend/config"
	"github.com/TheOneTrueGod/lomithBackend/internal/api"
	"github.com/TheOneTrueGod/lomithBackend/internal/database"
	"github.com/TheOneTrueGod/lomithBackend/internal/middleware"
	"github.com/TheOneTrueGod/lomithBackend/internal/repository"
	"github.com/TheOneTrueGod/lomithBackend/internal/router"
	"github.com/TheOneTrueGod/lomithBackend/internal/server"
	"github.com/TheOneTrueGod/lomithBackend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Users and AI integrations always live in the database; recipes
	// only when the database store is selected.
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var recipeRepo repository.RecipeRepository
	switch cfg.RecipeStore {
	case config.StoreDatabase:
		recipeRepo = repository.NewGormRecipeRepository(db)
	default:
		log.Println("Using in-memory recipe store with seed data")
		recipeRepo = repository.NewSeededMemoryRecipeRepository()
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(recipeRepo)
	integrationService := service.NewAIIntegrationService(db, cfg.JWTSecret)
	extractService := service.NewExtractService(integrationService)

	handlers := router.Handlers{
		Auth:        api.NewAuthHandler(authService),
		Recipes:     api.NewRecipeHandler(recipeService),
		Integration: api.NewAIIntegrationHandler(integrationService),
		Extract:     api.NewExtractHandler(extractService),
	}

	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		handlers.RateLimiter = middleware.NewExtractionRateLimiter(redisClient)
	} else {
		log.Println("Redis not configured; extraction rate limiting disabled")
	}

	if os.Getenv("S3_ENABLED") == "true" {
		s3Config, err := config.NewS3Config(context.Background())
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		handlers.Image = api.NewImageHandler(service.NewImageService(s3Config))
	} else {
		log.Println("S3 not configured; image uploads disabled")
	}

	engine := router.SetupRouter(handlers, authService, cfg.AllowedOrigins)
	srv := server.New(engine, cfg.ServerHost, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
