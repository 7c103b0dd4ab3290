package main

import (
	"context"
	"log"

	"github.com/TheOneTrueGod/lomithBackend/config"
	"github.com/TheOneTrueGod/lomithBackend/internal/database"
	"github.com/TheOneTrueGod/lomithBackend/internal/models"
	"github.com/TheOneTrueGod/lomithBackend/internal/repository"
)

// Loads the demo recipes into the database store. Safe to run more
// than once; seeding is skipped when any recipes already exist.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var count int64
	if err := db.Model(&models.Recipe{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to check existing recipes: %v", err)
	}
	if count > 0 {
		log.Printf("Database already contains %d recipes, nothing to do", count)
		return
	}

	repo := repository.NewGormRecipeRepository(db)
	ctx := context.Background()
	for _, recipe := range repository.SeedRecipes() {
		// The database assigns its own ids.
		recipe.ID = ""
		created, err := repo.Create(ctx, recipe)
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", recipe.Title, err)
		}
		log.Printf("Seeded recipe %s: %s", created.ID, created.Title)
	}

	log.Println("Seeding complete")
}
