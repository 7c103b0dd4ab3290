package database

import (
	"gorm.io/gorm"

	"github.com/TheOneTrueGod/lomithBackend/internal/models"
)

// RunMigrations brings the schema up to date. AutoMigrate covers both
// supported drivers; the step_ingredients join table is created from
// the association tags, recipe_tags from its explicit model.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AIIntegration{},
		&models.Tag{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Step{},
		&models.RecipeTag{},
	)
}
